package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// authenticatedQuota is GitHub's authenticated rate limit (5000/hour).
	authenticatedQuota = 5000

	// proactiveRate throttles outgoing requests to roughly 4300/hour so
	// a long sync over thousands of targets never exhausts the quota.
	proactiveRate = 1.2

	// minRemaining is the reserve below which Wait blocks until the
	// quota resets.
	minRemaining = 100

	headerRateRemaining = "X-RateLimit-Remaining"
	headerRateLimit     = "X-RateLimit-Limit"
	headerRateReset     = "X-RateLimit-Reset"
)

// RateLimiter combines proactive throttling with reactive quota
// tracking from GitHub's rate limit headers. All concurrent target
// tasks share one limiter.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int
	limit     int
	resetTime time.Time
	bucket    *rate.Limiter
}

// NewRateLimiter creates a rate limiter assuming a full quota.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		remaining: authenticatedQuota,
		limit:     authenticatedQuota,
		bucket:    rate.NewLimiter(rate.Limit(proactiveRate), 1),
	}
}

// Wait blocks until it is safe to make a request: first the token
// bucket, then — when the tracked quota is nearly spent — the reset
// time reported by GitHub.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	remaining := r.remaining
	resetTime := r.resetTime
	r.mu.Unlock()

	if remaining < minRemaining && time.Now().Before(resetTime) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(resetTime)):
		}
	}

	return nil
}

// UpdateFromResponse refreshes quota state from response headers.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v := resp.Header.Get(headerRateRemaining); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			r.remaining = n
		}
	}
	if v := resp.Header.Get(headerRateLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			r.limit = n
		}
	}
	if v := resp.Header.Get(headerRateReset); v != "" {
		if unix, err := strconv.ParseInt(v, 10, 64); err == nil {
			r.resetTime = time.Unix(unix, 0)
		}
	}
}

// Remaining returns the tracked remaining quota.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}
