package github

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driven"
)

// DefaultTimeout is the HTTP request timeout for GitHub calls.
const DefaultTimeout = 30 * time.Second

// Ensure SourceHandler implements the port.
var _ driven.SourceHandler = (*SourceHandler)(nil)

// SourceHandler resolves default branches through the GitHub API.
// One handler is shared by every concurrent target task, so the lazy
// client initialisation is guarded by a mutex.
type SourceHandler struct {
	token   string
	host    string // empty for github.com
	limiter *RateLimiter

	mu sync.Mutex
	gh *gh.Client
}

// NewSourceHandler creates a handler for github.com, or for a GitHub
// Enterprise instance when host is non-empty. The underlying client is
// initialised lazily so a missing token surfaces through Configured,
// not through construction.
func NewSourceHandler(token, host string) *SourceHandler {
	return &SourceHandler{
		token:   token,
		host:    host,
		limiter: NewRateLimiter(),
	}
}

// Source returns the provider this handler serves.
func (h *SourceHandler) Source() domain.Source {
	return domain.SourceGitHub
}

// Configured verifies a token is present.
func (h *SourceHandler) Configured() error {
	if h.token == "" {
		return fmt.Errorf("%w: github: set GITHUB_TOKEN or add a token to the config file", domain.ErrSourceNotConfigured)
	}
	return nil
}

// ensureClient initialises the go-github client on first use and
// returns it. Safe for concurrent callers.
func (h *SourceHandler) ensureClient(ctx context.Context) (*gh.Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.gh != nil {
		return h.gh, nil
	}
	if err := h.Configured(); err != nil {
		return nil, err
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: h.token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	client := gh.NewClient(tc)
	if h.host != "" {
		enterprise, err := client.WithEnterpriseURLs(h.host, h.host)
		if err != nil {
			return nil, fmt.Errorf("configure enterprise host %s: %w", h.host, err)
		}
		client = enterprise
	}

	h.gh = client
	return h.gh, nil
}

// DefaultBranch returns the branch GitHub currently designates as
// primary for the target's repository. One API call per target.
func (h *SourceHandler) DefaultBranch(ctx context.Context, target domain.Target) (string, error) {
	client, err := h.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	owner, repo, err := repoCoordinates(target)
	if err != nil {
		return "", err
	}

	if err := h.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	repository, resp, err := client.Repositories.Get(ctx, owner, repo)
	if resp != nil {
		h.limiter.UpdateFromResponse(resp.Response)
	}
	if err != nil {
		return "", wrapError(err, owner, repo)
	}

	branch := repository.GetDefaultBranch()
	if branch == "" {
		return "", fmt.Errorf("%w: %s/%s", domain.ErrMissingDefaultBranch, owner, repo)
	}
	return branch, nil
}

// wrapError converts go-github errors into readable messages.
func wrapError(err error, owner, repo string) error {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		if ghErr.Response != nil && ghErr.Response.StatusCode == 404 {
			return fmt.Errorf("github: repository %s/%s not found or not accessible", owner, repo)
		}
		return fmt.Errorf("github: %s/%s: %s", owner, repo, ghErr.Message)
	}
	return fmt.Errorf("github: get repository %s/%s: %w", owner, repo, err)
}
