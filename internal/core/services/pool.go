package services

import (
	"context"
	"sync"
)

// settled captures the outcome of one unit of a bounded fan-out.
// Exactly one of value/err is meaningful, mirroring a settled promise.
type settled[T, R any] struct {
	item  T
	value R
	err   error
}

// forEachLimit runs fn over items with at most limit concurrent
// invocations and collects every outcome, success or failure, in
// completion order. It never aborts early: once dispatched, every unit
// runs to completion and settles exactly once.
//
// This is the single fan-out primitive of the engine, reused at the
// source and target levels.
func forEachLimit[T, R any](
	ctx context.Context,
	items []T,
	limit int,
	fn func(context.Context, T) (R, error),
) []settled[T, R] {
	if limit <= 0 {
		limit = 1
	}

	sem := make(chan struct{}, limit)
	results := make([]settled[T, R], 0, len(items))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, item := range items {
		sem <- struct{}{}
		wg.Add(1)

		go func(item T) {
			defer wg.Done()
			defer func() { <-sem }()

			value, err := fn(ctx, item)

			mu.Lock()
			results = append(results, settled[T, R]{item: item, value: value, err: err})
			mu.Unlock()
		}(item)
	}

	wg.Wait()
	return results
}
