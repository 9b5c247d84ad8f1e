// Package wait races alternative readiness checks.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Func is one readiness check. It must return when ctx is done.
type Func func(ctx context.Context) error

// ErrNoWaits is returned by FirstOf when called without checks.
var ErrNoWaits = errors.New("wait: no checks given")

// FirstOf runs all waits concurrently under a shared timeout and returns
// the index of the first one to succeed, cancelling the rest. When every
// wait fails it returns -1 and the joined errors.
func FirstOf(ctx context.Context, timeout time.Duration, waits ...Func) (int, error) {
	if len(waits) == 0 {
		return -1, ErrNoWaits
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		idx int
		err error
	}
	// buffered so losers never block after we return
	results := make(chan result, len(waits))
	for i, w := range waits {
		go func() {
			results <- result{idx: i, err: w(ctx)}
		}()
	}

	errs := make([]error, 0, len(waits))
	for range waits {
		r := <-results
		if r.err == nil {
			return r.idx, nil
		}
		errs = append(errs, fmt.Errorf("wait %d: %w", r.idx, r.err))
	}
	return -1, errors.Join(errs...)
}
