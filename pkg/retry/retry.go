// Package retry provides a generic retry executor with exponential
// backoff and jitter for wrapping unreliable calls (database lookups,
// service RPCs) in resilience logic.
package retry

import (
	"context"
	"time"
)

// Execute invokes op until it succeeds, fails with a non-retryable
// error, or the retry budget is exhausted. Total invocations are at
// most 1 + policy.MaxRetries.
//
// op must be idempotent or safe to re-invoke; the executor provides no
// deduplication. The error returned after exhaustion is exactly the
// last failure observed, unwrapped and unannotated, so callers keep
// full diagnostic fidelity.
//
// The backoff wait respects ctx: cancellation during the wait returns
// ctx.Err() immediately. Cancellation surfaced by op itself is treated
// as any other failure (context errors never classify as retryable).
func Execute[T any](ctx context.Context, policy Policy, op func(context.Context) (T, error)) (T, error) {
	var result T
	var lastErr error

	maxRetries := policy.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		var err error
		result, err = op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err, policy) {
			return result, err
		}
		if attempt == maxRetries {
			break
		}

		// attempt is 0-based over invocations; the backoff formula is
		// 1-based over retries, so the first retry waits InitialDelay.
		delay := Backoff(policy, attempt+1)
		if policy.OnRetry != nil {
			policy.OnRetry(attempt+1, delay, err)
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(delay):
		}
	}

	return result, lastErr
}

// Do is Execute for operations that return no value.
func Do(ctx context.Context, policy Policy, op func(context.Context) error) error {
	_, err := Execute(ctx, policy, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}
