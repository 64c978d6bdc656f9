package retry

import (
	"context"
	"time"
)

// Retryable reports whether an error is worth another attempt. Anything it
// rejects is propagated to the caller immediately.
type Retryable func(error) bool

type Policy struct {
	MaxAttempts int
	// BaseDelay is doubled after every failed attempt (1x, 2x, 4x, ...).
	BaseDelay time.Duration

	// sleep is swapped out in tests
	sleep func(ctx context.Context, d time.Duration) error
}

func NewPolicy(maxAttempts int, baseDelay time.Duration) *Policy {
	return &Policy{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		sleep:       sleepCtx,
	}
}

// Do runs op up to MaxAttempts times. Failed attempts are retried only when
// retryable accepts the error; the backoff between attempt i and i+1 is
// BaseDelay << i. When attempts exhaust, the last observed error is returned.
func Do[T any](ctx context.Context, p *Policy, retryable Retryable, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !retryable(err) {
			return zero, err
		}
		if attempt == p.MaxAttempts-1 {
			break
		}
		if err := p.sleep(ctx, p.BaseDelay<<attempt); err != nil {
			return zero, err
		}
	}

	return zero, lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
