package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	connectBackoffBase = 100 * time.Millisecond
	connectBackoffCap  = 2 * time.Second
)

// connectWithRetry calls ping with exponential backoff until it succeeds,
// fails permanently or timeout elapses.
func connectWithRetry(ctx context.Context, timeout time.Duration, permanent func(error) bool, ping func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	backoff := retry.NewExponential(connectBackoffBase)
	backoff = retry.WithCappedDuration(connectBackoffCap, backoff)
	backoff = retry.WithMaxDuration(timeout, backoff)

	var lastErr error
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := ping(ctx); err != nil {
			lastErr = err
			if permanent != nil && permanent(err) {
				return err
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		if lastErr != nil {
			return fmt.Errorf("%w (timeout=%s): %w", ErrConnecting, timeout, lastErr)
		}
		return fmt.Errorf("%w (timeout=%s): %w", ErrConnecting, timeout, err)
	}
	return nil
}
