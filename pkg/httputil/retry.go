package httputil

import (
	"context"
	"errors"
	"time"

	noticeerrors "github.com/matzehuels/noticegen/pkg/errors"
)

// DefaultBackoff is the initial delay between attempts.
const DefaultBackoff = 200 * time.Millisecond

// maxRetryAfter caps server-provided Retry-After hints.
const maxRetryAfter = 30 * time.Second

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network timeouts, 5xx responses) with this type
// so that [Retry] knows to attempt the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry executes fn up to attempts times with exponential backoff.
// It only retries errors wrapped with [RetryableError]; other errors are
// returned immediately. The delay doubles after each failed attempt.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			wait := max(delay, retryAfter(lastErr))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff is a convenience wrapper around [Retry] with
// [DefaultBackoff] as the initial delay.
func RetryWithBackoff(ctx context.Context, attempts int, fn func() error) error {
	return Retry(ctx, attempts, DefaultBackoff, fn)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

func retryAfter(err error) time.Duration {
	var rl *noticeerrors.RateLimitedError
	if !errors.As(err, &rl) || rl.RetryAfter <= 0 {
		return 0
	}
	return min(time.Duration(rl.RetryAfter)*time.Second, maxRetryAfter)
}
