package governor

import (
	"context"
	"fmt"

	"cylinder-sync/internal/domain/ratelimit"
	"cylinder-sync/internal/pkg/errs"
)

// RateLimitExceededError is returned instead of running a denied operation.
// It is an expected outcome; callers retry after RetryAfterSeconds.
type RateLimitExceededError struct {
	Caller            string
	Operation         string
	Class             ratelimit.Class
	RetryAfterSeconds int
}

func (e *RateLimitExceededError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s: retry in %d seconds", e.Operation, e.RetryAfterSeconds)
}

func (e *RateLimitExceededError) Is(target error) bool {
	return target == errs.ErrRateLimitExceeded
}

// Call runs fn only if the governor admits the call. The admission is never
// refunded, so a failing fn still consumes budget and retry storms stay bounded.
func Call[T any](ctx context.Context, g *Governor, caller, operation string, class ratelimit.Class, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	d := g.Check(caller, operation, class)
	if !d.Allowed {
		return zero, &RateLimitExceededError{
			Caller:            caller,
			Operation:         operation,
			Class:             class,
			RetryAfterSeconds: d.RetryAfterSeconds,
		}
	}

	result, err := fn(ctx)
	if err != nil {
		return zero, err
	}
	return result, nil
}

// AsRateLimited extracts the rate-limit error from err, if any.
func AsRateLimited(err error) (*RateLimitExceededError, bool) {
	var rl *RateLimitExceededError
	if errs.As(err, &rl) {
		return rl, true
	}
	return nil, false
}
