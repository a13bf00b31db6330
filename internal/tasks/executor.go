package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/coverwall/internal/services"
	"github.com/desertthunder/coverwall/internal/shared"
)

const (
	DefaultMaxAttempts  = 20
	DefaultRetryPadding = 2 * time.Second
)

// ExecutorOpts configures an [Executor]. Zero values fall back to the defaults.
type ExecutorOpts struct {
	MaxAttempts int           // total attempts including the first (default 20)
	Padding     time.Duration // added to the server's suggested delay (default 2s)
	Logger      *log.Logger
	Sleep       func(ctx context.Context, d time.Duration) error
}

// Executor runs catalog calls and retries them while the API is throttling.
type Executor struct {
	maxAttempts int
	padding     time.Duration
	logger      *log.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewExecutor creates an [Executor] from opts.
func NewExecutor(opts ExecutorOpts) *Executor {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.Padding <= 0 {
		opts.Padding = DefaultRetryPadding
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}

	return &Executor{
		maxAttempts: opts.MaxAttempts,
		padding:     opts.Padding,
		logger:      opts.Logger,
		sleep:       opts.Sleep,
	}
}

// Execute invokes action until it succeeds, fails with something other than a
// [services.RateLimitError], or the attempt ceiling is reached.
//
// After a throttled attempt it waits the server's suggested delay plus the padding.
func Execute[T any](ctx context.Context, ex *Executor, action func(context.Context) (T, error)) (T, error) {
	var zero T

	for attempt := 1; attempt <= ex.maxAttempts; attempt++ {
		value, err := action(ctx)
		if err == nil {
			return value, nil
		}

		var throttled *services.RateLimitError
		if !errors.As(err, &throttled) {
			return zero, fmt.Errorf("request failed: %w", err)
		}

		if attempt == ex.maxAttempts {
			break
		}

		wait := throttled.RetryAfter + ex.padding
		ex.logger.Warn("rate limited, waiting before retry",
			"wait", wait, "attempt", attempt, "max_attempts", ex.maxAttempts, "endpoint", throttled.Endpoint)

		if err := ex.sleep(ctx, wait); err != nil {
			return zero, fmt.Errorf("interrupted while waiting out rate limit: %w", err)
		}
	}

	return zero, fmt.Errorf("%w: still rate limited after %d attempts", shared.ErrRetriesExhausted, ex.maxAttempts)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
