// Package retrier implements exponential backoff with jitter for
// transient-failure paths (market-data fetches, notification sends).
package retrier

import (
	"context"
	"math/rand"
	"time"
)

const (
	defaultInitialInterval = 1 * time.Second
	defaultMaxInterval     = 30 * time.Second
	defaultMaxRetries      = 3
	jitterFactor           = 0.1
)

// Retrier retries an operation with exponential backoff.
type Retrier struct {
	initialInterval time.Duration
	maxInterval     time.Duration
	maxRetries      int
}

// New creates a Retrier. Non-positive arguments fall back to the defaults
// (3 retries, 1s initial interval doubling up to 30s).
func New(maxRetries int, initialInterval, maxInterval time.Duration) *Retrier {
	r := &Retrier{
		initialInterval: initialInterval,
		maxInterval:     maxInterval,
		maxRetries:      maxRetries,
	}
	if r.initialInterval <= 0 {
		r.initialInterval = defaultInitialInterval
	}
	if r.maxInterval <= 0 {
		r.maxInterval = defaultMaxInterval
	}
	if r.maxRetries <= 0 {
		r.maxRetries = defaultMaxRetries
	}
	return r
}

// Do runs fn until it succeeds, the retry budget is spent, or ctx is done.
// Returns the last error when all attempts fail.
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	interval := r.initialInterval

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			jitter := (rand.Float64()*2 - 1) * jitterFactor * float64(interval)
			sleep := time.Duration(float64(interval) + jitter)
			if sleep < 0 {
				sleep = 0
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sleep):
			}

			interval *= 2
			if interval > r.maxInterval {
				interval = r.maxInterval
			}
		}

		if err = fn(ctx); err == nil {
			return nil
		}
	}

	return err
}

// DoWithData runs fn with retries and returns its value.
func DoWithData[T any](r *Retrier, ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := r.Do(ctx, func(ctx context.Context) error {
		var e error
		result, e = fn(ctx)
		return e
	})
	return result, err
}
