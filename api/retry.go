package api

import (
	"context"
	"time"
)

// WithRetry calls operation up to attempts times, sleeping backoff between
// tries. Only transient errors are retried.
func WithRetry(ctx context.Context, attempts int, backoff time.Duration, operation func(ctx context.Context) error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = operation(ctx); err == nil {
			return nil
		}
		if !IsTransient(err) || i == attempts-1 {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return err
}
