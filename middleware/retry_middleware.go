package middleware

import (
	"context"
	"errors"
	"time"

	"jsonkv/resp"
	"jsonkv/transport"
)

// Retry re-issues a failed command with exponential backoff. Only transport
// failures are retried: a *resp.StoreError is the store's definitive answer
// and re-sending would not change it.
//
// A transport failure is ambiguous: the command may already have executed
// with its reply lost, so a retry can apply a mutation twice. Use Retry only
// on chains whose commands are idempotent (reads, absolute sets); keep it off
// chains carrying JSON.NUMINCRBY, JSON.ARRAPPEND and similar accumulating
// writes.
func Retry(maxRetries int, baseDelay time.Duration) Middleware {
	return func(name string, next transport.Invoker) transport.Invoker {
		return func(ctx context.Context, key string, args ...any) (*resp.Reply, error) {
			reply, err := next(ctx, key, args...)
			for attempt := 0; attempt < maxRetries && err != nil; attempt++ {
				var storeErr *resp.StoreError
				if errors.As(err, &storeErr) {
					return nil, err
				}

				delay := baseDelay * time.Duration(1<<attempt)
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return nil, ctx.Err()
				}

				reply, err = next(ctx, key, args...)
			}
			return reply, err
		}
	}
}
