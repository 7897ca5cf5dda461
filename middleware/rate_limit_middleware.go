package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"jsonkv/resp"
	"jsonkv/transport"
)

// RateLimit applies a token-bucket limit across all commands sharing the
// middleware instance. Callers wait for a token rather than failing fast;
// a cancelled context aborts the wait.
func RateLimit(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(name string, next transport.Invoker) transport.Invoker {
		return func(ctx context.Context, key string, args ...any) (*resp.Reply, error) {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
			return next(ctx, key, args...)
		}
	}
}
