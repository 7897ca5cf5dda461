package middleware

import (
	"context"
	"time"

	"jsonkv/resp"
	"jsonkv/transport"
)

// Timeout bounds each command with a per-call deadline. The transport turns
// the deadline into a connection deadline, so a stuck store surfaces as a
// timeout error rather than a hung caller.
func Timeout(d time.Duration) Middleware {
	return func(name string, next transport.Invoker) transport.Invoker {
		return func(ctx context.Context, key string, args ...any) (*resp.Reply, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, key, args...)
		}
	}
}
