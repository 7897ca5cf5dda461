package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"jsonkv/resp"
	"jsonkv/transport"
)

// Logging logs every command with its duration. Successful commands log at
// debug, failures at error.
func Logging(logger zerolog.Logger) Middleware {
	return func(name string, next transport.Invoker) transport.Invoker {
		return func(ctx context.Context, key string, args ...any) (*resp.Reply, error) {
			start := time.Now()
			reply, err := next(ctx, key, args...)

			var evt *zerolog.Event
			if err != nil {
				evt = logger.Error().Err(err)
			} else {
				evt = logger.Debug()
			}
			evt.Str("cmd", name).
				Str("key", key).
				Dur("duration", time.Since(start)).
				Msg("command")

			return reply, err
		}
	}
}
