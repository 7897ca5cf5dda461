package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"jsonkv/resp"
	"jsonkv/transport"
)

// Tracing opens one client span per command, named after the wire command.
func Tracing(tracer trace.Tracer) Middleware {
	return func(name string, next transport.Invoker) transport.Invoker {
		return func(ctx context.Context, key string, args ...any) (*resp.Reply, error) {
			ctx, span := tracer.Start(ctx, name,
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(
					attribute.String("db.operation", name),
					attribute.String("db.key", key),
				),
			)
			defer span.End()

			reply, err := next(ctx, key, args...)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return reply, err
		}
	}
}
