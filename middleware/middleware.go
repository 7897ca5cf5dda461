// Package middleware wraps transport invokers with cross-cutting behavior:
// logging, rate limiting, timeouts, retries, tracing. The command facade
// never installs these itself; they are opt-in at the transport boundary.
package middleware

import "jsonkv/transport"

// Middleware wraps one bound invoker. The wire command name is fixed at
// bind time, so it is supplied alongside the invoker.
type Middleware func(name string, next transport.Invoker) transport.Invoker

// Chain combines middlewares into one; the first argument is outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(name string, next transport.Invoker) transport.Invoker {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](name, next)
		}
		return next
	}
}

// WrapExecutor returns an Executor whose registered invokers pass through
// the given middlewares. Registration failures pass through untouched.
func WrapExecutor(exec transport.Executor, middlewares ...Middleware) transport.Executor {
	return &wrappedExecutor{inner: exec, chain: Chain(middlewares...)}
}

type wrappedExecutor struct {
	inner transport.Executor
	chain Middleware
}

func (e *wrappedExecutor) Register(name string) (transport.InvokerPair, error) {
	pair, err := e.inner.Register(name)
	if err != nil {
		return transport.InvokerPair{}, err
	}
	return transport.InvokerPair{
		Text:   e.chain(name, pair.Text),
		Binary: e.chain(name, pair.Binary),
	}, nil
}
