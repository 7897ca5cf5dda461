// Package transport defines the boundary between the document-command
// facade and the wire: an Executor materializes named commands as invokers
// scoped to one live connection.
package transport

import (
	"context"

	"jsonkv/resp"
)

// Invoker sends one bound command frame and returns the decoded reply.
// The key is the first frame argument after the command name; remaining
// args follow in order.
type Invoker func(ctx context.Context, key string, args ...any) (*resp.Reply, error)

// InvokerPair holds the two invokers bound for one command. Both send the
// identical frame; they differ only in the result contract: Text replies
// are meant to be consumed as UTF-8 text, Binary replies keep bulk
// payloads byte-exact for callers that must preserve the encoding.
type InvokerPair struct {
	Text   Invoker
	Binary Invoker
}

// Executor registers wire commands as invocable operations. Register is
// called once per command at client construction; it must reject malformed
// names so a client is never left partially bound.
type Executor interface {
	Register(name string) (InvokerPair, error)
}
