// Package client binds the document command table onto a transport
// Executor and exposes one facade method per command. All marshaling logic
// lives here: document values are serialized to canonical text before being
// placed on the wire, and raw replies are decoded into command-specific Go
// values (bools from counts, numbers from numeric replies, parsed
// structures from encoded payloads).
package client

import (
	"jsonkv/codec"
	"jsonkv/transport"
)

// Client is one bound client instance. The invoker map is populated once
// during New and read-only afterwards, so facade calls need no locking;
// concurrency is bounded only by the Executor.
type Client struct {
	exec     transport.Executor
	codec    codec.Codec
	invokers map[string]transport.InvokerPair
}

// Option configures a Client during construction.
type Option func(*Client)

// WithCodec replaces the default JSON codec.
func WithCodec(c codec.Codec) Option {
	return func(cl *Client) {
		cl.codec = c
	}
}

// New builds a fully bound client over the given Executor. Every command in
// the table is registered eagerly; any registration failure aborts
// construction so a Client is never partially bound.
func New(exec transport.Executor, opts ...Option) (*Client, error) {
	c := &Client{
		exec:  exec,
		codec: codec.JSONCodec{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.bind(); err != nil {
		return nil, err
	}
	return c, nil
}

// text looks up the text invoker for a bound command. Binding is exhaustive
// over the table, so lookup cannot miss for a table name.
func (c *Client) text(name string) transport.Invoker {
	return c.invokers[name].Text
}

// binary looks up the byte-exact invoker.
func (c *Client) binary(name string) transport.Invoker {
	return c.invokers[name].Binary
}
