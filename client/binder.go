package client

import (
	"fmt"

	"jsonkv/command"
	"jsonkv/transport"
)

// bind walks the command table in order and asks the Executor to register
// each command, storing the resulting invoker pair under the wire name.
// The map belongs to this instance alone; two clients over the same store
// still bind independently.
func (c *Client) bind() error {
	invokers := make(map[string]transport.InvokerPair, len(command.Table))
	for _, d := range command.Table {
		pair, err := c.exec.Register(d.Wire)
		if err != nil {
			return fmt.Errorf("client: bind %s: %w", d.Wire, err)
		}
		invokers[d.Wire] = pair
	}
	c.invokers = invokers
	return nil
}
