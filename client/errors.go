package client

import (
	"fmt"

	"jsonkv/resp"
)

// ProtocolError reports a reply that violates a command's contract, e.g. a
// set acknowledged with something other than OK, or a count where an array
// was expected. It keeps the raw reply for diagnostics. Transport errors
// and parse errors are never wrapped in it; they propagate unchanged.
type ProtocolError struct {
	Cmd   string
	Reply *resp.Reply
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("client: unexpected %s reply: %s", e.Cmd, e.Reply)
}
