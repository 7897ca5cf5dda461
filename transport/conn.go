package transport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"jsonkv/resp"
)

// Conn is the minimal Executor over a single TCP connection. RESP2 on one
// connection is strict request/response, so one command is in flight at a
// time: the mutex covers the whole write/read round trip. Invokers returned
// by Register close over this Conn, never a shared one, so two Conns share no
// transport state.
//
// A round trip that fails after its frame may have reached the wire (deadline
// expiry, I/O error) leaves the stream alignment unknown: the store's late
// reply would otherwise be read as the answer to the next command. The Conn
// therefore poisons itself on such failures, closes the socket, and fails
// every later call with the same error. Callers must redial.
type Conn struct {
	conn net.Conn
	br   *bufio.Reader
	bw   *bufio.Writer
	mu   sync.Mutex // serializes round trips; also guards bw/br and err
	err  error      // sticky; set once a round trip leaves the stream misaligned
}

// Dial connects to the store at addr.
func Dial(addr string) (*Conn, error) {
	nc, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewConn(nc), nil
}

// DialTimeout is Dial with a connect timeout.
func DialTimeout(addr string, timeout time.Duration) (*Conn, error) {
	nc, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, err
	}
	return NewConn(nc), nil
}

// NewConn wraps an established connection.
func NewConn(nc net.Conn) *Conn {
	return &Conn{
		conn: nc,
		br:   bufio.NewReader(nc),
		bw:   bufio.NewWriter(nc),
	}
}

// Register materializes one wire command as an invoker pair bound to this
// connection. The name must be a single protocol token.
func (c *Conn) Register(name string) (InvokerPair, error) {
	if name == "" || strings.ContainsAny(name, " \t\r\n") {
		return InvokerPair{}, fmt.Errorf("transport: invalid command name %q", name)
	}
	invoke := func(ctx context.Context, key string, args ...any) (*resp.Reply, error) {
		return c.do(ctx, name, append([]any{key}, args...)...)
	}
	// Bulk payloads are length-prefixed on the wire, so the frame side of
	// both invokers is identical; the pair encodes the caller's contract.
	return InvokerPair{Text: invoke, Binary: invoke}, nil
}

// do performs one command round trip. The context deadline, if any, is
// applied to the connection for the duration of the exchange. Once a round
// trip fails with the frame possibly on the wire, the Conn is poisoned and
// all later calls fail immediately.
func (c *Conn) do(ctx context.Context, name string, args ...any) (*resp.Reply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return nil, c.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetDeadline(deadline); err != nil {
			return nil, err
		}
		defer c.conn.SetDeadline(time.Time{})
	}

	if err := resp.WriteCommand(c.bw, name, args...); err != nil {
		if errors.Is(err, resp.ErrUnsupportedArg) {
			// Rejected before any byte was written; the stream is intact.
			return nil, err
		}
		return nil, c.poison(err)
	}
	if err := c.bw.Flush(); err != nil {
		return nil, c.poison(err)
	}

	reply, err := resp.ReadReply(c.br)
	if err != nil {
		var storeErr *resp.StoreError
		if errors.As(err, &storeErr) {
			// A complete error reply; the stream is still aligned.
			return nil, err
		}
		return nil, c.poison(err)
	}
	return reply, nil
}

// poison records the failure, closes the socket, and returns the original
// error. Called with mu held.
func (c *Conn) poison(err error) error {
	c.err = fmt.Errorf("transport: connection unusable after failed round trip: %w", err)
	c.conn.Close()
	return err
}

// Close closes the underlying connection. In-flight calls fail with the
// connection error.
func (c *Conn) Close() error {
	return c.conn.Close()
}
