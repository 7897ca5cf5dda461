package resp

import (
	"fmt"
	"strings"
)

// Kind discriminates the reply variants.
type Kind byte

const (
	Status Kind = iota // status string, e.g. OK
	Int                // integer count or length
	Bulk               // payload bytes
	Array              // sequence of replies
	Nil                // absent key/path ($-1 or *-1)
)

// Reply is one decoded reply frame. Which fields are meaningful depends on
// Kind; the accessors below enforce that so callers never compare raw
// status literals.
type Reply struct {
	Kind   Kind
	Status string
	N      int64
	Bulk   []byte
	Elems  []*Reply
}

// OK reports whether the reply is the store's acknowledgement status.
func (r *Reply) OK() bool {
	return r.Kind == Status && r.Status == "OK"
}

// IsNil reports whether the store answered with a nil reply.
func (r *Reply) IsNil() bool {
	return r.Kind == Nil
}

// Int returns the integer reply value.
func (r *Reply) Int() (int64, error) {
	if r.Kind != Int {
		return 0, fmt.Errorf("resp: reply is %s, not an integer", r.Kind)
	}
	return r.N, nil
}

// Text returns the reply payload as a string. Valid for bulk and status
// replies.
func (r *Reply) Text() (string, error) {
	switch r.Kind {
	case Bulk:
		return string(r.Bulk), nil
	case Status:
		return r.Status, nil
	default:
		return "", fmt.Errorf("resp: reply is %s, not text", r.Kind)
	}
}

// Bytes returns the bulk payload byte-exact.
func (r *Reply) Bytes() ([]byte, error) {
	if r.Kind != Bulk {
		return nil, fmt.Errorf("resp: reply is %s, not bulk", r.Kind)
	}
	return r.Bulk, nil
}

// String renders a diagnostic form of the reply, used in error messages.
func (r *Reply) String() string {
	switch r.Kind {
	case Status:
		return "+" + r.Status
	case Int:
		return fmt.Sprintf(":%d", r.N)
	case Bulk:
		return fmt.Sprintf("$%q", r.Bulk)
	case Array:
		parts := make([]string, len(r.Elems))
		for i, e := range r.Elems {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	case Nil:
		return "(nil)"
	default:
		return fmt.Sprintf("(unknown kind %d)", r.Kind)
	}
}

func (k Kind) String() string {
	switch k {
	case Status:
		return "status"
	case Int:
		return "integer"
	case Bulk:
		return "bulk"
	case Array:
		return "array"
	case Nil:
		return "nil"
	default:
		return fmt.Sprintf("kind(%d)", byte(k))
	}
}

// StoreError is an error reply sent by the store itself (rejected command,
// wrong target type, and so on). It belongs to the transport error class:
// the client propagates it unchanged.
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return "store error: " + e.Message
}
