// Package resp implements the RESP2 wire format spoken by the document
// store: command frames go out as arrays of bulk strings, replies come back
// as one of five types identified by a leading type byte.
//
// Frame format (command):
//
//	*<argc>\r\n
//	$<len>\r\n<arg>\r\n     (repeated argc times, first arg = command name)
//
// Reply types:
//
//	+<status>\r\n           status string
//	-<message>\r\n          store error (surfaced as *StoreError)
//	:<number>\r\n           integer
//	$<len>\r\n<data>\r\n    bulk payload ($-1 = nil)
//	*<count>\r\n<replies>   array (*-1 = nil)
package resp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrMalformedReply wraps every framing violation found while decoding.
var ErrMalformedReply = errors.New("resp: malformed reply")

// ErrUnsupportedArg wraps argument-type rejections from WriteCommand. These
// are reported before any byte is written, so the stream stays aligned.
var ErrUnsupportedArg = errors.New("resp: unsupported argument type")

const (
	typeStatus = '+'
	typeError  = '-'
	typeInt    = ':'
	typeBulk   = '$'
	typeArray  = '*'
)

var crlf = []byte{'\r', '\n'}

// WriteCommand writes one command frame. Arguments may be string, []byte,
// int, int64, or float64; anything else is rejected before any byte is
// written. The caller is responsible for flushing w.
func WriteCommand(w *bufio.Writer, name string, args ...any) error {
	encoded := make([][]byte, 1, len(args)+1)
	encoded[0] = []byte(name)
	for _, arg := range args {
		b, err := formatArg(arg)
		if err != nil {
			return err
		}
		encoded = append(encoded, b)
	}

	if _, err := fmt.Fprintf(w, "*%d\r\n", len(encoded)); err != nil {
		return err
	}
	for _, b := range encoded {
		if _, err := fmt.Fprintf(w, "$%d\r\n", len(b)); err != nil {
			return err
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
		if _, err := w.Write(crlf); err != nil {
			return err
		}
	}
	return nil
}

func formatArg(v any) ([]byte, error) {
	switch arg := v.(type) {
	case string:
		return []byte(arg), nil
	case []byte:
		return arg, nil
	case int:
		return strconv.AppendInt(nil, int64(arg), 10), nil
	case int64:
		return strconv.AppendInt(nil, arg, 10), nil
	case float64:
		return strconv.AppendFloat(nil, arg, 'g', -1, 64), nil
	default:
		return nil, fmt.Errorf("%w %T", ErrUnsupportedArg, v)
	}
}

// ReadReply reads one complete reply frame. A store-sent error reply is
// returned as a *StoreError, not a *Reply.
func ReadReply(r *bufio.Reader) (*Reply, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	if len(line) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrMalformedReply)
	}

	payload := string(line[1:])
	switch line[0] {
	case typeStatus:
		return &Reply{Kind: Status, Status: payload}, nil

	case typeError:
		return nil, &StoreError{Message: payload}

	case typeInt:
		n, err := strconv.ParseInt(payload, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad integer %q", ErrMalformedReply, payload)
		}
		return &Reply{Kind: Int, N: n}, nil

	case typeBulk:
		n, err := strconv.Atoi(payload)
		if err != nil || n < -1 {
			return nil, fmt.Errorf("%w: bad bulk length %q", ErrMalformedReply, payload)
		}
		if n == -1 {
			return &Reply{Kind: Nil}, nil
		}
		// Payload plus trailing CRLF, read in full to keep frame alignment.
		buf := make([]byte, n+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		if buf[n] != '\r' || buf[n+1] != '\n' {
			return nil, fmt.Errorf("%w: bulk payload not CRLF-terminated", ErrMalformedReply)
		}
		return &Reply{Kind: Bulk, Bulk: buf[:n]}, nil

	case typeArray:
		n, err := strconv.Atoi(payload)
		if err != nil || n < -1 {
			return nil, fmt.Errorf("%w: bad array length %q", ErrMalformedReply, payload)
		}
		if n == -1 {
			return &Reply{Kind: Nil}, nil
		}
		elems := make([]*Reply, n)
		for i := range elems {
			elem, err := ReadReply(r)
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return &Reply{Kind: Array, Elems: elems}, nil

	default:
		return nil, fmt.Errorf("%w: unknown type byte %q", ErrMalformedReply, line[0])
	}
}

// readLine reads up to CRLF and strips it.
func readLine(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	if len(line) < 2 || line[len(line)-2] != '\r' {
		return nil, fmt.Errorf("%w: line not CRLF-terminated", ErrMalformedReply)
	}
	return line[:len(line)-2], nil
}
