package client

import (
	"context"
	"fmt"

	"jsonkv/codec"
	"jsonkv/command"
	"jsonkv/resp"
)

// Set stores a document value at key and path. The value is serialized to
// its canonical text form; any reply other than the OK status is a
// ProtocolError.
func (c *Client) Set(ctx context.Context, key, path string, v any) error {
	enc, err := c.codec.Encode(v)
	if err != nil {
		return err
	}
	reply, err := c.text(command.Set)(ctx, key, path, enc)
	if err != nil {
		return err
	}
	if !reply.OK() {
		return &ProtocolError{Cmd: command.Set, Reply: reply}
	}
	return nil
}

// Get fetches the value at key and path, parsed from its canonical text
// form. An absent key yields (nil, nil).
func (c *Client) Get(ctx context.Context, key, path string) (any, error) {
	reply, err := c.text(command.Get)(ctx, key, path)
	if err != nil {
		return nil, err
	}
	return c.decodeValue(command.Get, reply)
}

// GetRaw fetches the canonical text byte-exact, without parsing. This is
// the binary-safe path for callers that must preserve the payload encoding.
func (c *Client) GetRaw(ctx context.Context, key, path string) ([]byte, error) {
	reply, err := c.binary(command.Get)(ctx, key, path)
	if err != nil {
		return nil, err
	}
	if reply.IsNil() {
		return nil, nil
	}
	raw, err := reply.Bytes()
	if err != nil {
		return nil, &ProtocolError{Cmd: command.Get, Reply: reply}
	}
	return raw, nil
}

// MGet fetches the same path from several keys. The result is positional:
// element i corresponds to keys[i], absent keys as nil. On the wire the
// keys go first, in caller order, with the path as the trailing argument.
func (c *Client) MGet(ctx context.Context, path string, keys ...string) ([]any, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("client: mget requires at least one key")
	}

	args := make([]any, 0, len(keys))
	for _, k := range keys[1:] {
		args = append(args, k)
	}
	args = append(args, path)

	reply, err := c.text(command.MGet)(ctx, keys[0], args...)
	if err != nil {
		return nil, err
	}
	if reply.Kind != resp.Array {
		return nil, &ProtocolError{Cmd: command.MGet, Reply: reply}
	}

	values := make([]any, len(reply.Elems))
	for i, elem := range reply.Elems {
		v, err := c.decodeValue(command.MGet, elem)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// Del removes the value at key and path. Returns true when something was
// actually deleted.
func (c *Client) Del(ctx context.Context, key, path string) (bool, error) {
	return c.delete(ctx, command.Del, key, path)
}

// Forget is the store's alias for Del.
func (c *Client) Forget(ctx context.Context, key, path string) (bool, error) {
	return c.delete(ctx, command.Forget, key, path)
}

func (c *Client) delete(ctx context.Context, cmd, key, path string) (bool, error) {
	reply, err := c.text(cmd)(ctx, key, path)
	if err != nil {
		return false, err
	}
	n, err := c.intReply(cmd, reply)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Type reports the document type name at key and path ("object", "array",
// "string", ...). An absent key yields "".
func (c *Client) Type(ctx context.Context, key, path string) (string, error) {
	reply, err := c.text(command.Type)(ctx, key, path)
	if err != nil {
		return "", err
	}
	if reply.IsNil() {
		return "", nil
	}
	text, err := reply.Text()
	if err != nil {
		return "", &ProtocolError{Cmd: command.Type, Reply: reply}
	}
	return text, nil
}

// NumIncrBy adds delta to the number at key and path and returns the new
// value. A non-numeric target is rejected by the store, not validated here.
func (c *Client) NumIncrBy(ctx context.Context, key, path string, delta float64) (float64, error) {
	return c.numOp(ctx, command.NumIncrBy, key, path, delta)
}

// NumMultBy multiplies the number at key and path by factor and returns the
// new value.
func (c *Client) NumMultBy(ctx context.Context, key, path string, factor float64) (float64, error) {
	return c.numOp(ctx, command.NumMultBy, key, path, factor)
}

// numOp sends the operand as a plain number (not serialized) and parses the
// reply, which carries the new value in canonical text form.
func (c *Client) numOp(ctx context.Context, cmd, key, path string, operand float64) (float64, error) {
	reply, err := c.text(cmd)(ctx, key, path, operand)
	if err != nil {
		return 0, err
	}
	if reply.Kind == resp.Int {
		return float64(reply.N), nil
	}
	text, err := reply.Text()
	if err != nil {
		return 0, &ProtocolError{Cmd: cmd, Reply: reply}
	}
	v, err := c.codec.Decode(text)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, &ProtocolError{Cmd: cmd, Reply: reply}
	}
	return f, nil
}

// StrAppend appends s to the string at key and path and returns the new
// string length. The operand is serialized, so it travels as a quoted JSON
// string literal.
func (c *Client) StrAppend(ctx context.Context, key, path, s string) (int64, error) {
	enc, err := c.codec.Encode(s)
	if err != nil {
		return 0, err
	}
	reply, err := c.text(command.StrAppend)(ctx, key, path, enc)
	if err != nil {
		return 0, err
	}
	return c.intReply(command.StrAppend, reply)
}

// StrLen returns the length of the string at key and path.
func (c *Client) StrLen(ctx context.Context, key, path string) (int64, error) {
	return c.length(ctx, command.StrLen, key, path)
}

// ArrAppend appends values to the array at key and path and returns the new
// array length. Each value is serialized independently and sent as its own
// protocol argument, in caller order, after the fixed key/path prefix.
func (c *Client) ArrAppend(ctx context.Context, key, path string, values ...any) (int64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("client: arrappend requires at least one value")
	}
	encoded, err := codec.EncodeEach(c.codec, values)
	if err != nil {
		return 0, err
	}

	args := make([]any, 0, len(encoded)+1)
	args = append(args, path)
	for _, e := range encoded {
		args = append(args, e)
	}

	reply, err := c.text(command.ArrAppend)(ctx, key, args...)
	if err != nil {
		return 0, err
	}
	return c.intReply(command.ArrAppend, reply)
}

// ArrIndexOf returns the zero-based position of a scalar in the array at
// key and path, or -1 when absent.
func (c *Client) ArrIndexOf(ctx context.Context, key, path string, v any) (int64, error) {
	enc, err := c.codec.Encode(v)
	if err != nil {
		return 0, err
	}
	reply, err := c.text(command.ArrIndex)(ctx, key, path, enc)
	if err != nil {
		return 0, err
	}
	return c.intReply(command.ArrIndex, reply)
}

// ArrInsert inserts values before the given index in the array at key and
// path and returns the new array length. Key, path and index are fixed
// prefix arguments; only the trailing values are serialized.
func (c *Client) ArrInsert(ctx context.Context, key, path string, index int64, values ...any) (int64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("client: arrinsert requires at least one value")
	}
	encoded, err := codec.EncodeEach(c.codec, values)
	if err != nil {
		return 0, err
	}

	args := make([]any, 0, len(encoded)+2)
	args = append(args, path, index)
	for _, e := range encoded {
		args = append(args, e)
	}

	reply, err := c.text(command.ArrInsert)(ctx, key, args...)
	if err != nil {
		return 0, err
	}
	return c.intReply(command.ArrInsert, reply)
}

// ArrLen returns the length of the array at key and path.
func (c *Client) ArrLen(ctx context.Context, key, path string) (int64, error) {
	return c.length(ctx, command.ArrLen, key, path)
}

// ArrPop removes and returns the element at index from the array at key and
// path, parsed from canonical text. Index -1 pops the last element; popping
// an empty array yields (nil, nil).
func (c *Client) ArrPop(ctx context.Context, key, path string, index int64) (any, error) {
	reply, err := c.text(command.ArrPop)(ctx, key, path, index)
	if err != nil {
		return nil, err
	}
	return c.decodeValue(command.ArrPop, reply)
}

// ArrTrim trims the array at key and path to the inclusive range
// [start, stop] and returns the new length.
func (c *Client) ArrTrim(ctx context.Context, key, path string, start, stop int64) (int64, error) {
	reply, err := c.text(command.ArrTrim)(ctx, key, path, start, stop)
	if err != nil {
		return 0, err
	}
	return c.intReply(command.ArrTrim, reply)
}

// ObjKeys lists the keys of the object at key and path. An absent key or
// path yields (nil, nil).
func (c *Client) ObjKeys(ctx context.Context, key, path string) ([]string, error) {
	reply, err := c.text(command.ObjKeys)(ctx, key, path)
	if err != nil {
		return nil, err
	}
	if reply.IsNil() {
		return nil, nil
	}
	if reply.Kind != resp.Array {
		return nil, &ProtocolError{Cmd: command.ObjKeys, Reply: reply}
	}

	names := make([]string, len(reply.Elems))
	for i, elem := range reply.Elems {
		text, err := elem.Text()
		if err != nil {
			return nil, &ProtocolError{Cmd: command.ObjKeys, Reply: reply}
		}
		names[i] = text
	}
	return names, nil
}

// ObjLen returns the number of keys in the object at key and path.
func (c *Client) ObjLen(ctx context.Context, key, path string) (int64, error) {
	return c.length(ctx, command.ObjLen, key, path)
}

// DebugMemory reports the store-side memory usage of the value at key and
// path, in bytes.
func (c *Client) DebugMemory(ctx context.Context, key, path string) (int64, error) {
	reply, err := c.text(command.Debug)(ctx, "MEMORY", key, path)
	if err != nil {
		return 0, err
	}
	return c.intReply(command.Debug, reply)
}

// RESP returns the store's protocol-level dump of the value at key and
// path, untouched. The reply shape is store-defined.
func (c *Client) RESP(ctx context.Context, key, path string) (*resp.Reply, error) {
	return c.binary(command.RESP)(ctx, key, path)
}

// length handles the shared shape of the *LEN commands: integer reply,
// absent target as zero.
func (c *Client) length(ctx context.Context, cmd, key, path string) (int64, error) {
	reply, err := c.text(cmd)(ctx, key, path)
	if err != nil {
		return 0, err
	}
	if reply.IsNil() {
		return 0, nil
	}
	return c.intReply(cmd, reply)
}

// decodeValue parses a canonical-text reply into a document value, mapping
// a nil reply to nil.
func (c *Client) decodeValue(cmd string, reply *resp.Reply) (any, error) {
	if reply.IsNil() {
		return nil, nil
	}
	text, err := reply.Text()
	if err != nil {
		return nil, &ProtocolError{Cmd: cmd, Reply: reply}
	}
	return c.codec.Decode(text)
}

// intReply converts an integer reply, turning any other shape into a
// ProtocolError carrying the raw reply.
func (c *Client) intReply(cmd string, reply *resp.Reply) (int64, error) {
	n, err := reply.Int()
	if err != nil {
		return 0, &ProtocolError{Cmd: cmd, Reply: reply}
	}
	return n, nil
}
