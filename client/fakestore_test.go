package client

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"jsonkv/command"
	"jsonkv/resp"
	"jsonkv/transport"
)

// fakeStore is an in-memory document store implementing transport.Executor.
// It answers every table command with the store's reply shapes, so facade
// marshaling can be tested without a wire. Paths are deliberately simple:
// "." is the document root, ".field" a top-level object field.
type fakeStore struct {
	docs map[string]any

	registered   []string // wire names in registration order
	failRegister string   // Register rejects this name when set

	lastCmd  string
	lastKey  string
	lastArgs []any
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string]any)}
}

func (s *fakeStore) Register(name string) (transport.InvokerPair, error) {
	if s.failRegister != "" && name == s.failRegister {
		return transport.InvokerPair{}, fmt.Errorf("rejected command %q", name)
	}
	s.registered = append(s.registered, name)

	inv := func(ctx context.Context, key string, args ...any) (*resp.Reply, error) {
		return s.invoke(name, key, args)
	}
	return transport.InvokerPair{Text: inv, Binary: inv}, nil
}

func decodeText(text string) (any, error) {
	var v any
	err := json.Unmarshal([]byte(text), &v)
	return v, err
}

func encodeText(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func bulk(v any) *resp.Reply {
	return &resp.Reply{Kind: resp.Bulk, Bulk: []byte(encodeText(v))}
}

func rawBulk(s string) *resp.Reply {
	return &resp.Reply{Kind: resp.Bulk, Bulk: []byte(s)}
}

func integer(n int64) *resp.Reply {
	return &resp.Reply{Kind: resp.Int, N: n}
}

func nilReply() *resp.Reply {
	return &resp.Reply{Kind: resp.Nil}
}

func okReply() *resp.Reply {
	return &resp.Reply{Kind: resp.Status, Status: "OK"}
}

func storeErr(format string, args ...any) (*resp.Reply, error) {
	return nil, &resp.StoreError{Message: fmt.Sprintf(format, args...)}
}

func (s *fakeStore) resolve(key, path string) (any, bool) {
	doc, ok := s.docs[key]
	if !ok {
		return nil, false
	}
	if path == "." {
		return doc, true
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[strings.TrimPrefix(path, ".")]
	return v, ok
}

func (s *fakeStore) setAt(key, path string, v any) error {
	if path == "." {
		s.docs[key] = v
		return nil
	}
	obj, ok := s.docs[key].(map[string]any)
	if !ok {
		return fmt.Errorf("no object at root of %q", key)
	}
	obj[strings.TrimPrefix(path, ".")] = v
	return nil
}

func (s *fakeStore) invoke(name, key string, args []any) (*resp.Reply, error) {
	s.lastCmd = name
	s.lastKey = key
	s.lastArgs = args

	switch name {
	case command.Set:
		path, enc := args[0].(string), args[1].(string)
		v, err := decodeText(enc)
		if err != nil {
			return storeErr("ERR invalid json: %v", err)
		}
		if err := s.setAt(key, path, v); err != nil {
			return storeErr("ERR %v", err)
		}
		return okReply(), nil

	case command.Get:
		v, ok := s.resolve(key, args[0].(string))
		if !ok {
			return nilReply(), nil
		}
		return bulk(v), nil

	case command.MGet:
		keys := []string{key}
		for _, a := range args[:len(args)-1] {
			keys = append(keys, a.(string))
		}
		path := args[len(args)-1].(string)

		elems := make([]*resp.Reply, len(keys))
		for i, k := range keys {
			if v, ok := s.resolve(k, path); ok {
				elems[i] = bulk(v)
			} else {
				elems[i] = nilReply()
			}
		}
		return &resp.Reply{Kind: resp.Array, Elems: elems}, nil

	case command.Del, command.Forget:
		path := args[0].(string)
		if _, ok := s.resolve(key, path); !ok {
			return integer(0), nil
		}
		if path == "." {
			delete(s.docs, key)
		} else {
			delete(s.docs[key].(map[string]any), strings.TrimPrefix(path, "."))
		}
		return integer(1), nil

	case command.Type:
		v, ok := s.resolve(key, args[0].(string))
		if !ok {
			return nilReply(), nil
		}
		return rawBulk(typeName(v)), nil

	case command.NumIncrBy, command.NumMultBy:
		path, operand := args[0].(string), args[1].(float64)
		cur, ok := s.resolve(key, path)
		if !ok {
			return storeErr("ERR could not find number at %s", path)
		}
		n, ok := cur.(float64)
		if !ok {
			return storeErr("ERR not a number at %s", path)
		}
		if name == command.NumIncrBy {
			n += operand
		} else {
			n *= operand
		}
		s.setAt(key, path, n)
		return rawBulk(encodeText(n)), nil

	case command.StrAppend:
		path := args[0].(string)
		v, err := decodeText(args[1].(string))
		if err != nil {
			return storeErr("ERR invalid json")
		}
		suffix, ok := v.(string)
		if !ok {
			return storeErr("ERR operand is not a string")
		}
		cur, _ := s.resolve(key, path)
		str, ok := cur.(string)
		if !ok {
			return storeErr("ERR not a string at %s", path)
		}
		str += suffix
		s.setAt(key, path, str)
		return integer(int64(len(str))), nil

	case command.StrLen:
		v, ok := s.resolve(key, args[0].(string))
		if !ok {
			return nilReply(), nil
		}
		str, ok := v.(string)
		if !ok {
			return storeErr("ERR not a string")
		}
		return integer(int64(len(str))), nil

	case command.ArrAppend:
		path := args[0].(string)
		arr, ok := s.arrayAt(key, path)
		if !ok {
			return storeErr("ERR not an array at %s", path)
		}
		for _, a := range args[1:] {
			v, err := decodeText(a.(string))
			if err != nil {
				return storeErr("ERR invalid json")
			}
			arr = append(arr, v)
		}
		s.setAt(key, path, arr)
		return integer(int64(len(arr))), nil

	case command.ArrIndex:
		path := args[0].(string)
		arr, ok := s.arrayAt(key, path)
		if !ok {
			return storeErr("ERR not an array at %s", path)
		}
		want, err := decodeText(args[1].(string))
		if err != nil {
			return storeErr("ERR invalid json")
		}
		for i, v := range arr {
			if reflect.DeepEqual(v, want) {
				return integer(int64(i)), nil
			}
		}
		return integer(-1), nil

	case command.ArrInsert:
		path, index := args[0].(string), args[1].(int64)
		arr, ok := s.arrayAt(key, path)
		if !ok {
			return storeErr("ERR not an array at %s", path)
		}
		if index < 0 || index > int64(len(arr)) {
			return storeErr("ERR index out of range")
		}
		inserted := make([]any, 0, len(args)-2)
		for _, a := range args[2:] {
			v, err := decodeText(a.(string))
			if err != nil {
				return storeErr("ERR invalid json")
			}
			inserted = append(inserted, v)
		}
		arr = append(arr[:index], append(inserted, arr[index:]...)...)
		s.setAt(key, path, arr)
		return integer(int64(len(arr))), nil

	case command.ArrLen:
		v, ok := s.resolve(key, args[0].(string))
		if !ok {
			return nilReply(), nil
		}
		arr, ok := v.([]any)
		if !ok {
			return storeErr("ERR not an array")
		}
		return integer(int64(len(arr))), nil

	case command.ArrPop:
		path, index := args[0].(string), args[1].(int64)
		arr, ok := s.arrayAt(key, path)
		if !ok {
			return storeErr("ERR not an array at %s", path)
		}
		if len(arr) == 0 {
			return nilReply(), nil
		}
		if index == -1 || index >= int64(len(arr)) {
			index = int64(len(arr)) - 1
		}
		popped := arr[index]
		arr = append(arr[:index], arr[index+1:]...)
		s.setAt(key, path, arr)
		return bulk(popped), nil

	case command.ArrTrim:
		path, start, stop := args[0].(string), args[1].(int64), args[2].(int64)
		arr, ok := s.arrayAt(key, path)
		if !ok {
			return storeErr("ERR not an array at %s", path)
		}
		if start < 0 {
			start = 0
		}
		if stop >= int64(len(arr)) {
			stop = int64(len(arr)) - 1
		}
		if start > stop {
			arr = []any{}
		} else {
			arr = arr[start : stop+1]
		}
		s.setAt(key, path, arr)
		return integer(int64(len(arr))), nil

	case command.ObjKeys:
		v, ok := s.resolve(key, args[0].(string))
		if !ok {
			return nilReply(), nil
		}
		obj, ok := v.(map[string]any)
		if !ok {
			return storeErr("ERR not an object")
		}
		names := make([]string, 0, len(obj))
		for k := range obj {
			names = append(names, k)
		}
		sort.Strings(names)
		elems := make([]*resp.Reply, len(names))
		for i, n := range names {
			elems[i] = rawBulk(n)
		}
		return &resp.Reply{Kind: resp.Array, Elems: elems}, nil

	case command.ObjLen:
		v, ok := s.resolve(key, args[0].(string))
		if !ok {
			return nilReply(), nil
		}
		obj, ok := v.(map[string]any)
		if !ok {
			return storeErr("ERR not an object")
		}
		return integer(int64(len(obj))), nil

	case command.Debug:
		// key carries the subcommand for this command family.
		if key != "MEMORY" {
			return storeErr("ERR unknown debug subcommand %q", key)
		}
		v, ok := s.resolve(args[0].(string), args[1].(string))
		if !ok {
			return integer(0), nil
		}
		return integer(int64(len(encodeText(v)))), nil

	case command.RESP:
		v, ok := s.resolve(key, args[0].(string))
		if !ok {
			return nilReply(), nil
		}
		return &resp.Reply{Kind: resp.Array, Elems: []*resp.Reply{
			rawBulk(typeName(v)),
			rawBulk(encodeText(v)),
		}}, nil

	default:
		return storeErr("ERR unknown command %q", name)
	}
}

func (s *fakeStore) arrayAt(key, path string) ([]any, bool) {
	v, ok := s.resolve(key, path)
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	return arr, ok
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
