// Package codec converts document values to and from their canonical text
// form: the serialized string placed on the wire as a command argument and
// returned by GET-style commands.
package codec

import "fmt"

// Codec serializes document values. Encode and Decode must round-trip:
// Decode(Encode(v)) == v for every encodable v.
type Codec interface {
	Encode(v any) (string, error)
	Decode(text string) (any, error)
}

// ParseError reports a reply that could not be interpreted as a document
// value. It keeps the offending text for diagnostics.
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("codec: cannot parse %q: %v", e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EncodeEach encodes a variable argument suffix element by element,
// preserving input order. Variadic commands pass only their trailing
// document values through here; fixed prefix arguments (key, path, index)
// go on the wire untouched.
func EncodeEach(c Codec, values []any) ([]string, error) {
	encoded := make([]string, len(values))
	for i, v := range values {
		s, err := c.Encode(v)
		if err != nil {
			return nil, err
		}
		encoded[i] = s
	}
	return encoded, nil
}
