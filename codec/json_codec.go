package codec

import (
	"encoding/json"
)

// JSONCodec is the default codec: canonical text form is JSON.
// Decoded numbers are float64, objects map[string]any, arrays []any,
// the usual encoding/json mapping.
type JSONCodec struct{}

func (JSONCodec) Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (JSONCodec) Decode(text string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, &ParseError{Text: text, Err: err}
	}
	return v, nil
}
