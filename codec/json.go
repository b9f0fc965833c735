package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// JSON is the canonical codec. Encode output is compact encoding/json.
// The zero value is ready to use.
type JSON[V any] struct{}

var _ Codec[any] = JSON[any]{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }

func (JSON[V]) Decode(b []byte) (V, error) { return decodeJSON[V](b, true) }

func (JSON[V]) DecodePrefix(b []byte) (V, error) { return decodeJSON[V](b, false) }

func decodeJSON[V any](b []byte, atEOF bool) (V, error) {
	var zero, v V
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return zero, ErrIncomplete
		}
		return zero, err
	}

	// a number running up to the end of a prefix may still have digits coming
	if !atEOF && int(dec.InputOffset()) == len(b) && isNumberStart(b) {
		return zero, ErrIncomplete
	}
	return v, nil
}

func isNumberStart(b []byte) bool {
	b = bytes.TrimLeft(b, " \t\r\n")
	if len(b) == 0 {
		return false
	}
	c := b[0]
	return c == '-' || (c >= '0' && c <= '9')
}
