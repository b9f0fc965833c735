package codec

import (
	"bytes"
	"errors"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack is a Codec that serializes values using vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// Msgpack is compact and fast; be mindful of struct tag differences vs JSON.
// Use `msgpack:"fieldName"` tags if you need explicit control.
type Msgpack[V any] struct{}

var _ Codec[struct{}] = Msgpack[struct{}]{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (m Msgpack[V]) Decode(b []byte) (V, error) { return m.decode(b) }

// DecodePrefix is Decode; msgpack values are length-prefixed internally.
func (m Msgpack[V]) DecodePrefix(b []byte) (V, error) { return m.decode(b) }

func (Msgpack[V]) decode(b []byte) (V, error) {
	var zero, v V
	if err := msgpack.NewDecoder(bytes.NewReader(b)).Decode(&v); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return zero, ErrIncomplete
		}
		return zero, err
	}
	return v, nil
}
