package codec

import (
	"errors"
	"fmt"
)

// ErrPayloadTooLarge is wrapped by Limit when input exceeds MaxDecode.
var ErrPayloadTooLarge = errors.New("codec: payload too large")

// Limit wraps another codec to enforce a maximum allowed payload size
// at decode time. Encode is forwarded to Inner unchanged.
// If MaxDecode <= 0, size limiting is disabled.
//
// A reassembling reader grows its prefix one chunk at a time, so the limit also
// bounds how much of a foreign or runaway value is pulled from the store.
type Limit[V any] struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner Codec[V]
	// MaxDecode is the maximum permitted length (in bytes) of the incoming
	// payload. Longer payloads fail without invoking Inner.
	MaxDecode int
}

var _ Codec[any] = Limit[any]{}

func (c Limit[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }

func (c Limit[V]) Decode(b []byte) (V, error) {
	if err := c.check(b); err != nil {
		var zero V
		return zero, err
	}
	return c.Inner.Decode(b)
}

func (c Limit[V]) DecodePrefix(b []byte) (V, error) {
	if err := c.check(b); err != nil {
		var zero V
		return zero, err
	}
	return c.Inner.DecodePrefix(b)
}

func (c Limit[V]) check(b []byte) error {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		return fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, len(b), c.MaxDecode)
	}
	return nil
}
