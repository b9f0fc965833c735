package chunkcache

import (
	"errors"
	"fmt"

	c "github.com/unkn0wn-root/chunkcache/codec"
)

var (
	// ErrTruncated means the store stopped returning bytes before the
	// accumulated prefix formed a complete value.
	ErrTruncated = errors.New("chunkcache: value ended before encoding was complete")

	// ErrTooLarge means the value grew past Options.MaxValueSize while reading.
	ErrTooLarge = c.ErrPayloadTooLarge

	ErrNilProvider = errors.New("chunkcache: provider is required")
)

// DecodeError is returned by Get/Lookup when the bytes under Key cannot be
// reconstructed into a value. Read is how many bytes had been fetched.
type DecodeError struct {
	Key  string
	Read int
	Err  error
}

func (e *DecodeError) Error() string {
	if errors.Is(e.Err, ErrTruncated) {
		return fmt.Sprintf("decode %q: value truncated after %d bytes", e.Key, e.Read)
	}
	return fmt.Sprintf("decode %q after %d bytes: %v", e.Key, e.Read, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
