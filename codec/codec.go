package codec

import "errors"

// ErrIncomplete reports that the input is a truncated prefix of a valid
// encoding. Callers that can fetch more input should retry with a longer
// prefix; any other Decode error means the input is malformed.
var ErrIncomplete = errors.New("codec: incomplete input")

// Codec encodes/decodes values V to []byte for storage.
//
// The encoding must be self-delimiting: given a prefix of a valid encoding the
// codec has to tell "need more bytes" (ErrIncomplete) apart from "invalid".
// Decoding stops at the end of the first complete value; whatever follows it
// is not inspected, so the result never depends on how much input follows.
type Codec[V any] interface {
	Encode(V) ([]byte, error)

	// Decode parses b knowing no more input follows.
	// A truncated b still yields ErrIncomplete.
	Decode([]byte) (V, error)

	// DecodePrefix parses b where more input may follow.
	// It returns ErrIncomplete whenever an extra byte could change the result.
	DecodePrefix([]byte) (V, error)
}
