// Package provider defines the storage abstraction used by chunkcache.
//
// Implementations MUST be byte-for-byte transparent: the concatenation of a Set
// followed by Appends must read back through GetRange exactly as written (no
// prepended/appended metadata, no re-encoding, no mutation). Values written by
// other tools under the same keys are read as-is.
package provider

import "context"

// Provider exposes the primitives chunked reads and writes are built from.
// Must be safe for concurrent use.
type Provider interface {
	// GetRange returns the bytes of key in the inclusive range [start, end],
	// clamped to the stored value. Missing keys and ranges past the end both
	// return a zero-length result and a nil error.
	// If an IO/remote error happens, return (nil, err).
	GetRange(ctx context.Context, key string, start, end int64) ([]byte, error)

	// Set replaces whatever is stored at key with value.
	Set(ctx context.Context, key string, value []byte) error

	// Append adds value to the end of key, creating it when missing.
	// Providers over an evicting cache may return an error for a missing key
	// instead, so a lost prefix never turns into a stored suffix.
	Append(ctx context.Context, key string, value []byte) error

	// MSet writes every pair in one batched call. Atomicity is whatever the
	// backend offers for its batch write.
	MSet(ctx context.Context, values map[string][]byte) error

	// Close releases resources.
	Close(ctx context.Context) error
}

// Clamp returns b[start:end+1] intersected with b's bounds. In-process
// providers share it to mirror GETRANGE on an already-loaded value.
func Clamp(b []byte, start, end int64) []byte {
	n := int64(len(b))
	if start < 0 {
		start = 0
	}
	if end >= n {
		end = n - 1
	}
	if start > end || start >= n {
		return nil
	}
	out := make([]byte, end-start+1)
	copy(out, b[start:end+1])
	return out
}
