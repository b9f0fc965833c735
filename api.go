package chunkcache

import (
	"context"

	c "github.com/unkn0wn-root/chunkcache/codec"
	pr "github.com/unkn0wn-root/chunkcache/provider"
)

// Cache is the high-level API over a chunking-aware provider.
// V is the caller's value type. Serialization is handled by a pluggable Codec[V].
type Cache[V any] interface {
	// Get returns the value stored at key, or def when key is absent.
	Get(ctx context.Context, key string, def V) (V, error)
	// Lookup is Get with an explicit hit flag.
	Lookup(ctx context.Context, key string) (v V, ok bool, err error)

	// Set overwrites key with value, split into one write and N appends.
	Set(ctx context.Context, key string, value V) error

	// MSet writes all values in a single batched call. Values are never
	// chunked on this path, whatever their size.
	MSet(ctx context.Context, values map[string]V) error

	Close(context.Context) error
}

// Options tune the behavior of the cache.
// Only Provider is required; others have sensible defaults.
type Options[V any] struct {
	// Required
	Provider pr.Provider

	Codec        c.Codec[V] // nil => codec.JSON[V]
	Namespace    string     // optional key prefix, "<ns>:<key>"; empty => keys used verbatim
	ChunkSize    int        // bytes per store operation; 0 => DefaultChunkSize
	MaxValueSize int        // reader gives up past this many bytes; 0 => unlimited
	Logger       Logger     // if nil, NopLogger is used
	Hooks        Hooks      // if nil, NopHooks is used
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}
