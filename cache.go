package chunkcache

import (
	"context"
	"errors"
	"fmt"

	"github.com/unkn0wn-root/chunkcache/codec"
	pr "github.com/unkn0wn-root/chunkcache/provider"
)

type cache[V any] struct {
	ns        string
	provider  pr.Provider
	codec     codec.Codec[V]
	log       Logger
	hooks     Hooks
	chunkSize int
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Provider == nil {
		return nil, ErrNilProvider
	}
	if opts.ChunkSize < 0 {
		return nil, fmt.Errorf("chunkcache: chunk size must be positive, got %d", opts.ChunkSize)
	}
	if opts.MaxValueSize < 0 {
		return nil, fmt.Errorf("chunkcache: max value size must not be negative, got %d", opts.MaxValueSize)
	}

	c := &cache[V]{
		ns:       opts.Namespace,
		provider: opts.Provider,
	}

	// defaults
	c.codec = coalesceCodec(opts.Codec, opts.MaxValueSize)
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.chunkSize = coalesce(opts.ChunkSize, DefaultChunkSize)

	return c, nil
}

func coalesceCodec[V any](cd codec.Codec[V], maxSize int) codec.Codec[V] {
	if cd == nil {
		cd = codec.JSON[V]{}
	}
	if maxSize > 0 {
		cd = codec.Limit[V]{Inner: cd, MaxDecode: maxSize}
	}
	return cd
}

func (c *cache[V]) Close(ctx context.Context) error {
	return c.provider.Close(ctx)
}

func (c *cache[V]) Get(ctx context.Context, key string, def V) (V, error) {
	v, ok, err := c.Lookup(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// Lookup pulls chunk-sized ranges until the accumulated bytes decode. The
// original chunk boundaries are unknown and irrelevant; only parse validity
// decides when to stop. The first complete value wins, so bytes stored after
// it are never fetched or inspected.
func (c *cache[V]) Lookup(ctx context.Context, key string) (V, bool, error) {
	var zero V
	k := c.storageKey(key)
	size := int64(c.chunkSize)

	buf, err := c.provider.GetRange(ctx, k, 0, size-1)
	if err != nil {
		return zero, false, err
	}
	if len(buf) == 0 {
		return zero, false, nil // miss
	}
	last := len(buf)

	for i := int64(1); ; i++ {
		if int64(last) < size {
			// short read: nothing more is stored
			v, err := c.codec.Decode(buf)
			if errors.Is(err, codec.ErrIncomplete) {
				c.hooks.TruncatedValue(k, len(buf))
				return zero, false, &DecodeError{Key: key, Read: len(buf), Err: ErrTruncated}
			}
			if err != nil {
				return zero, false, c.malformed(key, k, len(buf), err)
			}
			return v, true, nil
		}

		v, err := c.codec.DecodePrefix(buf)
		if err == nil {
			return v, true, nil
		}
		if !errors.Is(err, codec.ErrIncomplete) {
			return zero, false, c.malformed(key, k, len(buf), err)
		}

		next, err := c.provider.GetRange(ctx, k, size*i, size*(i+1)-1)
		if err != nil {
			return zero, false, err
		}
		buf = append(buf, next...)
		last = len(next)
	}
}

func (c *cache[V]) malformed(key, storageKey string, read int, err error) error {
	if errors.Is(err, ErrTooLarge) {
		c.log.Warn("value exceeds max value size", Fields{"key": key, "read": read})
	} else {
		c.hooks.MalformedValue(storageKey, err)
	}
	return &DecodeError{Key: key, Read: read, Err: err}
}

func (c *cache[V]) Set(ctx context.Context, key string, value V) error {
	payload, err := c.codec.Encode(value)
	if err != nil {
		return err
	}
	k := c.storageKey(key)
	chunks := split(payload, c.chunkSize)

	if err := c.provider.Set(ctx, k, chunks[0]); err != nil {
		return err
	}
	for i, chunk := range chunks[1:] {
		if err := c.provider.Append(ctx, k, chunk); err != nil {
			c.log.Debug("chunked set aborted", Fields{"key": key, "written": i + 1, "total": len(chunks), "err": err})
			c.hooks.PartialWrite(k, i+1, len(chunks), err)
			return err
		}
	}
	if len(chunks) > 1 {
		c.log.Debug("chunked set", Fields{"key": key, "chunks": len(chunks), "bytes": len(payload)})
		c.hooks.ChunkedWrite(k, len(chunks), len(payload))
	}
	return nil
}

// MSet keeps every value in one operation; chunking here would trade the
// batch's single round-trip for N appends per key.
func (c *cache[V]) MSet(ctx context.Context, values map[string]V) error {
	if len(values) == 0 {
		return nil
	}
	raw := make(map[string][]byte, len(values))
	for key, v := range values {
		payload, err := c.codec.Encode(v)
		if err != nil {
			return fmt.Errorf("mset %q: %w", key, err)
		}
		k := c.storageKey(key)
		if len(payload) > c.chunkSize {
			c.log.Warn("mset value exceeds chunk size; written unchunked", Fields{"key": key, "bytes": len(payload), "chunkSize": c.chunkSize})
			c.hooks.OversizedBulkValue(k, len(payload))
		}
		raw[k] = payload
	}
	return c.provider.MSet(ctx, raw)
}

func (c *cache[V]) storageKey(userKey string) string {
	if c.ns == "" {
		return userKey
	}
	return c.ns + ":" + userKey
}

// split cuts b into consecutive slices of at most n bytes. An empty b yields a
// single empty chunk so Set still replaces the old value.
func split(b []byte, n int) [][]byte {
	if len(b) <= n {
		return [][]byte{b}
	}
	out := make([][]byte, 0, (len(b)+n-1)/n)
	for len(b) > n {
		out = append(out, b[:n])
		b = b[n:]
	}
	return append(out, b)
}
