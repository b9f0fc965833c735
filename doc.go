// Package chunkcache stores serialized values in a key-value store whose
// single-operation payloads are bounded, by splitting large values across one
// write and N appends and reassembling them on read.
//
// Components:
//   - Provider: range-read / write / append / batch-write byte store (e.g. Redis).
//   - Codec[V]: self-delimiting (de)serializer V <-> []byte; JSON by default.
//
// Wire format: the stored bytes are exactly Codec.Encode(value). There is no
// length prefix and no chunk count, so values written in one SET by older code
// or by other tools read back unchanged.
//
// Read path:
//
//	buf := GETRANGE key 0 size-1
//	for buf is an incomplete prefix {
//	    buf += GETRANGE key size*i size*(i+1)-1
//	}
//
// A short read means the stored value has ended; if the prefix is still
// incomplete at that point the read fails with ErrTruncated.
//
// Concurrency: a Get racing a Set on the same key may observe a half-written
// value. Callers that need consistency must serialize writers themselves.
//
// MSet does not chunk. Values larger than one chunk go out whole in the batch.
package chunkcache
