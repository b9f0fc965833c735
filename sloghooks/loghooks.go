package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/chunkcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	ChunkedWriteEvery  uint64
	OversizedBulkEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	chunkedCtr   atomic.Uint64
	oversizedCtr atomic.Uint64
}

var _ chunkcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) ChunkedWrite(storageKey string, chunks, size int) {
	if h.l == nil || !sample(h.opts.ChunkedWriteEvery, &h.chunkedCtr) {
		return
	}
	h.l.Debug("chunkcache.chunked_write",
		"key", h.redact(storageKey),
		"chunks", chunks,
		"bytes", size)
}

func (h *Hooks) PartialWrite(storageKey string, written, total int, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("chunkcache.partial_write",
		"key", h.redact(storageKey),
		"written", written,
		"total", total,
		"err", err)
}

func (h *Hooks) MalformedValue(storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("chunkcache.malformed_value",
		"key", h.redact(storageKey),
		"err", err)
}

func (h *Hooks) TruncatedValue(storageKey string, read int) {
	if h.l == nil {
		return
	}
	h.l.Warn("chunkcache.truncated_value",
		"key", h.redact(storageKey),
		"read", read)
}

func (h *Hooks) OversizedBulkValue(storageKey string, size int) {
	if h.l == nil || !sample(h.opts.OversizedBulkEvery, &h.oversizedCtr) {
		return
	}
	h.l.Info("chunkcache.oversized_bulk_value",
		"key", h.redact(storageKey),
		"bytes", size)
}
