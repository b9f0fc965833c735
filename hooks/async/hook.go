// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    ChunkedWriteEvery: 100, // sample logs: ~every 100th chunked write
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := chunkcache.New[Report](chunkcache.Options[Report]{
//	    Provider: provider,
//	    Hooks:    hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/chunkcache"
)

type Hooks struct {
	inner chunkcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ chunkcache.Hooks = (*Hooks)(nil)

func New(inner chunkcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Hooks must not be
// called after Close.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) MalformedValue(k string, err error) { h.try(func() { h.inner.MalformedValue(k, err) }) }
func (h *Hooks) TruncatedValue(k string, n int)     { h.try(func() { h.inner.TruncatedValue(k, n) }) }
func (h *Hooks) ChunkedWrite(k string, chunks, size int) {
	h.try(func() { h.inner.ChunkedWrite(k, chunks, size) })
}
func (h *Hooks) PartialWrite(k string, written, total int, err error) {
	h.try(func() { h.inner.PartialWrite(k, written, total, err) })
}
func (h *Hooks) OversizedBulkValue(k string, size int) {
	h.try(func() { h.inner.OversizedBulkValue(k, size) })
}
