package ristretto

import (
	"context"
	"errors"
	"sync"

	rc "github.com/dgraph-io/ristretto"

	pr "github.com/unkn0wn-root/chunkcache/provider"
)

var (
	// ErrRejected is returned when ristretto's admission policy drops a write.
	ErrRejected = errors.New("ristretto: write rejected")

	// ErrEvicted is returned by Append when the key it extends is gone.
	ErrEvicted = errors.New("ristretto: append to missing key")
)

// Provider keeps values in an in-process ristretto cache. Append is a
// read-modify-write under a mutex; ristretto has no native append.
//
// Ristretto may evict an entry at any time, even one whose Set was accepted.
// Chunked values are therefore best-effort: Append refuses to extend a key
// that is not present instead of storing a bare suffix, and the chunked Set
// fails with ErrEvicted.
type Provider struct {
	mu sync.Mutex // serializes Set/Append/MSet so appends never interleave
	c  *rc.Cache
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64 // in bytes; each value costs its length
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Provider, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) get(key string) ([]byte, bool) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (p *Provider) GetRange(_ context.Context, key string, start, end int64) ([]byte, error) {
	b, _ := p.get(key)
	return pr.Clamp(b, start, end), nil
}

// put stores a private copy and waits so the next Get observes it.
func (p *Provider) put(key string, value []byte) error {
	b := append([]byte(nil), value...)
	if !p.c.Set(key, b, int64(len(b))) {
		return ErrRejected
	}
	p.c.Wait()
	return nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.put(key, value)
}

func (p *Provider) Append(_ context.Context, key string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	cur, ok := p.get(key)
	if !ok {
		return ErrEvicted
	}
	next := make([]byte, 0, len(cur)+len(value))
	next = append(append(next, cur...), value...)
	return p.put(key, next)
}

// MSet is not atomic; ristretto has no batch write.
func (p *Provider) MSet(_ context.Context, values map[string][]byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for k, v := range values {
		if err := p.put(k, v); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Helper to expose metrics if desired by the application (not part of provider.Provider).
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
