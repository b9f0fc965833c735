package bigcache

import (
	"context"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	pr "github.com/unkn0wn-root/chunkcache/provider"
)

// Provider keeps values in an in-process BigCache. BigCache has a native
// Append, so chunked writes need no read-modify-write here.
type Provider struct {
	c *bc.BigCache
}

var _ pr.Provider = (*Provider)(nil)

const defaultLifeWindow = 10 * time.Minute

type Config struct {
	LifeWindow         time.Duration // BigCache has no per-entry TTL; every entry lives this long. 0 => 10m
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(ctx context.Context, cfg Config) (*Provider, error) {
	life := cfg.LifeWindow
	if life <= 0 {
		life = defaultLifeWindow
	}
	conf := bc.DefaultConfig(life)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(ctx, conf)
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) GetRange(_ context.Context, key string, start, end int64) ([]byte, error) {
	b, err := p.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return pr.Clamp(b, start, end), nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte) error {
	return p.c.Set(key, value)
}

func (p *Provider) Append(_ context.Context, key string, value []byte) error {
	return p.c.Append(key, value)
}

// MSet is not atomic; BigCache has no batch write.
func (p *Provider) MSet(_ context.Context, values map[string][]byte) error {
	for k, v := range values {
		if err := p.c.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	return p.c.Close()
}
