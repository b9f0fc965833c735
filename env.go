package chunkcache

import (
	"context"
	"fmt"

	"github.com/unkn0wn-root/chunkcache/codec"
	"github.com/unkn0wn-root/chunkcache/config"
	"github.com/unkn0wn-root/chunkcache/provider/redis"
)

// NewFromConfig connects to cfg.RedisURL. The returned cache owns the client;
// Close disconnects it.
func NewFromConfig[V any](cfg *config.Config, cd codec.Codec[V], log Logger) (Cache[V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	p, err := redis.NewFromURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	cc, err := New[V](Options[V]{
		Provider:     p,
		Codec:        cd,
		Namespace:    cfg.Namespace,
		ChunkSize:    cfg.ChunkSize,
		MaxValueSize: cfg.MaxValueSize,
		Logger:       log,
	})
	if err != nil {
		_ = p.Close(context.Background())
		return nil, err
	}
	return cc, nil
}

// NewFromEnv is NewFromConfig over config.FromEnv (REDIS_URL and friends).
func NewFromEnv[V any](cd codec.Codec[V], log Logger) (Cache[V], error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	return NewFromConfig[V](cfg, cd, log)
}
