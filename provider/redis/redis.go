package redis

import (
	"context"
	"errors"
	"sort"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/chunkcache/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

// Redis maps the provider primitives onto GETRANGE, SET, APPEND and MSET.
type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ pr.Provider = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this provider exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

// NewFromURL parses a redis:// or rediss:// URL and returns a provider that
// owns the resulting client. No connection is made until the first command.
func NewFromURL(url string) (*Redis, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return New(Config{Client: goredis.NewClient(opts), CloseClient: true})
}

// GetRange never reports a miss as an error: Redis answers GETRANGE on a
// missing key with an empty string.
func (p *Redis) GetRange(ctx context.Context, key string, start, end int64) ([]byte, error) {
	b, err := p.rdb.GetRange(ctx, key, start, end).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err // transport/server error
	}
	return b, nil
}

func (p *Redis) Set(ctx context.Context, key string, value []byte) error {
	return p.rdb.Set(ctx, key, value, 0).Err()
}

func (p *Redis) Append(ctx context.Context, key string, value []byte) error {
	return p.rdb.Append(ctx, key, string(value)).Err()
}

func (p *Redis) MSet(ctx context.Context, values map[string][]byte) error {
	if len(values) == 0 {
		return nil // MSET with no pairs is a syntax error
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]any, 0, 2*len(values))
	for _, k := range keys {
		pairs = append(pairs, k, values[k])
	}
	return p.rdb.MSet(ctx, pairs...).Err()
}

// Close releases the underlying redis client only when this provider owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (p *Redis) Close(context.Context) error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
