package storage

import (
	"context"
	"fmt"
	"time"
)

// KeyValueClient is the subset of the redis client the provider uses.
type KeyValueClient interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// RedisProvider stores each origin's keys under "<prefix>:<origin>:<key>".
type RedisProvider struct {
	client KeyValueClient
	prefix string
	ttl    time.Duration
}

// NewRedisProvider builds a provider. A zero ttl keeps keys forever; a
// positive ttl is refreshed on every write.
func NewRedisProvider(client KeyValueClient, prefix string, ttl time.Duration) *RedisProvider {
	if prefix == "" {
		prefix = "storefront"
	}
	return &RedisProvider{client: client, prefix: prefix, ttl: ttl}
}

func (p *RedisProvider) Scope(origin string) Storage {
	return &redisScope{provider: p, origin: origin}
}

func (p *RedisProvider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

func (p *RedisProvider) Name() string {
	return BackendRedis
}

func (p *RedisProvider) key(origin, key string) string {
	return fmt.Sprintf("%s:%s:%s", p.prefix, origin, key)
}

type redisScope struct {
	provider *RedisProvider
	origin   string
}

func (s *redisScope) GetItem(ctx context.Context, key string) (string, bool, error) {
	if s.origin == "" || key == "" {
		return "", false, ErrInvalidKey
	}
	return s.provider.client.Get(ctx, s.provider.key(s.origin, key))
}

func (s *redisScope) SetItem(ctx context.Context, key, value string) error {
	if s.origin == "" || key == "" {
		return ErrInvalidKey
	}
	return s.provider.client.Set(ctx, s.provider.key(s.origin, key), value, s.provider.ttl)
}

func (s *redisScope) RemoveItem(ctx context.Context, key string) error {
	if s.origin == "" || key == "" {
		return ErrInvalidKey
	}
	return s.provider.client.Del(ctx, s.provider.key(s.origin, key))
}
