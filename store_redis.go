package readable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces artifact keys in Redis.
const DefaultRedisPrefix = "readable:artifact:"

// RedisCache keeps artifacts in Redis so several hosts can share generated
// lexicons.
type RedisCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisCache returns a RedisCache using client. A zero ttl keeps
// artifacts until they are overwritten.
func NewRedisCache(client redis.Cmdable, prefix string, ttl time.Duration) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) key(name string) string {
	return c.prefix + name
}

// Get fetches the artifact stored under name.
func (c *RedisCache) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", name, ErrArtifactNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", name, err)
	}
	return data, nil
}

// Put replaces the artifact stored under name.
func (c *RedisCache) Put(ctx context.Context, name string, data []byte) error {
	if err := c.client.Set(ctx, c.key(name), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", name, err)
	}
	return nil
}
