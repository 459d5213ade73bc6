package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a Provider backed by Redis. Expiration is delegated to
// Redis TTLs, so expired entries disappear on their own. Suitable when
// several instances should share one response cache.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) RedisCache {
	return RedisCache{client: client}
}

func (r RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	bytes, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return bytes, true, nil
}

func (r RedisCache) Put(ctx context.Context, key string, expires time.Time, bytes []byte) error {
	ttl := time.Until(expires)
	if ttl <= 0 {
		// already expired, nothing to store
		return nil
	}
	if err := r.client.Set(ctx, key, bytes, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r RedisCache) Purge(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
