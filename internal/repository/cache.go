package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"hitechhomes/internal/observability"
)

// Cache is a small read-through cache port used for the unconditional
// recent-listings queries.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
}

// RedisCache implements Cache on a Redis client
type RedisCache struct{ c *redis.Client }

// NewRedisCache connects to Redis
func NewRedisCache(addr, pass string, db int) *RedisCache {
	return &RedisCache{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

// Get unmarshals the cached value into dst; false means a miss
func (r *RedisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("redis", "hit")
	return true, json.Unmarshal(v, dst)
}

// Set stores v as JSON with a TTL
func (r *RedisCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, key, b, time.Duration(ttlSec)*time.Second).Err()
}

// NoopCache is used when no Redis address is configured
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, key string, dst any) (bool, error) { return false, nil }
func (NoopCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	return nil
}
