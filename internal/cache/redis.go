package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is the production Store implementation. Values are stored as JSON
// with no expiry — the cache is a durability tier, not a TTL cache.
type Redis struct {
	c *redis.Client
}

// NewRedis connects a Store to the Redis instance at addr.
func NewRedis(addr, password string, db int) *Redis {
	return &Redis{c: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})}
}

// Ping verifies the connection, for use at startup.
func (r *Redis) Ping(ctx context.Context) error {
	return r.c.Ping(ctx).Err()
}

// Get unmarshals the value at key into dst.
// Returns (false, nil) when the key does not exist.
func (r *Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache.Redis.Get %s: %w", key, err)
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return false, fmt.Errorf("cache.Redis.Get %s: decode: %w", key, err)
	}
	return true, nil
}

// Set stores v at key as JSON, overwriting any existing value.
func (r *Redis) Set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache.Redis.Set %s: encode: %w", key, err)
	}
	if err := r.c.Set(ctx, key, b, 0).Err(); err != nil {
		return fmt.Errorf("cache.Redis.Set %s: %w", key, err)
	}
	return nil
}

// Del removes key. Deleting a missing key is not an error.
func (r *Redis) Del(ctx context.Context, key string) error {
	if err := r.c.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache.Redis.Del %s: %w", key, err)
	}
	return nil
}
