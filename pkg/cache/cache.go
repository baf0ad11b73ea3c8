package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shashiranjanraj/automart/config"
	"github.com/shashiranjanraj/automart/pkg/metrics"
)

// RDB is nil when Redis is not configured or unreachable. Every helper
// no-ops in that case and callers fall back to the database.
var RDB *redis.Client

const driver = "redis"

// Connect initialises the Redis client and verifies the connection with a ping.
func Connect(ctx context.Context) error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(ctx).Err(); err != nil {
		RDB = nil
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Use installs an existing client. Passing nil disables the cache.
func Use(c *redis.Client) {
	RDB = c
}

// Get unmarshals the cached value into dest. Returns true on a hit.
func Get(ctx context.Context, key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(ctx, key).Result()
	if err != nil {
		metrics.CacheMisses.WithLabelValues(driver).Inc()
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.CacheMisses.WithLabelValues(driver).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(driver).Inc()
	return true
}

// Set stores value as JSON under key for the given TTL.
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(ctx, key, data, ttl).Err()
}

// Has reports whether key exists. The second result is false when the
// cache could not answer, so the caller must consult the database.
func Has(ctx context.Context, key string) (exists bool, answered bool) {
	if RDB == nil {
		return false, false
	}
	n, err := RDB.Exists(ctx, key).Result()
	if err != nil {
		return false, false
	}
	return n > 0, true
}

// Del removes one or more keys.
func Del(ctx context.Context, keys ...string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(ctx, keys...).Err()
}
