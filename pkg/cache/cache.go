// Package cache is a thin redis wrapper used to cache raw feed text between
// reloads. Redis being down is never an error: every helper degrades to a
// miss or a no-op so the storefront just goes back to the network.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/dukaan/config"
)

var RDB *redis.Client

var ctx = context.Background()

// Connect initialises the redis client and verifies the connection with a
// ping. Returns an error so the caller can log a warning and carry on.
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(ctx).Err(); err != nil {
		RDB = nil // mark unavailable so Get/Set/Forget no-op safely
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Client returns the live redis client, or nil when redis is unavailable.
func Client() *redis.Client { return RDB }

// Get retrieves a cached string by key. Returns ("", false) on miss or when
// redis is unavailable.
func Get(key string) (string, bool) {
	if RDB == nil {
		return "", false
	}

	val, err := RDB.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores value under key for the given TTL.
func Set(key, value string, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}
	return RDB.Set(ctx, key, value, ttl).Err()
}

// Forget removes a key.
func Forget(key string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(ctx, key).Err()
}
