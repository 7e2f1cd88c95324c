package ratelimit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var (
	rdb *redis.Client
	ctx = context.Background()
)

// InitRedis initializes the Redis client. An empty addr leaves rate
// limiting disabled.
func InitRedis(addr, password string, db int) error {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	rdb = client
	return nil
}

// Enabled reports whether a Redis backend is available.
func Enabled() bool {
	return rdb != nil
}
