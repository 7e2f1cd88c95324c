package ratelimit

import (
	"context"
	"time"
)

// Config defines a fixed-window limit
type Config struct {
	MaxRequests int
	Window      time.Duration
}

// DefaultConfig returns the limit applied to result posting
func DefaultConfig() Config {
	return Config{
		MaxRequests: 30,
		Window:      time.Minute,
	}
}

// Allow counts a request against the window for key and reports whether
// it is within the limit.
func Allow(reqCtx context.Context, key string, cfg Config) (bool, error) {
	count, err := rdb.Incr(reqCtx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := rdb.Expire(reqCtx, key, cfg.Window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(cfg.MaxRequests), nil
}
