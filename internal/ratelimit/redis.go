package ratelimit

import (
	"context"
	"fmt"
	"time"

	"propertychat/internal/redis"
)

// RedisLimiter implements the same fixed window on redis so multiple gateway
// processes share one counter per client. INCR is atomic server-side; every
// call verifies the counter carries the expiry that ends its window.
type RedisLimiter struct {
	cache   *redis.Client
	window  time.Duration
	ceiling int
}

// NewRedisLimiter constructs a redis-backed fixed-window limiter.
func NewRedisLimiter(cache *redis.Client, window time.Duration, ceiling int) *RedisLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if ceiling <= 0 {
		ceiling = 10
	}
	return &RedisLimiter{cache: cache, window: window, ceiling: ceiling}
}

// Allow increments the client's window counter and compares it against the
// ceiling. Redis errors propagate to the caller, which treats them as
// internal failures rather than silently waving traffic through.
func (l *RedisLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	count, err := l.cache.IncrWindow(ctx, "ratelimit:"+clientID, l.window)
	if err != nil {
		return false, fmt.Errorf("advance rate window: %w", err)
	}
	return count <= int64(l.ceiling), nil
}
