package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counts events per key within a fixed window.
type Limiter interface {
	// Allow increments the counter for the key and reports whether the
	// event stays within the limit.
	Allow(ctx context.Context, key string) (bool, error)
}

type redisLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewRedisLimiter creates a fixed-window limiter backed by Redis.
func NewRedisLimiter(client *redis.Client, prefix string, limit int64, window time.Duration) Limiter {
	return &redisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	// Set the expiry only when the key is created so the window does not
	// slide on every attempt.
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit expiry: %w", err)
		}
	}

	return count <= l.limit, nil
}
