// Package ratelimit throttles portal login attempts with a Redis-backed
// sliding window.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLoginLimiter counts attempts per key within a sliding window. An
// attempt is consumed whether or not the login later succeeds.
type RedisLoginLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLoginLimiter(client *redis.Client, limit int, window time.Duration) *RedisLoginLimiter {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &RedisLoginLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func (l *RedisLoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := time.Now()
	redisKey := "portal:login_attempts:" + key
	windowStart := now.Add(-l.window).UnixNano()
	nowNano := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, redisKey, l.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	return zcard.Val() < int64(l.limit), nil
}
