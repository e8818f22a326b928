package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ajaymaurya90/ecompointer-backend/pkg/database"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateLimitResult is the decision for one request
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter handles rate limiting using Redis
type RateLimiter struct {
	redis *database.Redis
	now   func() time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(redis *database.Redis) *RateLimiter {
	return &RateLimiter{
		redis: redis,
		now:   time.Now,
	}
}

// Allow records a request under key using a sliding window log and reports
// whether it fits into limit requests per window. Rejected requests are not
// counted against the window.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error) {
	now := r.now()
	redisKey := "ratelimit:" + key
	member := strconv.FormatInt(now.UnixNano(), 10) + "-" + uuid.NewString()

	var (
		count  *redis.IntCmd
		oldest *redis.ZSliceCmd
	)
	_, err := r.redis.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, redisKey, "-inf", strconv.FormatInt(now.Add(-window).UnixMilli(), 10))
		pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixMilli()), Member: member})
		count = pipe.ZCard(ctx, redisKey)
		oldest = pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
		pipe.PExpire(ctx, redisKey, window)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record request: %w", err)
	}

	used := int(count.Val())
	if used <= limit {
		return &RateLimitResult{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - used,
		}, nil
	}

	if err := r.redis.Client.ZRem(ctx, redisKey, member).Err(); err != nil {
		return nil, fmt.Errorf("failed to discard rejected request: %w", err)
	}

	retryAfter := window
	if entries := oldest.Val(); len(entries) > 0 {
		retryAfter = time.UnixMilli(int64(entries[0].Score)).Add(window).Sub(now)
	}

	return &RateLimitResult{
		Allowed:    false,
		Limit:      limit,
		Remaining:  0,
		RetryAfter: retryAfter,
	}, nil
}
