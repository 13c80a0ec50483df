package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tabaum/storefront/internal/core/ports"
)

// RateLimiter is a rolling-window counter stored in a Redis sorted set.
// Key format: ratelimit:<scope>:<key>
// Rejected calls are not counted, so RetryAfter is when the oldest counted
// call leaves the window and a slot frees up.
type RateLimiter struct {
	client *redis.Client
	scope  string
	max    int
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter allows max calls per key within window.
func NewRateLimiter(client *redis.Client, scope string, max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		scope:  scope,
		max:    max,
		window: window,
		now:    time.Now,
	}
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *RateLimiter) Allow(ctx context.Context, key string) (ports.RateLimitResult, error) {
	now := l.now()
	k := l.key(key)
	nowMs := now.UnixMilli()
	windowStart := nowMs - l.window.Milliseconds()

	member := uuid.NewString()
	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, k, "-inf", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, k, redis.Z{Score: float64(nowMs), Member: member})
	count := pipe.ZCard(ctx, k)
	oldest := pipe.ZRangeWithScores(ctx, k, 0, 0)
	pipe.PExpire(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return ports.RateLimitResult{}, fmt.Errorf("rate limit: %w", err)
	}

	n := int(count.Val())
	res := ports.RateLimitResult{
		Allowed:   n <= l.max,
		Limit:     l.max,
		Remaining: max(l.max-n, 0),
	}
	if !res.Allowed {
		if err := l.client.ZRem(ctx, k, member).Err(); err != nil {
			return ports.RateLimitResult{}, fmt.Errorf("rate limit: %w", err)
		}
		res.RetryAfter = l.window
		if z := oldest.Val(); len(z) > 0 {
			reset := time.UnixMilli(int64(z[0].Score)).Add(l.window)
			res.RetryAfter = max(reset.Sub(now), time.Second)
		}
	}
	return res, nil
}

func (l *RateLimiter) key(key string) string {
	return fmt.Sprintf("ratelimit:%s:%s", l.scope, key)
}
