package ports

import (
	"context"
	"time"
)

// RateLimitResult describes one admission decision.
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // zero when allowed
}

// RateLimiter admits requests against a fixed budget per rolling window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateLimitResult, error)
}
