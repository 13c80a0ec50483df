package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tabaum/storefront/internal/core/domain"
	"github.com/tabaum/storefront/internal/core/ports"
)

// countingLimiter allows max calls per key.
type countingLimiter struct {
	max  int
	hits map[string]int
	err  error
}

func (l *countingLimiter) Allow(_ context.Context, key string) (ports.RateLimitResult, error) {
	if l.err != nil {
		return ports.RateLimitResult{}, l.err
	}
	l.hits[key]++
	n := l.hits[key]
	res := ports.RateLimitResult{Allowed: n <= l.max, Limit: l.max, Remaining: max(l.max-n, 0)}
	if !res.Allowed {
		res.RetryAfter = 1500 * time.Millisecond
	}
	return res, nil
}

func serveLimited(t *testing.T, mw echo.MiddlewareFunc, ip string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.RemoteAddr = ip + ":5555"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, err
}

func TestRateLimit_EleventhAttemptRejected(t *testing.T) {
	mw := RateLimit("auth", &countingLimiter{max: 10, hits: map[string]int{}}, zerolog.Nop())

	for i := 1; i <= 10; i++ {
		rec, err := serveLimited(t, mw, "10.0.0.1")
		if err != nil || rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d (%v)", i, rec.Code, err)
		}
	}

	rec, err := serveLimited(t, mw, "10.0.0.1")
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if rec.Header().Get(HeaderRetryAfter) != "2" {
		t.Fatalf("expected Retry-After 2, got %q", rec.Header().Get(HeaderRetryAfter))
	}
	if rec.Header().Get(HeaderRateLimitLimit) != "10" || rec.Header().Get(HeaderRateLimitRemaining) != "0" {
		t.Fatalf("unexpected rate limit headers: %v", rec.Header())
	}

	rec, err = serveLimited(t, mw, "10.0.0.2")
	if err != nil || rec.Code != http.StatusOK {
		t.Fatalf("other client should not be limited: %d %v", rec.Code, err)
	}
}

func TestRateLimit_LimiterFailureAllows(t *testing.T) {
	mw := RateLimit("auth", &countingLimiter{err: errors.New("redis down")}, zerolog.Nop())

	rec, err := serveLimited(t, mw, "10.0.0.1")
	if err != nil || rec.Code != http.StatusOK {
		t.Fatalf("expected request through, got %d %v", rec.Code, err)
	}
}
