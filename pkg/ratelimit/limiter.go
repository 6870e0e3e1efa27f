package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	// Allow checks if a request is allowed under the current rate limit
	Allow() bool
	// Wait blocks until the rate limit allows another request or ctx ends
	Wait(ctx context.Context) error
	// Reset resets the rate limiter state
	Reset()
}

// TokenBucket implements a token bucket rate limiter on top of x/time/rate
type TokenBucket struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	limiter *rate.Limiter
}

// NewTokenBucket creates a limiter that refills one token every interval
func NewTokenBucket(burst int, interval time.Duration) *TokenBucket {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &TokenBucket{
		limit:   limit,
		burst:   burst,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// NewPerMinute creates a limiter allowing requestsPerMinute evenly spaced requests
func NewPerMinute(requestsPerMinute int) *TokenBucket {
	if requestsPerMinute <= 0 {
		return NewTokenBucket(1, 0)
	}
	return NewTokenBucket(1, time.Minute/time.Duration(requestsPerMinute))
}

// Allow checks if a request can proceed
func (tb *TokenBucket) Allow() bool {
	return tb.current().Allow()
}

// Wait blocks until a token is available
func (tb *TokenBucket) Wait(ctx context.Context) error {
	return tb.current().Wait(ctx)
}

// Reset resets the token bucket to full capacity
func (tb *TokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.limiter = rate.NewLimiter(tb.limit, tb.burst)
}

func (tb *TokenBucket) current() *rate.Limiter {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.limiter
}

// FixedDelay is an unconditional pause with no backoff and no jitter
type FixedDelay struct {
	Delay time.Duration
}

// NewFixedDelay creates a fixed pause of d
func NewFixedDelay(d time.Duration) *FixedDelay {
	return &FixedDelay{Delay: d}
}

// Allow always reports true; a fixed delay never refuses
func (f *FixedDelay) Allow() bool { return true }

// Wait pauses for the configured delay
func (f *FixedDelay) Wait(ctx context.Context) error {
	return Sleep(ctx, f.Delay)
}

// Reset is a no-op
func (f *FixedDelay) Reset() {}

// Sleep waits for delay or until ctx is done
func Sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
