package quotelai

import (
	"sync"
	"time"
)

// RateLimiter is a token bucket used to cap speculative requests.
type RateLimiter struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

// RateLimitConfig configures the rate limiter.
type RateLimitConfig struct {
	RequestsPerMinute int // Maximum requests per minute
	BurstSize         int // Maximum burst size (default: same as RPM)
}

// NewRateLimiter creates a limiter that starts with a full bucket.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	return newRateLimiter(cfg, time.Now)
}

func newRateLimiter(cfg RateLimitConfig, now func() time.Time) *RateLimiter {
	rpm := float64(cfg.RequestsPerMinute)
	if rpm <= 0 {
		rpm = 60
	}

	burst := float64(cfg.BurstSize)
	if burst <= 0 {
		burst = rpm
	}

	return &RateLimiter{
		tokens:     burst,
		maxTokens:  burst,
		refillRate: rpm / 60.0,
		lastRefill: now(),
		now:        now,
	}
}

// TryAcquire takes a token if one is available.
func (r *RateLimiter) TryAcquire() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refill()
	if r.tokens >= 1 {
		r.tokens--
		return true
	}
	return false
}

// Available returns the current number of tokens.
func (r *RateLimiter) Available() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refill()
	return r.tokens
}

// refill must be called with the lock held.
func (r *RateLimiter) refill() {
	now := r.now()
	r.tokens += now.Sub(r.lastRefill).Seconds() * r.refillRate
	r.lastRefill = now
	if r.tokens > r.maxTokens {
		r.tokens = r.maxTokens
	}
}
