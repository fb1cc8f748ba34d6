package quotelai

import (
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestRateLimiter_TryAcquire(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	limiter := newRateLimiter(RateLimitConfig{
		RequestsPerMinute: 60, // 1 per second
		BurstSize:         3,
	}, clock.Now)

	// Should be able to acquire burst size immediately
	for i := range 3 {
		if !limiter.TryAcquire() {
			t.Errorf("Expected to acquire token %d", i)
		}
	}

	// Fourth should fail
	if limiter.TryAcquire() {
		t.Error("Expected fourth acquire to fail")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	limiter := newRateLimiter(RateLimitConfig{RequestsPerMinute: 10}, clock.Now)

	for range 10 {
		limiter.TryAcquire()
	}
	if limiter.TryAcquire() {
		t.Error("Expected acquire to fail after drain")
	}

	// 10 per minute refills one token every 6 seconds
	clock.Advance(5 * time.Second)
	if limiter.TryAcquire() {
		t.Error("Token should not be back after 5s")
	}
	clock.Advance(2 * time.Second)
	if !limiter.TryAcquire() {
		t.Error("Expected acquire to succeed after refill")
	}

	// Refill never exceeds the burst
	clock.Advance(time.Hour)
	if got := limiter.Available(); got != 10 {
		t.Errorf("Expected a full bucket of 10, got %f", got)
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	limiter := newRateLimiter(RateLimitConfig{}, clock.Now)

	if got := limiter.Available(); got != 60 {
		t.Errorf("Expected default burst of 60, got %f", got)
	}
}

func TestRateLimiter_Concurrent(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	limiter := newRateLimiter(RateLimitConfig{
		RequestsPerMinute: 6000,
		BurstSize:         10,
	}, clock.Now)

	var wg sync.WaitGroup
	var mu sync.Mutex
	acquired := 0

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.TryAcquire() {
				mu.Lock()
				acquired++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Should have acquired exactly burst size
	if acquired != 10 {
		t.Errorf("Expected 10 acquired, got %d", acquired)
	}
}
