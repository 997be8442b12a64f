package ratelimiter

import (
	"sync"
	"time"
)

// FixedWindowRateLimiter counts requests per client IP inside a fixed
// window. When the window rolls over all counts reset at once.
type FixedWindowRateLimiter struct {
	mu          sync.Mutex
	counts      map[string]int
	limit       int
	window      time.Duration
	windowStart time.Time
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		counts:      make(map[string]int),
		limit:       limit,
		window:      window,
		windowStart: time.Now(),
	}
}

// Allow reports whether the client may proceed. When denied, the second
// return value is how long until the current window expires.
func (rl *FixedWindowRateLimiter) Allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.windowStart) >= rl.window {
		rl.counts = make(map[string]int)
		rl.windowStart = now
	}

	if rl.counts[ip] >= rl.limit {
		return false, rl.window - now.Sub(rl.windowStart)
	}

	rl.counts[ip]++
	return true, 0
}
