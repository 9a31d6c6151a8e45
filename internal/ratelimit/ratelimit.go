// Package ratelimit provides a keyed token-bucket rate limiter with both
// non-blocking (Allow) and blocking (Wait) forms.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// KeyedRateLimiter hands each distinct key its own token bucket. Inbound
// callers key by client; outbound clients key by host.
type KeyedRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a keyed limiter allowing rps requests per second with the
// given burst headroom per key.
func New(rps float64, burst int) *KeyedRateLimiter {
	k := &KeyedRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
		done:     make(chan struct{}),
	}
	return k
}

// Allow reports whether a request for the key may proceed right now.
func (k *KeyedRateLimiter) Allow(key string) bool {
	return k.limiterFor(key).Allow()
}

// Wait blocks until the key's bucket permits a request or ctx is canceled.
func (k *KeyedRateLimiter) Wait(ctx context.Context, key string) error {
	return k.limiterFor(key).Wait(ctx)
}

func (k *KeyedRateLimiter) limiterFor(key string) *rate.Limiter {
	k.mu.RLock()
	limiter, ok := k.limiters[key]
	k.mu.RUnlock()
	if ok {
		return limiter
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if limiter, ok = k.limiters[key]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(k.limit, k.burst)
	k.limiters[key] = limiter
	return limiter
}

// Stop releases the limiter. Entries are never evicted while running: the
// key space is a handful of hosts or clients, so the map stays small for
// the life of the process.
func (k *KeyedRateLimiter) Stop() {
	k.stopOnce.Do(func() {
		close(k.done)
	})
}
