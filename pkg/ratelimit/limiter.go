package ratelimit

import (
	"context"
	"sync"
	"time"

	"strategy-backtest/pkg/cache"

	"golang.org/x/time/rate"
)

// LimiterStore hands out one limiter per key, e.g. one per backtest caller.
// A limiter not used for idle is dropped, so the store stays bounded by the
// number of keys active within that window.
type LimiterStore struct {
	limiters cache.Cache
	mu       sync.Mutex
	r        rate.Limit
	burst    int
}

// NewLimiterStore returns a store whose limiters expire after idle without use.
// idle <= 0 keeps limiters forever.
func NewLimiterStore(r rate.Limit, burst int, idle time.Duration) *LimiterStore {
	cleanup := idle
	if idle <= 0 {
		idle, cleanup = -1, 0
	}
	return &LimiterStore{
		limiters: cache.NewCache(idle, cleanup),
		r:        r,
		burst:    burst,
	}
}

// PerMinute converts a requests-per-minute budget into a rate.Limit. Zero or less
// means unlimited.
func PerMinute(requests int) rate.Limit {
	if requests <= 0 {
		return rate.Inf
	}
	return rate.Every(time.Minute / time.Duration(requests))
}

func (s *LimiterStore) GetLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := cache.GetFromCache[*rate.Limiter](s.limiters, key)
	if !exists {
		limiter = rate.NewLimiter(s.r, s.burst)
	}
	// re-set on every use so the expiration slides
	s.limiters.Set(key, limiter, cache.DefaultExpiration)
	return limiter
}

// Len reports how many keys currently hold a limiter.
func (s *LimiterStore) Len() int {
	return s.limiters.ItemCount()
}

// Wait blocks until the limiter for key allows one event or ctx is done.
func (s *LimiterStore) Wait(ctx context.Context, key string) error {
	return s.GetLimiter(key).Wait(ctx)
}
