// Package ratelimit bounds per-key request rates over a fixed window to
// protect sensitive endpoints. The counter is process-local and resets
// sharply at each window boundary, which admits brief bursts at window edges;
// that trade-off is kept deliberately in favor of a simpler algorithm.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed   bool
	Count     int
	Remaining int
	ResetTime time.Time
}

type entry struct {
	count     int
	resetTime time.Time
}

// Limiter tracks request counts per key in a mutex-guarded map. The zero
// value is not usable; create instances with NewLimiter.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewLimiter creates an empty limiter.
func NewLimiter() *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Allow records a request for key and decides whether it fits within limit
// requests per window. A missing or expired entry opens a fresh window with
// count 1. Rejected requests do not increment the counter, so Count stays
// bounded at limit and Remaining never goes negative.
func (l *Limiter) Allow(key string, limit int, window time.Duration) Decision {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || !now.Before(e.resetTime) {
		e = &entry{count: 1, resetTime: now.Add(window)}
		l.entries[key] = e
		return Decision{Allowed: true, Count: 1, Remaining: remaining(limit, 1), ResetTime: e.resetTime}
	}

	if e.count >= limit {
		return Decision{Allowed: false, Count: e.count, Remaining: 0, ResetTime: e.resetTime}
	}

	e.count++
	return Decision{Allowed: true, Count: e.count, Remaining: remaining(limit, e.count), ResetTime: e.resetTime}
}

// Cleanup deletes entries whose window has expired and returns how many were
// removed. Not required for Allow correctness (expired entries are replaced
// lazily); it only bounds memory growth from one-off keys.
func (l *Limiter) Cleanup() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for k, e := range l.entries {
		if !now.Before(e.resetTime) {
			delete(l.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// StartJanitor runs Cleanup every interval until ctx is cancelled.
func (l *Limiter) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Cleanup()
			}
		}
	}()
}

func remaining(limit, count int) int {
	if r := limit - count; r > 0 {
		return r
	}
	return 0
}
