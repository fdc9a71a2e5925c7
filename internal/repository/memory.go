package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// DefaultIdleTTL is how long a client's bucket may sit unused before it is
// dropped.
const DefaultIdleTTL = 10 * time.Minute

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// MemoryRateLimiter keeps one token bucket per key in process memory.
// Buckets idle for longer than the idle TTL are evicted, so memory is bounded
// by the number of keys seen within one TTL.
type MemoryRateLimiter struct {
	limiters sync.Map // map[string]*limiterEntry
	rps      float64
	burst    int

	idleTTL   time.Duration
	lastSweep atomic.Int64
	now       func() time.Time
}

func NewMemoryRateLimiter(rps float64, burst int) *MemoryRateLimiter {
	if burst <= 0 {
		burst = 5
	}
	l := &MemoryRateLimiter{rps: rps, burst: burst, now: time.Now}
	l.SetIdleTTL(DefaultIdleTTL)
	l.lastSweep.Store(l.now().UnixNano())
	return l
}

// SetIdleTTL changes the eviction age. It never drops below the time an
// empty bucket needs to refill, so eviction cannot hand out extra tokens.
func (l *MemoryRateLimiter) SetIdleTTL(ttl time.Duration) {
	if l.rps > 0 {
		refill := time.Duration(float64(l.burst) / l.rps * float64(time.Second))
		if ttl < refill {
			ttl = refill
		}
	}
	l.idleTTL = ttl
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()
	entry := l.getEntry(key)
	entry.lastSeen.Store(now.UnixNano())
	allowed := entry.lim.AllowN(now, 1)

	l.maybeSweep(now)
	return allowed, nil
}

// Len reports how many keys currently hold a bucket.
func (l *MemoryRateLimiter) Len() int {
	n := 0
	l.limiters.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Sweep evicts buckets idle for longer than the TTL and returns how many
// were removed.
func (l *MemoryRateLimiter) Sweep(now time.Time) int {
	cutoff := now.Add(-l.idleTTL).UnixNano()
	removed := 0
	l.limiters.Range(func(k, v any) bool {
		if entry, ok := v.(*limiterEntry); ok && entry.lastSeen.Load() < cutoff {
			if l.limiters.CompareAndDelete(k, v) {
				removed++
			}
		}
		return true
	})
	return removed
}

func (l *MemoryRateLimiter) maybeSweep(now time.Time) {
	last := l.lastSweep.Load()
	if now.UnixNano()-last < int64(l.idleTTL) {
		return
	}
	if l.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		l.Sweep(now)
	}
}

func (l *MemoryRateLimiter) getEntry(key string) *limiterEntry {
	if v, ok := l.limiters.Load(key); ok {
		if entry, ok := v.(*limiterEntry); ok {
			return entry
		}
	}

	entry := &limiterEntry{lim: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
	actual, loaded := l.limiters.LoadOrStore(key, entry)
	if loaded {
		if actualEntry, ok := actual.(*limiterEntry); ok {
			return actualEntry
		}
	}
	return entry
}
