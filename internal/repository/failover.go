package repository

import (
	"context"
	"sync/atomic"
	"time"

	"grocery/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverRateLimiter asks the primary limiter until it errors, then serves
// from the fallback and probes the primary again on a backoff schedule.
type FailoverRateLimiter struct {
	primary  domain.RateLimiter
	fallback domain.RateLimiter
	logger   *zerolog.Logger
	policy   RetryPolicy

	isDown    atomic.Bool
	failures  atomic.Int32
	nextProbe atomic.Int64 // unix nanos
}

func NewFailoverRateLimiter(primary, fallback domain.RateLimiter, policy RetryPolicy, logger *zerolog.Logger) *FailoverRateLimiter {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &FailoverRateLimiter{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		policy:   policy,
	}
}

func (r *FailoverRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if !r.isDown.Load() || time.Now().UnixNano() >= r.nextProbe.Load() {
		allowed, err := r.primary.Allow(ctx, key)
		if err == nil {
			if r.isDown.Swap(false) {
				r.failures.Store(0)
				r.logger.Info().Msg("primary rate limiter recovered")
			}
			return allowed, nil
		}
		r.markDown(err)
	}

	return r.fallback.Allow(ctx, key)
}

func (r *FailoverRateLimiter) markDown(err error) {
	attempt := int(r.failures.Add(1))
	delay := r.policy.NextDelay(attempt)
	r.nextProbe.Store(time.Now().Add(delay).UnixNano())
	if !r.isDown.Swap(true) {
		r.logger.Error().Err(err).Msg("primary rate limiter failed, falling back to memory")
		return
	}
	r.logger.Warn().Err(err).Dur("next_probe_in", delay).Msg("primary rate limiter still failing")
}
