// Package ratelimit provides the token-bucket limiter shared by every
// submission of an export pipeline.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/saifahn/dendron/internal/core/domain"
	"github.com/saifahn/dendron/internal/core/ports/driven"
)

// DefaultBackoff is the pause applied after a rate limit response that
// carries no retry hint.
const DefaultBackoff = 60 * time.Second

var (
	_ driven.RateLimiter     = (*Limiter)(nil)
	_ driven.BackoffRecorder = (*Limiter)(nil)
)

// Config holds rate limiting configuration.
type Config struct {
	// Requests is the number of requests allowed per Window.
	Requests int
	// Window is the period the request budget refers to.
	Window time.Duration
	// Burst is the maximum number of requests issued back to back.
	// With a burst of 1 requests are evenly spaced and no window of
	// length Window ever holds more than Requests calls.
	Burst int
}

// Limiter is a token bucket with an optional reactive backoff for 429 responses.
type Limiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	burst   int
}

// New creates a limiter from cfg.
func New(cfg Config) (*Limiter, error) {
	if cfg.Requests < 1 || cfg.Window <= 0 {
		return nil, fmt.Errorf("%w: rate limit needs at least one request per positive window", domain.ErrInvalidInput)
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	every := rate.Every(cfg.Window / time.Duration(cfg.Requests))
	return &Limiter{
		limiter: rate.NewLimiter(every, cfg.Burst),
		burst:   cfg.Burst,
	}, nil
}

// NewPerSecond creates a limiter allowing rps requests per second.
func NewPerSecond(rps float64, burst int) (*Limiter, error) {
	if rps <= 0 {
		return nil, fmt.Errorf("%w: requests per second must be positive", domain.ErrInvalidInput)
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		burst:   burst,
	}, nil
}

// WaitN blocks until n requests can be made without exceeding the rate limit.
// It respects any backoff period set by RecordRateLimitError. Requests larger
// than the burst are acquired in burst-sized steps rather than rejected.
func (l *Limiter) WaitN(ctx context.Context, n int) error {
	if err := l.waitBackoff(ctx); err != nil {
		return err
	}

	for n > 0 {
		step := min(n, l.burst)
		if err := l.limiter.WaitN(ctx, step); err != nil {
			return err
		}
		n -= step
	}
	return nil
}

// Wait is WaitN(ctx, 1).
func (l *Limiter) Wait(ctx context.Context) error {
	return l.WaitN(ctx, 1)
}

func (l *Limiter) waitBackoff(ctx context.Context) error {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if !time.Now().Before(retryAt) {
		return nil
	}

	timer := time.NewTimer(time.Until(retryAt))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RecordRateLimitError pauses acquisition after the destination reported
// a rate limit violation. Non-positive durations select DefaultBackoff.
func (l *Limiter) RecordRateLimitError(retryAfter time.Duration) {
	if retryAfter <= 0 {
		retryAfter = DefaultBackoff
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Never shorten an existing backoff
	if until := time.Now().Add(retryAfter); until.After(l.retryAt) {
		l.retryAt = until
	}
}

// Allow checks if a request can be made immediately without blocking.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}
	return l.limiter.Allow()
}
