package ratelimiter

import (
	"context"
	"time"
)

// Store persists bucket state. ConsumeTokens spends n tokens from key when
// that many are available and reports what is left and when the next
// refill happens.
type Store interface {
	ConsumeTokens(ctx context.Context, key string, n int, cfg Config) (remaining int, allowed bool, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

// Result is the outcome of a single Allow call.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time

	allowed bool
	now     time.Time
}

// Allowed reports whether the request may proceed.
func (r Result) Allowed() bool { return r.allowed }

// RetryAfter is how long a rejected caller should wait. Zero when allowed.
func (r Result) RetryAfter() time.Duration {
	if r.allowed {
		return 0
	}
	if d := r.ResetAt.Sub(r.now); d > 0 {
		return d
	}
	return 0
}

// Bucket is a token bucket limiter keyed by caller.
type Bucket struct {
	store Store
	cfg   Config
	now   func() time.Time
}

// NewBucket returns a token bucket limiter over store.
func NewBucket(store Store, cfg Config) (*Bucket, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, cfg: cfg, now: time.Now}, nil
}

// Allow spends one token for key.
func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN spends n tokens for key, all or nothing.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 || n > b.cfg.Capacity {
		return Result{}, ErrInvalidTokenCount
	}
	remaining, allowed, resetAt, err := b.store.ConsumeTokens(ctx, key, n, b.cfg)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Limit:     b.cfg.Capacity,
		Remaining: remaining,
		ResetAt:   resetAt,
		allowed:   allowed,
		now:       b.now(),
	}, nil
}

// Reset refills the bucket for key.
func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}
