package ratelimiter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock { return &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var cfg = ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: 10 * time.Second}

func TestMemoryStore_ConsumeTokens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("new bucket starts full", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()

		remaining, allowed, resetAt, err := store.ConsumeTokens(ctx, "k", 2, cfg)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 1, remaining)
		assert.False(t, resetAt.IsZero())
	})

	t.Run("rejection spends nothing", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()

		_, _, _, err := store.ConsumeTokens(ctx, "k", 3, cfg)
		require.NoError(t, err)

		remaining, allowed, _, err := store.ConsumeTokens(ctx, "k", 1, cfg)
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 0, remaining)
	})

	t.Run("refills per interval up to capacity", func(t *testing.T) {
		t.Parallel()
		clk := newClock()
		store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clk.Now))

		_, _, _, err := store.ConsumeTokens(ctx, "k", 3, cfg)
		require.NoError(t, err)

		clk.Advance(15 * time.Second)
		remaining, allowed, _, err := store.ConsumeTokens(ctx, "k", 1, cfg)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 0, remaining)

		clk.Advance(time.Hour)
		remaining, allowed, _, err = store.ConsumeTokens(ctx, "k", 1, cfg)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2, remaining)
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()

		_, _, _, err := store.ConsumeTokens(ctx, "a", 3, cfg)
		require.NoError(t, err)
		remaining, allowed, _, err := store.ConsumeTokens(ctx, "b", 1, cfg)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2, remaining)
	})

	t.Run("concurrent callers never overspend", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()
		big := ratelimiter.Config{Capacity: 50, RefillRate: 1, RefillInterval: time.Hour}

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			granted int
		)
		for range 200 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, ok, _, err := store.ConsumeTokens(ctx, "k", 1, big)
				if err == nil && ok {
					mu.Lock()
					granted++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, granted)
	})
}

func TestMemoryStore_ResetAndStale(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clk := newClock()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clk.Now), ratelimiter.WithStaleAfter(time.Minute))

	_, _, _, err := store.ConsumeTokens(ctx, "a", 3, cfg)
	require.NoError(t, err)
	require.NoError(t, store.Reset(ctx, "a"))
	remaining, allowed, _, err := store.ConsumeTokens(ctx, "a", 1, cfg)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 2, remaining)

	clk.Advance(30 * time.Second)
	_, _, _, err = store.ConsumeTokens(ctx, "b", 1, cfg)
	require.NoError(t, err)
	clk.Advance(45 * time.Second)

	assert.Equal(t, 1, store.RemoveStale())
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_Run(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- store.Run(ctx) }()

	require.Eventually(t, store.Running, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, store.Run(ctx), ratelimiter.ErrAlreadyRunning)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}
