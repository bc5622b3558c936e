// Package ratelimiter implements token bucket rate limiting over a
// pluggable Store.
//
// A Bucket holds Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each Allow call spends one token; a call that finds the
// bucket empty is rejected and spends nothing.
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     1,
//		RefillInterval: 30 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	res, err := limiter.Allow(ctx, clientIP)
//	if err != nil {
//		return err
//	}
//	if !res.Allowed() {
//		// answer 429, retry after res.RetryAfter()
//	}
//
// MemoryStore keeps buckets in process. Its Run method evicts idle buckets
// and is meant to be started in an errgroup next to the HTTP server.
package ratelimiter
