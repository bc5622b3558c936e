// Package redis connects to Redis with retries and exposes a readiness
// probe. The service uses it for the shared session store.
//
//	client, err := redis.Connect(ctx, cfg) // REDIS_URL=redis://localhost:6379/0
//	store, err := session.NewRedisStore(client)
//	check := health.Check{Name: "redis", Probe: redis.Healthcheck(client)}
//
// Only redis:// and rediss:// URLs are accepted.
package redis
