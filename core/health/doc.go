// Package health serves the liveness and readiness probes.
//
//	r.Get("/health/live", health.Liveness[*router.Context])
//	r.Get("/health/ready", health.Readiness[*router.Context](log,
//		health.Check{Name: "mongo", Probe: mongo.Healthcheck(client)},
//		health.Check{Name: "redis", Probe: redis.Healthcheck(rdb)},
//	))
//
// Probes run concurrently under a shared deadline. Any failure turns the
// readiness answer into a 503.
package health
