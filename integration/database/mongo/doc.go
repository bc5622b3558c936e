// Package mongo opens MongoDB connections with retry and exposes a
// readiness probe. It backs the content mirror.
//
// Configuration comes from MONGODB_URL, MONGODB_DATABASE and the
// MONGODB_* pool and retry settings in Config. New retries Connect+Ping
// with linearly growing waits, which covers cold starts of managed
// clusters.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	mirror := content.NewMongoMirror(db)
//	check := health.Check{Name: "mongo", Probe: mongo.Healthcheck(db.Client())}
package mongo
