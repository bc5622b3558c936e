package main

import (
	"github.com/dmitrymomot/folio/core/cookie"
	"github.com/dmitrymomot/folio/core/logger"
	"github.com/dmitrymomot/folio/core/server"
	"github.com/dmitrymomot/folio/core/session"
	"github.com/dmitrymomot/folio/core/sessiontransport"
	"github.com/dmitrymomot/folio/integration/database/mongo"
	"github.com/dmitrymomot/folio/integration/database/redis"
	"github.com/dmitrymomot/folio/internal/api"
	"github.com/dmitrymomot/folio/internal/auth"
	"github.com/dmitrymomot/folio/internal/content"
	"github.com/dmitrymomot/folio/internal/contentsync"
	"github.com/dmitrymomot/folio/pkg/ratelimiter"
)

// Config is the full process configuration, read from the environment
// and an optional .env file.
type Config struct {
	Log    logger.Config
	Server server.Config
	API    api.Config
	// LOGIN_RATE_LIMIT_*; a zero capacity disables throttling.
	LoginLimit ratelimiter.Config `envPrefix:"LOGIN_"`

	Auth             auth.Config
	Cookie           cookie.Config
	Session          session.Config
	SessionTransport sessiontransport.CookieConfig

	Content content.Config
	Sync    contentsync.Config

	Mongo mongo.Config
	Redis redis.Config
}
