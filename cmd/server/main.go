package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/folio/core/config"
	"github.com/dmitrymomot/folio/core/cookie"
	"github.com/dmitrymomot/folio/core/health"
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
	"github.com/dmitrymomot/folio/middleware"
	"github.com/dmitrymomot/folio/pkg/ratelimiter"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg)

	log := logger.New(cfg.Log, middleware.RequestIDExtractor())

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Application failed", logger.Error(err))
		os.Exit(1)
	}
	log.Info("Application stopped")
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	var checks []health.Check

	// Mirror is optional; without it the JSON files are the only store.
	var mirror content.Mirror
	if cfg.Mongo.Enabled() {
		db, err := mongo.NewWithDatabase(ctx, cfg.Mongo)
		if err != nil {
			return err
		}
		defer disconnectMongo(db.Client(), log)
		mirror = content.NewMongoMirror(db)
		checks = append(checks, health.Check{Name: "mongo", Probe: mongo.Healthcheck(db.Client())})
	} else {
		log.Warn("MONGODB_URL is not set, running on JSON files only", logger.Component("content"))
	}

	store, rdb, err := sessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer closeRedis(rdb, log)
		checks = append(checks, health.Check{Name: "redis", Probe: redis.Healthcheck(rdb)})
	}

	sessions, err := session.NewFromConfig(cfg.Session, store,
		session.WithLogger(log.With(logger.Component("session"))))
	if err != nil {
		return err
	}

	if len(cfg.Cookie.SecretList()) == 0 {
		secret, err := randomSecret()
		if err != nil {
			return err
		}
		cfg.Cookie.Secrets = secret
		log.Warn("COOKIE_SECRETS is not set, using an ephemeral secret; sessions will not survive a restart",
			logger.Component("cookie"))
	}
	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return err
	}
	transport := sessiontransport.NewCookieFromConfig(cfg.SessionTransport, cookies)

	verifier, err := auth.NewFromConfig(cfg.Auth, auth.WithLogger(log.With(logger.Component("auth"))))
	if err != nil {
		return err
	}

	coordinator, err := content.NewFromConfig(cfg.Content, mirror,
		content.WithLogger(log.With(logger.Component("content"))))
	if err != nil {
		return err
	}

	deps := api.Deps{
		Verifier:  verifier,
		Sessions:  sessions,
		Transport: transport,
		Content:   coordinator,
		Checks:    checks,
	}
	var limitStore *ratelimiter.MemoryStore
	if cfg.LoginLimit.Enabled() {
		limitStore = ratelimiter.NewMemoryStore(
			ratelimiter.WithMemoryStoreLogger(log.With(logger.Component("ratelimiter"))))
		limiter, err := ratelimiter.NewBucket(limitStore, cfg.LoginLimit)
		if err != nil {
			return err
		}
		deps.LoginLimiter = limiter
	}

	a, err := api.New(cfg.API, deps, api.WithLogger(log))
	if err != nil {
		return err
	}

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log.With(logger.Component("server"))))
	if err != nil {
		return err
	}

	scheduler := contentsync.NewScheduler(contentsync.WithSchedulerLogger(log.With(logger.Component("scheduler"))))
	if err := contentsync.Register(scheduler, cfg.Sync, coordinator, sessions, nil); err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(srv.Run(ctx, a.Handler()))
	eg.Go(func() error { return scheduler.Run(ctx) })
	if limitStore != nil {
		eg.Go(func() error { return limitStore.Run(ctx) })
	}
	if cfg.Sync.Watch {
		watcher := contentsync.NewWatcher(coordinator.Files().Dir(), coordinator,
			contentsync.WithDebounce(cfg.Sync.Debounce),
			contentsync.WithWatcherLogger(log.With(logger.Component("watcher"))))
		eg.Go(func() error { return watcher.Run(ctx) })
	}

	return eg.Wait()
}

// sessionStore picks the session backend named by SESSION_STORE. The
// returned client is nil for the in-memory store.
func sessionStore(ctx context.Context, cfg Config) (session.Store, goredis.UniversalClient, error) {
	switch strings.ToLower(cfg.Session.Store) {
	case "", "memory":
		return session.NewMemoryStore(), nil, nil
	case "redis":
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		store, err := session.NewRedisStore(client, session.WithKeyPrefix(cfg.Session.RedisKeyPrefix))
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return store, client, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", errUnknownSessionStore, cfg.Session.Store)
	}
}

var errUnknownSessionStore = errors.New("unknown SESSION_STORE")

func closeRedis(client goredis.UniversalClient, log *slog.Logger) {
	if err := client.Close(); err != nil {
		log.Warn("Failed to close redis client", logger.Component("redis"), logger.Error(err))
	}
}

func disconnectMongo(client *mongodriver.Client, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Warn("Failed to disconnect from mongo", logger.Component("mongo"), logger.Error(err))
	}
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
