package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/folio/core/handler"
	"github.com/dmitrymomot/folio/core/health"
	"github.com/dmitrymomot/folio/core/logger"
	"github.com/dmitrymomot/folio/core/router"
	"github.com/dmitrymomot/folio/core/session"
	"github.com/dmitrymomot/folio/core/sessiontransport"
	"github.com/dmitrymomot/folio/internal/auth"
	"github.com/dmitrymomot/folio/internal/content"
	"github.com/dmitrymomot/folio/middleware"
)

// Context is the request context used by every handler.
type Context = *router.Context

var (
	ErrNilVerifier    = errors.New("api: verifier is required")
	ErrNilSessions    = errors.New("api: session manager is required")
	ErrNilTransport   = errors.New("api: session transport is required")
	ErrNilCoordinator = errors.New("api: content coordinator is required")
)

// Deps are the collaborators the HTTP surface drives.
type Deps struct {
	Verifier  *auth.Verifier
	Sessions  *session.Manager
	Transport *sessiontransport.Cookie
	Content   *content.Coordinator
	// Checks back the readiness probe.
	Checks []health.Check
	// LoginLimiter throttles credential endpoints per client. Optional.
	LoginLimiter middleware.Limiter
}

// API wires the HTTP routes to the auth, session and content layers.
type API struct {
	cfg       Config
	verifier  *auth.Verifier
	sessions  *session.Manager
	transport *sessiontransport.Cookie
	content   *content.Coordinator
	checks    []health.Check
	limiter   middleware.Limiter
	logger    *slog.Logger
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the handler logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.logger = l
		}
	}
}

// New validates deps and returns the HTTP layer. Checks and LoginLimiter
// are optional; every other field of deps is required.
func New(cfg Config, deps Deps, opts ...Option) (*API, error) {
	switch {
	case deps.Verifier == nil:
		return nil, ErrNilVerifier
	case deps.Sessions == nil:
		return nil, ErrNilSessions
	case deps.Transport == nil:
		return nil, ErrNilTransport
	case deps.Content == nil:
		return nil, ErrNilCoordinator
	}

	a := &API{
		cfg:       cfg,
		verifier:  deps.Verifier,
		sessions:  deps.Sessions,
		transport: deps.Transport,
		content:   deps.Content,
		checks:    deps.Checks,
		limiter:   deps.LoginLimiter,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Handler returns the full HTTP handler: CORS around the router, which
// carries request ids, access logs, security headers and the body limit.
func (a *API) Handler() http.Handler {
	security := middleware.APISecurity
	if a.cfg.Development {
		security = middleware.DevelopmentSecurity
	}

	r := router.New[Context](
		router.WithErrorHandler(errorHandler[Context](a.logger)),
		router.WithLogger[Context](a.logger),
		router.WithMiddleware(
			middleware.RequestID[Context](),
			middleware.LoggingWithConfig[Context](middleware.LoggingConfig{
				Logger: a.logger,
				Skip:   isProbe,
			}),
			middleware.SecurityHeadersWithConfig[Context](security),
			middleware.BodyLimitWithSize[Context](a.cfg.BodyLimit),
		),
	)
	a.Routes(r)

	return middleware.CORSHandler(a.cfg.cors())(r)
}

// Routes registers every endpoint on r.
func (a *API) Routes(r router.Router[Context]) {
	r.Get("/health/live", health.Liveness[Context])
	r.Get("/health/ready", health.Readiness[Context](a.logger, a.checks...))

	r.Route("/auth", func(r router.Router[Context]) {
		r.Group(func(r router.Router[Context]) {
			if a.limiter != nil {
				r.Use(middleware.RateLimit[Context](middleware.RateLimitConfig{Limiter: a.limiter}))
			}
			r.Post("/login", a.login)
			r.Post("/token", a.token)
		})
		r.Group(func(r router.Router[Context]) {
			r.Use(a.requireSession())
			r.Post("/refresh", a.refresh)
			r.Post("/logout", a.logout)
			r.Get("/session", a.currentSession)
		})
	})

	r.Route("/admin", func(r router.Router[Context]) {
		r.Use(a.requireAdmin()...)
		r.Get("/collections", a.listCollections)
		r.Get("/data/{collection}", a.readCollection)
		r.Put("/data/{collection}", a.replaceCollection)
		r.Post("/resync", a.resync)
		r.Patch("/resume", a.patchResume)
		r.Post("/{collection}", a.createItem)
		r.Patch("/{collection}/{itemId}", a.patchItem)
		r.Delete("/{collection}/{itemId}", a.deleteItem)
	})

	for _, name := range []string{"projects", "articles", "experiences", "studies"} {
		r.Get("/"+name, a.listPublic(name))
	}
	r.Get("/projects/{slug}", a.showPublic("projects", "project"))
	r.Get("/articles/{slug}", a.showPublic("articles", "article"))
	r.Get("/resume", a.resume)
	r.Get("/sitemap.xml", a.sitemap)
}

func isProbe(ctx handler.Context) bool {
	switch ctx.Request().URL.Path {
	case "/health/live", "/health/ready":
		return true
	}
	return false
}
