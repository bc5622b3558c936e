package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/folio/core/handler"
)

// CORSConfig defines the cross-origin policy.
type CORSConfig struct {
	// Skip allows bypassing CORS handling for specific requests
	Skip func(ctx handler.Context) bool
	// AllowOrigins lists allowed origins; "*" or an empty list allows any.
	AllowOrigins []string
	// AllowMethods defaults to GET, HEAD, PUT, PATCH, POST, DELETE.
	AllowMethods []string
	// AllowHeaders defaults to the common headers plus Authorization,
	// X-Request-ID and X-CSRF-Token.
	AllowHeaders []string
	// ExposeHeaders lists response headers readable by scripts.
	ExposeHeaders []string
	// AllowCredentials permits cookies. Never sent with a wildcard origin.
	AllowCredentials bool
	// MaxAge caches preflight results, in seconds.
	MaxAge int
}

// corsPolicy is the compiled form of CORSConfig shared by the typed
// middleware and the net/http wrapper.
type corsPolicy struct {
	origins       map[string]bool
	anyOrigin     bool
	methods       []string
	allowMethods  string
	allowHeaders  string
	exposeHeaders string
	credentials   bool
	maxAge        int
}

func newCORSPolicy(cfg CORSConfig) *corsPolicy {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		}
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{
			"Accept",
			"Accept-Language",
			"Content-Language",
			"Content-Type",
			"Origin",
			"Authorization",
			"X-Request-ID",
			"X-CSRF-Token",
		}
	}

	p := &corsPolicy{
		origins:       make(map[string]bool, len(cfg.AllowOrigins)),
		anyOrigin:     len(cfg.AllowOrigins) == 0,
		methods:       cfg.AllowMethods,
		allowMethods:  strings.Join(cfg.AllowMethods, ","),
		allowHeaders:  strings.Join(cfg.AllowHeaders, ","),
		exposeHeaders: strings.Join(cfg.ExposeHeaders, ","),
		credentials:   cfg.AllowCredentials,
		maxAge:        cfg.MaxAge,
	}
	for _, o := range cfg.AllowOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			p.anyOrigin = true
		}
		p.origins[o] = true
	}
	return p
}

func (p *corsPolicy) allowedOrigin(origin string) (string, bool) {
	switch {
	case origin == "":
		return "", false
	case p.origins[origin]:
		return origin, true
	case p.anyOrigin:
		return "*", true
	default:
		return "", false
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}

// preflight answers an OPTIONS preflight and returns the status written.
func (p *corsPolicy) preflight(w http.ResponseWriter, r *http.Request) int {
	origin, ok := p.allowedOrigin(r.Header.Get("Origin"))
	if !ok || !slices.Contains(p.methods, r.Header.Get("Access-Control-Request-Method")) {
		w.WriteHeader(http.StatusForbidden)
		return http.StatusForbidden
	}

	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Methods", p.allowMethods)
	if r.Header.Get("Access-Control-Request-Headers") != "" {
		h.Set("Access-Control-Allow-Headers", p.allowHeaders)
	}
	if p.credentials && origin != "*" {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
	if p.maxAge > 0 {
		h.Set("Access-Control-Max-Age", strconv.Itoa(p.maxAge))
	}
	h.Add("Vary", "Origin")
	h.Add("Vary", "Access-Control-Request-Method")
	h.Add("Vary", "Access-Control-Request-Headers")

	w.WriteHeader(http.StatusNoContent)
	return http.StatusNoContent
}

// decorate adds the simple-request headers.
func (p *corsPolicy) decorate(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Add("Vary", "Origin")

	origin, ok := p.allowedOrigin(r.Header.Get("Origin"))
	if !ok {
		return
	}
	h.Set("Access-Control-Allow-Origin", origin)
	if p.credentials && origin != "*" {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
	if p.exposeHeaders != "" {
		h.Set("Access-Control-Expose-Headers", p.exposeHeaders)
	}
}

// CORS allows any origin without credentials.
func CORS[C handler.Context]() handler.Middleware[C] {
	return CORSWithConfig[C](CORSConfig{})
}

// CORSWithConfig applies the policy inside the router. Preflights for
// paths without an OPTIONS route never reach router middleware, so mount
// CORSHandler around the router when those must be answered too.
func CORSWithConfig[C handler.Context](cfg CORSConfig) handler.Middleware[C] {
	p := newCORSPolicy(cfg)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}
			if isPreflight(ctx.Request()) {
				return func(w http.ResponseWriter, r *http.Request) error {
					p.preflight(w, r)
					return nil
				}
			}

			resp := next(ctx)
			return func(w http.ResponseWriter, r *http.Request) error {
				p.decorate(w, r)
				return resp(w, r)
			}
		}
	}
}

// CORSHandler applies the policy as a net/http wrapper around the whole
// router, answering preflights before routing.
func CORSHandler(cfg CORSConfig) func(http.Handler) http.Handler {
	p := newCORSPolicy(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPreflight(r) {
				p.preflight(w, r)
				return
			}
			p.decorate(w, r)
			next.ServeHTTP(w, r)
		})
	}
}
