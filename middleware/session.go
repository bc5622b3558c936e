package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/folio/core/handler"
	"github.com/dmitrymomot/folio/core/logger"
	"github.com/dmitrymomot/folio/core/response"
	"github.com/dmitrymomot/folio/core/session"
	"github.com/dmitrymomot/folio/core/sessiontransport"
)

type sessionKey struct{}

// SessionValidator checks a session id against the store and the CSRF
// rule. *session.Manager implements it.
type SessionValidator interface {
	Validate(ctx context.Context, id, method, csrfHeader string) (session.Session, error)
}

// SessionExtractor reads the session id and echoed CSRF token from a
// request. *sessiontransport.Cookie implements it.
type SessionExtractor interface {
	Extract(r *http.Request) (id, csrf string, err error)
}

// SessionConfig configures the admin session guard.
type SessionConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Manager validates sessions
	Manager SessionValidator
	// Transport extracts the session id and CSRF header
	Transport SessionExtractor
	// ErrorHandler builds the failure response (default: response.Error(err))
	ErrorHandler func(ctx handler.Context, err error) handler.Response
	// Logger for rejected requests (default: discard)
	Logger *slog.Logger
}

// Session requires a live session, and a matching CSRF header on
// mutating methods.
func Session[C handler.Context](manager SessionValidator, transport SessionExtractor) handler.Middleware[C] {
	return SessionWithConfig[C](SessionConfig{Manager: manager, Transport: transport})
}

// SessionWithConfig stores the validated session in the context. A
// missing or tampered cookie is reported as session.ErrNotAuthenticated.
// Panics if Manager or Transport is nil.
func SessionWithConfig[C handler.Context](cfg SessionConfig) handler.Middleware[C] {
	if cfg.Manager == nil || cfg.Transport == nil {
		panic("session middleware: manager and transport are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(_ handler.Context, err error) handler.Response {
			return response.Error(err)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			id, csrf, err := cfg.Transport.Extract(req)
			if err != nil {
				if errors.Is(err, sessiontransport.ErrInvalidToken) {
					cfg.Logger.WarnContext(ctx, "tampered session cookie",
						logger.Component("session"), logger.Path(req.URL.Path))
				}
				return cfg.ErrorHandler(ctx, session.ErrNotAuthenticated)
			}

			sess, err := cfg.Manager.Validate(ctx, id, req.Method, csrf)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return response.Error(ctxErr)
				}
				cfg.Logger.DebugContext(ctx, "session rejected",
					logger.Component("session"), logger.Method(req.Method), logger.Path(req.URL.Path), logger.Error(err))
				return cfg.ErrorHandler(ctx, err)
			}

			ctx.SetValue(sessionKey{}, sess)
			return next(ctx)
		}
	}
}

// GetSession returns the session stored by the guard.
func GetSession(ctx context.Context) (session.Session, bool) {
	if ctx == nil {
		return session.Session{}, false
	}
	sess, ok := ctx.Value(sessionKey{}).(session.Session)
	return sess, ok
}
