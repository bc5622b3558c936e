package middleware

import (
	"strings"

	"github.com/dmitrymomot/folio/core/handler"
	"github.com/dmitrymomot/folio/core/response"
	"github.com/dmitrymomot/folio/pkg/jwt"
)

type jwtClaimsContextKey struct{}

// TokenParser verifies a token and decodes it into claims. *jwt.Service
// implements it.
type TokenParser interface {
	Parse(token string, claims jwt.Claims) error
}

// JWTConfig configures the bearer token middleware.
type JWTConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Service parses and validates tokens
	Service TokenParser
	// TokenExtractor finds the token (default: Authorization: Bearer)
	TokenExtractor func(ctx handler.Context) string
	// ErrorHandler builds the failure response (default: the error itself,
	// wrapped as a 401)
	ErrorHandler func(ctx handler.Context, err error) handler.Response
	// ClaimsFactory creates the claims value to decode into (default: StandardClaims)
	ClaimsFactory func() jwt.Claims
}

// JWT authenticates every request with a bearer token parsed by service.
func JWT[C handler.Context](service TokenParser) handler.Middleware[C] {
	return JWTWithConfig[C](JWTConfig{Service: service})
}

// JWTWithConfig stores the parsed claims in the context on success.
// Panics if cfg.Service is nil.
//
// Pair it with SkipWithoutBearer to let cookie-authenticated requests
// fall through to the session guard:
//
//	admin.Use(
//		middleware.JWTWithConfig[*router.Context](middleware.JWTConfig{
//			Service: tokens,
//			Skip:    middleware.SkipWithoutBearer,
//		}),
//		middleware.SessionWithConfig[*router.Context](middleware.SessionConfig{
//			Manager:   sessions,
//			Transport: transport,
//			Skip:      middleware.HasJWTClaims,
//		}),
//	)
func JWTWithConfig[C handler.Context](cfg JWTConfig) handler.Middleware[C] {
	if cfg.Service == nil {
		panic("jwt middleware: service is required")
	}
	if cfg.TokenExtractor == nil {
		cfg.TokenExtractor = JWTFromAuthHeader()
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(_ handler.Context, err error) handler.Response {
			return response.Error(err)
		}
	}
	if cfg.ClaimsFactory == nil {
		cfg.ClaimsFactory = func() jwt.Claims { return &jwt.StandardClaims{} }
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			token := cfg.TokenExtractor(ctx)
			if token == "" {
				return cfg.ErrorHandler(ctx, jwt.ErrInvalidToken)
			}

			claims := cfg.ClaimsFactory()
			if err := cfg.Service.Parse(token, claims); err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			ctx.SetValue(jwtClaimsContextKey{}, claims)
			return next(ctx)
		}
	}
}

// GetJWTClaims retrieves claims of type T stored by the JWT middleware.
func GetJWTClaims[T any](ctx handler.Context) (T, bool) {
	claims, ok := ctx.Value(jwtClaimsContextKey{}).(T)
	return claims, ok
}

// GetStandardClaims retrieves claims stored with the default factory.
func GetStandardClaims(ctx handler.Context) (*jwt.StandardClaims, bool) {
	return GetJWTClaims[*jwt.StandardClaims](ctx)
}

// HasJWTClaims reports whether the JWT middleware authenticated the request.
func HasJWTClaims(ctx handler.Context) bool {
	return ctx.Value(jwtClaimsContextKey{}) != nil
}

// SkipWithoutBearer skips requests that carry no Authorization header.
func SkipWithoutBearer(ctx handler.Context) bool {
	return ctx.Request().Header.Get("Authorization") == ""
}

// JWTFromAuthHeader extracts a token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func JWTFromAuthHeader() func(handler.Context) string {
	return func(ctx handler.Context) string {
		scheme, token, ok := strings.Cut(ctx.Request().Header.Get("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
}

// JWTFromCookie extracts a token from a cookie.
func JWTFromCookie(cookieName string) func(handler.Context) string {
	return func(ctx handler.Context) string {
		c, err := ctx.Request().Cookie(cookieName)
		if err != nil {
			return ""
		}
		return c.Value
	}
}

// JWTFromMultiple tries extractors in order and returns the first token.
func JWTFromMultiple(extractors ...func(handler.Context) string) func(handler.Context) string {
	return func(ctx handler.Context) string {
		for _, extract := range extractors {
			if token := extract(ctx); token != "" {
				return token
			}
		}
		return ""
	}
}
