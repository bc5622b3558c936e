// Package middleware provides the typed HTTP middleware used by the API:
// request IDs, access logging, CORS, security headers, body limits, per
// client rate limiting, the bearer token guard and the admin session guard.
//
// Most middleware follow the same shape: a zero-config constructor, a
// WithConfig constructor taking a Config struct with a Skip hook, and
// context helpers for anything it stores. RateLimit has no zero-config
// form because it needs a Limiter.
//
//	r := router.New[*router.Context]()
//	r.Use(
//		middleware.RequestID[*router.Context](),
//		middleware.Logging[*router.Context](log),
//		middleware.SecurityHeaders[*router.Context](),
//	)
//
// Preflight requests for paths without an OPTIONS route are rejected by
// the router before middleware runs, so CORS is normally applied with
// CORSHandler around the router instead of CORSWithConfig inside it.
//
// Failures are returned as response.Error values carrying domain errors
// (session.ErrNotAuthenticated, jwt.ErrInvalidToken, ...). The router's
// error handler decides the status code.
package middleware
