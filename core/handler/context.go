package handler

import (
	"context"
	"net/http"
)

// Context is what handlers and middleware receive for each request.
// core/router.Context is the stock implementation.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// Param returns a path parameter, or "" when the route has none by that name.
	Param(key string) string
	// SetValue stores a request-scoped value visible through Value and
	// through Request().Context().
	SetValue(key, val any)
}
