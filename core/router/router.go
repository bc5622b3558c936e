package router

import (
	"net/http"

	"github.com/dmitrymomot/folio/core/handler"
)

// Router registers typed handlers. Route matching is delegated to chi;
// the router adds typed contexts, middleware chaining and centralised
// error handling on top.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Patch(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])
	Head(pattern string, h handler.HandlerFunc[C])
	Options(pattern string, h handler.HandlerFunc[C])

	// Handle registers h for every method.
	Handle(pattern string, h handler.HandlerFunc[C])
	// Method registers h for the listed methods.
	Method(pattern string, h handler.HandlerFunc[C], methods ...string)

	// Use appends middleware. It must be called before any route is added.
	Use(middlewares ...handler.Middleware[C])
	// With returns an inline router that adds middlewares to the routes
	// registered through it.
	With(middlewares ...handler.Middleware[C]) Router[C]

	Group(fn func(r Router[C])) Router[C]
	Route(pattern string, fn func(r Router[C])) Router[C]
	Mount(pattern string, sub Router[C])
}

// Routes lists registered routes.
type Routes interface {
	Routes() []Route
}

// Route is one registered method and pattern.
type Route struct {
	Method  string
	Pattern string
}

// New creates a router. Without WithContextFactory, C must be *Context.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}
