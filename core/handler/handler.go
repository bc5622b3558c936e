package handler

import "net/http"

// Response renders a reply onto w. Returned errors are routed to the
// router's ErrorHandler instead of being written by the response itself.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc handles a request carried by a typed context.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler turns an error raised while serving a request into a reply.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware decorates a HandlerFunc.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// Chain wraps endpoint in middlewares so that middlewares[0] runs first.
func Chain[C Context](endpoint HandlerFunc[C], middlewares ...Middleware[C]) HandlerFunc[C] {
	h := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
