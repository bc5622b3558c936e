package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/folio/core/handler"
)

var knownMethods = map[string]struct{}{
	http.MethodGet: {}, http.MethodHead: {}, http.MethodPost: {}, http.MethodPut: {},
	http.MethodPatch: {}, http.MethodDelete: {}, http.MethodOptions: {},
	http.MethodConnect: {}, http.MethodTrace: {},
}

type mux[C handler.Context] struct {
	chi          chi.Router
	middlewares  []handler.Middleware[C]
	parent       *mux[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger
	hasRoutes    bool
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		chi:          chi.NewRouter(),
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r, params)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	m.chi.NotFound(m.fail(ErrNotFound))
	m.chi.MethodNotAllowed(m.fail(ErrMethodNotAllowed))
	return m
}

func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.chi.ServeHTTP(w, r)
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C])     { m.handle(http.MethodGet, pattern, h) }
func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C])    { m.handle(http.MethodPost, pattern, h) }
func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C])     { m.handle(http.MethodPut, pattern, h) }
func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C])   { m.handle(http.MethodPatch, pattern, h) }
func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C])  { m.handle(http.MethodDelete, pattern, h) }
func (m *mux[C]) Head(pattern string, h handler.HandlerFunc[C])    { m.handle(http.MethodHead, pattern, h) }
func (m *mux[C]) Options(pattern string, h handler.HandlerFunc[C]) { m.handle(http.MethodOptions, pattern, h) }

func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle("", pattern, h)
}

func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}
	seen := make(map[string]bool, len(methods))
	for _, method := range methods {
		method = strings.ToUpper(method)
		if _, ok := knownMethods[method]; !ok {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if seen[method] {
			continue
		}
		seen[method] = true
		m.handle(method, pattern, h)
	}
}

func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.hasRoutes {
		panic(ErrLateMiddleware)
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return m.child(m.chi, middlewares)
}

func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.child(m.chi, nil)
	if fn != nil {
		fn(im)
	}
	return im
}

// Route mounts a sub-router under pattern. The sub-router inherits this
// router's middlewares.
func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(fmt.Errorf("%w on %q", ErrNilSubrouter, pattern))
	}
	sub := m.child(chi.NewRouter(), nil)
	sub.chi.NotFound(sub.fail(ErrNotFound))
	sub.chi.MethodNotAllowed(sub.fail(ErrMethodNotAllowed))
	fn(sub)
	m.hasRoutes = true
	m.chi.Mount(pattern, sub.chi)
	return sub
}

// Mount attaches an independently built router. The mounted router keeps
// its own middlewares and takes over this router's error handling.
func (m *mux[C]) Mount(pattern string, sub Router[C]) {
	if sub == nil {
		panic(fmt.Errorf("%w on %q", ErrNilRouter, pattern))
	}
	sm, ok := sub.(*mux[C])
	if !ok {
		m.hasRoutes = true
		m.chi.Mount(pattern, sub)
		return
	}
	sm.errorHandler = m.errorHandler
	sm.newContext = m.newContext
	sm.logger = m.logger
	m.hasRoutes = true
	m.chi.Mount(pattern, sm.chi)
}

func (m *mux[C]) Routes() []Route {
	var routes []Route
	_ = chi.Walk(m.chi, func(method, pattern string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, Route{Method: method, Pattern: pattern})
		return nil
	})
	return routes
}

func (m *mux[C]) child(r chi.Router, middlewares []handler.Middleware[C]) *mux[C] {
	return &mux[C]{
		chi:          r,
		middlewares:  middlewares,
		parent:       m,
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
	}
}

// chain collects middlewares from the root down to m.
func (m *mux[C]) chain() []handler.Middleware[C] {
	var all []handler.Middleware[C]
	for cur := m; cur != nil; cur = cur.parent {
		all = append(append([]handler.Middleware[C]{}, cur.middlewares...), all...)
	}
	return all
}

func (m *mux[C]) handle(method, pattern string, fn handler.HandlerFunc[C]) {
	if pattern == "" || pattern[0] != '/' {
		panic(fmt.Errorf("%w: %q", ErrInvalidPattern, pattern))
	}
	for cur := m; cur != nil; cur = cur.parent {
		cur.hasRoutes = true
	}

	h := m.adapt(handler.Chain(fn, m.chain()...))
	if method == "" {
		m.chi.Handle(pattern, h)
		return
	}
	m.chi.Method(method, pattern, h)
}

// adapt turns a typed handler into an http.Handler: it builds the context,
// recovers panics and routes every error through the error handler.
func (m *mux[C]) adapt(fn handler.HandlerFunc[C]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := newResponseWriter(w)
		ctx := m.newContext(ww, r, urlParams(r))

		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}
			perr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				m.logger.ErrorContext(r.Context(), "panic after response written",
					slog.Any("value", perr.value),
					slog.String("stack", string(perr.stack)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status_code", ww.Status()),
				)
				return
			}
			m.errorHandler(ctx, perr)
		}()

		resp := fn(ctx)
		if resp == nil {
			m.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp(ww, ctx.Request()); err != nil {
			m.errorHandler(ctx, err)
		}
	})
}

func (m *mux[C]) fail(err error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.errorHandler(m.newContext(newResponseWriter(w), r, nil), err)
	}
}

func urlParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}
