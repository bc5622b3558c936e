// Package router is a typed router on top of go-chi/chi.
//
// Handlers receive a context type C (by default *Context) and return a
// handler.Response. Errors returned by responses, 404 and 405 misses, nil
// responses and recovered panics all go through a single ErrorHandler:
//
//	r := router.New(
//		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
//		router.WithMiddleware(middleware.RequestID[*router.Context]()),
//	)
//	r.Get("/projects/{slug}", api.GetProject)
//	r.Route("/admin", func(admin router.Router[*router.Context]) {
//		admin.Use(guard)
//		admin.Patch("/{collection}/{itemId}", api.PatchItem)
//	})
//
// Middlewares are chained when a route is registered, so Use must come
// before the routes it should cover.
package router
