// Package handler defines the handler, middleware and error handler types
// shared by the router, middleware and API packages.
//
// A handler returns a Response instead of writing to the ResponseWriter
// directly:
//
//	func health(ctx *router.Context) handler.Response {
//		return response.JSON(map[string]string{"status": "ok"})
//	}
//
// An error returned from a Response is passed to the router's ErrorHandler,
// which keeps error-to-status mapping in one place.
package handler
