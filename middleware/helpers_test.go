package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/folio/core/handler"
	"github.com/dmitrymomot/folio/core/response"
	"github.com/dmitrymomot/folio/core/router"
	"github.com/dmitrymomot/folio/core/session"
	"github.com/dmitrymomot/folio/pkg/jwt"
)

type ctxT = *router.Context

// errorHandler maps the domain errors middleware emits to statuses.
func errorHandler(ctx ctxT, err error) {
	switch {
	case errors.Is(err, session.ErrCSRFMismatch):
		err = response.ErrForbidden.WithDetail("csrf")
	case errors.Is(err, session.ErrNotAuthenticated),
		errors.Is(err, session.ErrExpired),
		errors.Is(err, jwt.ErrInvalidToken),
		errors.Is(err, jwt.ErrExpiredToken),
		errors.Is(err, jwt.ErrInvalidSignature),
		errors.Is(err, jwt.ErrInvalidAudience):
		err = response.ErrUnauthorized.WithDetail(err.Error())
	}
	response.JSONErrorHandler(ctx, err)
}

func newRouter(mws ...handler.Middleware[ctxT]) router.Router[ctxT] {
	return router.New[ctxT](
		router.WithErrorHandler[ctxT](errorHandler),
		router.WithMiddleware[ctxT](mws...),
	)
}

func ok(ctxT) handler.Response {
	return response.String("ok")
}

func do(t *testing.T, h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}
