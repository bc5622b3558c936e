package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/folio/core/binder"
	"github.com/dmitrymomot/folio/core/handler"
	"github.com/dmitrymomot/folio/core/logger"
	"github.com/dmitrymomot/folio/core/response"
	"github.com/dmitrymomot/folio/core/session"
	"github.com/dmitrymomot/folio/internal/auth"
	"github.com/dmitrymomot/folio/internal/content"
	"github.com/dmitrymomot/folio/middleware"
	"github.com/dmitrymomot/folio/pkg/jwt"
)

var (
	errInvalidCredentials = response.ErrUnauthorized.WithDetail("Invalid credentials")
	errNotAuthenticated   = response.ErrUnauthorized.WithDetail("Not authenticated")
	errSessionExpired     = response.ErrUnauthorized.WithDetail("Session expired")
	errInvalidToken       = response.ErrUnauthorized.WithDetail("Invalid token")
	errCSRFMismatch       = response.ErrForbidden.WithDetail("CSRF token mismatch")
	errMissingSecret      = response.ErrBadRequest.WithDetail("password_hash (or password) required")
	errResumeItem         = response.ErrBadRequest.WithDetail("Use PATCH /admin/resume for resume updates")
	errStorage            = response.ErrInternalServerError.WithDetail("Storage failure")
	errBodyTooLarge       = response.ErrRequestEntityTooLarge.WithDetail("Request body too large")
)

// mapError translates domain errors into HTTP errors. Client errors keep
// the domain message; server errors never leak it.
func mapError(err error) response.HTTPError {
	var httpErr response.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, auth.ErrInvalidCredentials):
		return errInvalidCredentials
	case errors.Is(err, session.ErrCSRFMismatch):
		return errCSRFMismatch
	case errors.Is(err, session.ErrExpired):
		return errSessionExpired
	case errors.Is(err, session.ErrNotAuthenticated):
		return errNotAuthenticated
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, jwt.ErrInvalidToken),
		errors.Is(err, jwt.ErrExpiredToken),
		errors.Is(err, jwt.ErrInvalidSignature),
		errors.Is(err, jwt.ErrInvalidAudience),
		errors.Is(err, jwt.ErrInvalidIssuer),
		errors.Is(err, jwt.ErrInvalidClaims):
		return errInvalidToken
	case middleware.IsBodyTooLarge(err):
		return errBodyTooLarge
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return response.ErrUnsupportedMediaType.WithDetail(err.Error())
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrEmptyBody):
		return response.ErrBadRequest.WithDetail(err.Error())
	case errors.Is(err, content.ErrInvalidPayload):
		return response.ErrBadRequest.WithDetail(err.Error())
	case errors.Is(err, content.ErrNotFound):
		return response.ErrNotFound.WithDetail(err.Error())
	case errors.Is(err, content.ErrStorage), errors.Is(err, content.ErrMirrorWrite):
		return errStorage
	default:
		return response.AsHTTPError(err)
	}
}

// errorHandler renders mapped errors as {"detail": "..."} and logs
// server-side failures.
func errorHandler[C handler.Context](log *slog.Logger) handler.ErrorHandler[C] {
	return func(ctx C, err error) {
		httpErr := mapError(err)
		if httpErr.Status >= http.StatusInternalServerError && !errors.Is(err, context.Canceled) {
			req := ctx.Request()
			log.ErrorContext(ctx, "request failed",
				logger.Component("api"), logger.Method(req.Method), logger.Path(req.URL.Path), logger.Error(err))
		}
		response.JSONErrorHandler(ctx, httpErr)
	}
}
