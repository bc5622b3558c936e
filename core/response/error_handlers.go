package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/folio/core/handler"
)

type statusCoder interface {
	StatusCode() int
}

// AsHTTPError converts err into an HTTPError. HTTPErrors pass through;
// errors exposing StatusCode() get the canonical error for that status;
// everything else is a 500. The original message is not leaked for
// converted errors.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCoder
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}
	if base, ok := httpErrorsByStatus[status]; ok {
		return base
	}
	return newHTTPError(status, "error")
}

// ErrorHandler renders errors as plain text.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := AsHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Detail+"\n", httpErr.Status))
}

// JSONErrorHandler renders errors as {"detail": "..."}.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := AsHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}
