package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/folio/core/handler"
)

var (
	ErrNoContextFactory = errors.New("router: no context factory provided")
	ErrMethodNotAllowed = errors.New("router: method not allowed")
	ErrNotFound         = errors.New("router: not found")
	ErrNilResponse      = errors.New("router: handler returned nil response")
	ErrInvalidMethod    = errors.New("router: invalid http method")
	ErrNilRouter        = errors.New("router: nil router")
	ErrNilSubrouter     = errors.New("router: nil subrouter")
	ErrInvalidPattern   = errors.New("router: invalid route pattern")
	ErrLateMiddleware   = errors.New("router: middlewares must be defined before routes")
)

type statusCoder interface {
	StatusCode() int
}

func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrMethodNotAllowed):
		status = http.StatusMethodNotAllowed
	default:
		var sc statusCoder
		if errors.As(err, &sc) {
			status = sc.StatusCode()
		}
	}
	http.Error(w, http.StatusText(status), status)
}

// PanicError is passed to the error handler when a handler panics.
type PanicError interface {
	error
	Value() any
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.value) }
func (e *panicError) Value() any    { return e.value }
func (e *panicError) Stack() []byte { return e.stack }

func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
