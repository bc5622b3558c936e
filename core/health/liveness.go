package health

import (
	"github.com/dmitrymomot/folio/core/handler"
	"github.com/dmitrymomot/folio/core/response"
)

// Liveness answers "ALIVE" while the process is serving. No dependency
// checks.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}
