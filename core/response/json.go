package response

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/folio/core/handler"
)

const contentTypeJSON = "application/json; charset=utf-8"

// JSON encodes v with 200 OK.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// Created encodes v with 201 Created.
func Created(v any) handler.Response {
	return JSONWithStatus(v, http.StatusCreated)
}

// JSONWithStatus encodes v straight into the writer. A zero status means
// 200, or 204 when v is nil. 204 and 304 never carry a body.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if status == 0 {
			status = http.StatusOK
			if v == nil {
				status = http.StatusNoContent
			}
		}
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(status)
		if status == http.StatusNoContent || status == http.StatusNotModified {
			return nil
		}
		return json.NewEncoder(w).Encode(v)
	}
}
