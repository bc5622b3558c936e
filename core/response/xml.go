package response

import (
	"encoding/xml"
	"net/http"

	"github.com/dmitrymomot/folio/core/handler"
)

// XML writes v as an XML document with the standard header.
// The document is marshalled up front so encoding failures surface as
// errors before any bytes are written.
func XML(v any) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		body, err := xml.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return nil
		}
		if _, err := w.Write([]byte(xml.Header)); err != nil {
			return err
		}
		_, err = w.Write(body)
		return err
	}
}
