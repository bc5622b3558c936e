package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/folio/core/handler"
	"github.com/dmitrymomot/folio/core/health"
	"github.com/dmitrymomot/folio/core/response"
	"github.com/dmitrymomot/folio/core/router"
)

func serve(h handler.HandlerFunc[*router.Context]) *httptest.ResponseRecorder {
	r := router.New[*router.Context](router.WithErrorHandler[*router.Context](response.ErrorHandler[*router.Context]))
	r.Get("/", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/health/live", health.Liveness[*router.Context])

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ALIVE", w.Body.String())
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }
	slow := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}

	tests := []struct {
		name       string
		timeout    time.Duration
		checks     []health.Check
		wantStatus int
		wantBody   string
	}{
		{"no checks", 0, nil, http.StatusOK, "READY"},
		{"all up", 0, []health.Check{{Name: "mongo", Probe: up}, {Name: "redis", Probe: up}}, http.StatusOK, "READY"},
		{"one down", 0, []health.Check{{Name: "mongo", Probe: up}, {Name: "redis", Probe: down}}, http.StatusServiceUnavailable, ""},
		{"timeout", 20 * time.Millisecond, []health.Check{{Name: "mongo", Probe: slow}}, http.StatusServiceUnavailable, ""},
		{"nil probe ignored", 0, []health.Check{{Name: "mongo", Probe: nil}}, http.StatusOK, "READY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(health.ReadinessWithTimeout[*router.Context](nil, tt.timeout, tt.checks...))
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}
