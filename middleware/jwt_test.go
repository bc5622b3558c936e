package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/core/handler"
	"github.com/dmitrymomot/folio/core/response"
	"github.com/dmitrymomot/folio/middleware"
	"github.com/dmitrymomot/folio/pkg/jwt"
)

const signingKey = "0123456789abcdef0123456789abcdef"

func newTokens(t *testing.T) *jwt.Service {
	t.Helper()
	svc, err := jwt.NewFromString(signingKey, jwt.WithAudience("https://mathislambert.fr"))
	require.NoError(t, err)
	return svc
}

func signed(t *testing.T, svc *jwt.Service, subject string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.NewStandardClaims(subject, "https://mathislambert.fr", "", time.Now(), ttl)
	token, err := svc.Generate(&claims)
	require.NoError(t, err)
	return token
}

func whoami(ctx ctxT) handler.Response {
	claims, found := middleware.GetStandardClaims(ctx)
	if !found {
		return response.String("anonymous")
	}
	return response.String(claims.Subject)
}

func TestJWT(t *testing.T) {
	t.Parallel()

	svc := newTokens(t)
	r := newRouter(middleware.JWT[ctxT](svc))
	r.Get("/me", whoami)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer " + signed(t, svc, "admin", time.Minute), http.StatusOK, "admin"},
		{"lowercase scheme", "bearer " + signed(t, svc, "admin", time.Minute), http.StatusOK, "admin"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic YWRtaW46cGFzcw==", http.StatusUnauthorized, ""},
		{"expired token", "Bearer " + signed(t, svc, "admin", -time.Minute), http.StatusUnauthorized, ""},
		{"garbage", "Bearer not.a.token", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := do(t, r, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestJWT_WrongKey(t *testing.T) {
	t.Parallel()

	other, err := jwt.NewFromString("ffffffffffffffffffffffffffffffff", jwt.WithAudience("https://mathislambert.fr"))
	require.NoError(t, err)

	r := newRouter(middleware.JWT[ctxT](newTokens(t)))
	r.Get("/me", whoami)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, other, "admin", time.Minute))
	assert.Equal(t, http.StatusUnauthorized, do(t, r, req).Code)
}

func TestJWT_SkipWithoutBearer(t *testing.T) {
	t.Parallel()

	svc := newTokens(t)
	r := newRouter(middleware.JWTWithConfig[ctxT](middleware.JWTConfig{
		Service: svc,
		Skip:    middleware.SkipWithoutBearer,
	}))
	r.Get("/me", func(ctx ctxT) handler.Response {
		if middleware.HasJWTClaims(ctx) {
			return whoami(ctx)
		}
		return response.String("no bearer")
	})

	w := do(t, r, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no bearer", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, svc, "admin", time.Minute))
	w = do(t, r, req)
	assert.Equal(t, "admin", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer broken")
	assert.Equal(t, http.StatusUnauthorized, do(t, r, req).Code)
}

func TestJWTFromMultiple(t *testing.T) {
	t.Parallel()

	svc := newTokens(t)
	r := newRouter(middleware.JWTWithConfig[ctxT](middleware.JWTConfig{
		Service:        svc,
		TokenExtractor: middleware.JWTFromMultiple(middleware.JWTFromAuthHeader(), middleware.JWTFromCookie("access_token")),
	}))
	r.Get("/me", whoami)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signed(t, svc, "cookie-user", time.Minute)})
	w := do(t, r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cookie-user", w.Body.String())
}

func TestJWTWithConfig_PanicsWithoutService(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		middleware.JWTWithConfig[ctxT](middleware.JWTConfig{})
	})
}
