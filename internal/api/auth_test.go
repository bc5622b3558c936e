package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal/api"
	"github.com/dmitrymomot/folio/pkg/ratelimiter"
)

func TestLogin(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	w := f.do(t, call{method: http.MethodPost, path: "/auth/login", body: map[string]string{
		"username":      adminUser,
		"password_hash": passwordHash(),
	}})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "bearer", body["token_type"])
	assert.EqualValues(t, 1800, body["expires_in"])
	assert.NotEmpty(t, body["access_token"])

	cookies := w.Result().Cookies()
	sid := findCookie(t, cookies, "session_id")
	xsrf := findCookie(t, cookies, "XSRF-TOKEN")
	assert.True(t, sid.HttpOnly)
	assert.False(t, xsrf.HttpOnly)
	assert.Equal(t, "/", sid.Path)
	assert.Equal(t, http.SameSiteLaxMode, sid.SameSite)
	assert.InDelta(t, 60, sid.MaxAge, 1)
	assert.Equal(t, sid.MaxAge, xsrf.MaxAge)
	assert.False(t, sid.Secure)
}

func TestLogin_SecureBehindProxy(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	w := f.do(t, call{
		method:  http.MethodPost,
		path:    "/auth/login",
		body:    map[string]string{"username": adminUser, "password_hash": passwordHash()},
		headers: map[string]string{"X-Forwarded-Proto": "https"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, findCookie(t, w.Result().Cookies(), "session_id").Secure)
}

func TestLogin_Failures(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantDetail string
	}{
		{"wrong password", map[string]string{"username": adminUser, "password_hash": "00ff"}, http.StatusUnauthorized, "Invalid credentials"},
		{"wrong username", map[string]string{"username": "root", "password_hash": passwordHash()}, http.StatusUnauthorized, "Invalid credentials"},
		{"both wrong", map[string]string{"username": "root", "password_hash": "00ff"}, http.StatusUnauthorized, "Invalid credentials"},
		{"missing secret", map[string]string{"username": adminUser}, http.StatusBadRequest, "password_hash (or password) required"},
		{"malformed body", `{"username":`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := f.do(t, call{method: http.MethodPost, path: "/auth/login", body: tt.body})
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Empty(t, w.Result().Cookies())
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decode(t, w)["detail"])
			}
		})
	}
}

func TestToken_BearerOnly(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	w := f.do(t, call{method: http.MethodPost, path: "/auth/token", body: map[string]string{
		"username":      adminUser,
		"password_hash": passwordHash(),
	}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies())

	body := decode(t, w)
	assert.NotContains(t, body, "ok")
	assert.Equal(t, "bearer", body["token_type"])
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	cookies, token := f.login(t)

	w := f.do(t, call{method: http.MethodGet, path: "/auth/session", cookies: cookies})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["expires_at"])

	// refresh needs the CSRF header like any other mutation
	w = f.do(t, call{method: http.MethodPost, path: "/auth/refresh", cookies: cookies})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, call{method: http.MethodPost, path: "/auth/refresh", cookies: cookies, headers: csrf(token)})
	require.Equal(t, http.StatusOK, w.Code)
	rotated := w.Result().Cookies()
	assert.NotEqual(t, cookieValue(cookies, "session_id"), cookieValue(rotated, "session_id"))

	w = f.do(t, call{method: http.MethodGet, path: "/auth/session", cookies: cookies})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authenticated", decode(t, w)["detail"])

	w = f.do(t, call{method: http.MethodPost, path: "/auth/logout", cookies: rotated, headers: csrf(cookieValue(rotated, "XSRF-TOKEN"))})
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		assert.Negative(t, c.MaxAge, c.Name)
	}

	w = f.do(t, call{method: http.MethodGet, path: "/auth/session", cookies: rotated})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession_WithoutCookie(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	w := f.do(t, call{method: http.MethodGet, path: "/auth/session"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
		Capacity: 2, RefillRate: 1, RefillInterval: time.Minute,
	})
	require.NoError(t, err)
	f := newFixture(t, func(_ *api.Config, d *api.Deps) { d.LoginLimiter = limiter })

	bad := map[string]string{"username": adminUser, "password_hash": "00ff"}
	for range 2 {
		w := f.do(t, call{method: http.MethodPost, path: "/auth/login", body: bad})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := f.do(t, call{method: http.MethodPost, path: "/auth/token", body: map[string]string{
		"username":      adminUser,
		"password_hash": passwordHash(),
	}})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Only the credential endpoints are throttled.
	w = f.do(t, call{method: http.MethodGet, path: "/projects"})
	assert.Equal(t, http.StatusOK, w.Code)
}
