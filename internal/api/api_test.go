package api_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/core/cookie"
	"github.com/dmitrymomot/folio/core/health"
	"github.com/dmitrymomot/folio/core/session"
	"github.com/dmitrymomot/folio/core/sessiontransport"
	"github.com/dmitrymomot/folio/internal/api"
	"github.com/dmitrymomot/folio/internal/auth"
	"github.com/dmitrymomot/folio/internal/content"
)

const (
	adminUser     = "admin"
	adminPassword = "correct horse battery staple"
)

func passwordHash() string {
	sum := sha256.Sum256([]byte(adminPassword))
	return hex.EncodeToString(sum[:])
}

type fixture struct {
	handler  http.Handler
	content  *content.Coordinator
	sessions *session.Manager
}

func newFixture(t *testing.T, mutate func(*api.Config, *api.Deps)) fixture {
	t.Helper()

	coord, err := content.NewFromConfig(content.Config{DataDir: t.TempDir()}, nil)
	require.NoError(t, err)

	authCfg := auth.DefaultConfig()
	authCfg.Username = adminUser
	authCfg.Password = adminPassword
	authCfg.SigningKey = "test-signing-key-that-is-long-enough"
	verifier, err := auth.NewFromConfig(authCfg)
	require.NoError(t, err)

	sessions, err := session.NewManager(session.NewMemoryStore(), session.WithMaxLifetime(15*time.Minute))
	require.NoError(t, err)
	cookies, err := cookie.New([]string{"test-cookie-secret-with-at-least-32-chars"})
	require.NoError(t, err)

	cfg := api.DefaultConfig()
	cfg.PublicBaseURL = "https://example.com/"
	deps := api.Deps{
		Verifier:  verifier,
		Sessions:  sessions,
		Transport: sessiontransport.NewCookie(cookies),
		Content:   coord,
	}
	if mutate != nil {
		mutate(&cfg, &deps)
	}

	a, err := api.New(cfg, deps)
	require.NoError(t, err)
	return fixture{handler: a.Handler(), content: coord, sessions: sessions}
}

type call struct {
	method  string
	path    string
	body    any
	cookies []*http.Cookie
	headers map[string]string
}

func (f fixture) do(t *testing.T, c call) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	switch b := c.body.(type) {
	case nil:
	case string:
		body = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(c.method, c.path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

// login returns the session cookies and the CSRF token to echo.
func (f fixture) login(t *testing.T) ([]*http.Cookie, string) {
	t.Helper()

	w := f.do(t, call{method: http.MethodPost, path: "/auth/login", body: map[string]string{
		"username":      adminUser,
		"password_hash": passwordHash(),
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	return cookies, cookieValue(cookies, "XSRF-TOKEN")
}

func (f fixture) bearer(t *testing.T) string {
	t.Helper()

	w := f.do(t, call{method: http.MethodPost, path: "/auth/token", body: map[string]string{
		"username":      adminUser,
		"password_hash": passwordHash(),
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["access_token"].(string)
}

func cookieValue(cookies []*http.Cookie, name string) string {
	for _, c := range cookies {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func findCookie(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func csrf(token string) map[string]string {
	return map[string]string{"X-CSRF-Token": token}
}

func TestNew_RequiresDeps(t *testing.T) {
	t.Parallel()

	_, err := api.New(api.DefaultConfig(), api.Deps{})
	assert.ErrorIs(t, err, api.ErrNilVerifier)
}

func TestConfig_Origins(t *testing.T) {
	t.Parallel()

	cfg := api.Config{AllowedOrigins: " https://a.example , ,http://localhost:3000"}
	assert.Equal(t, []string{"https://a.example", "http://localhost:3000"}, cfg.Origins())
}

func TestHealth(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	w := f.do(t, call{method: http.MethodGet, path: "/health/live"})
	assert.Equal(t, "ALIVE", w.Body.String())
	w = f.do(t, call{method: http.MethodGet, path: "/health/ready"})
	assert.Equal(t, "READY", w.Body.String())

	down := newFixture(t, func(_ *api.Config, d *api.Deps) {
		d.Checks = []health.Check{{Name: "mongo", Probe: func(context.Context) error { return errors.New("down") }}}
	})
	w = down.do(t, call{method: http.MethodGet, path: "/health/ready"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Service Unavailable", decode(t, w)["detail"])
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	w := f.do(t, call{method: http.MethodOptions, path: "/admin/projects", headers: map[string]string{
		"Origin":                         "http://localhost:3000",
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": "content-type,x-csrf-token",
	}})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	f := newFixture(t, func(c *api.Config, _ *api.Deps) { c.BodyLimit = 64 })
	w := f.do(t, call{method: http.MethodPost, path: "/auth/login", body: map[string]string{
		"username": strings.Repeat("a", 128),
		"password": "x",
	}})
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
