package sessiontransport_test

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/core/cookie"
	"github.com/dmitrymomot/folio/core/session"
	"github.com/dmitrymomot/folio/core/sessiontransport"
)

const secret = "test-secret-key-32-characters!!!"

func newTransport(t *testing.T) *sessiontransport.Cookie {
	t.Helper()
	cm, err := cookie.New([]string{secret})
	require.NoError(t, err)
	return sessiontransport.NewCookie(cm)
}

func byName(cookies []*http.Cookie) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie, len(cookies))
	for _, c := range cookies {
		out[c.Name] = c
	}
	return out
}

func TestCookie_SetAttributes(t *testing.T) {
	t.Parallel()
	tr := newTransport(t)

	s := session.Session{ID: "sid", CSRFToken: "csrf", ExpiresAt: time.Now().Add(90 * time.Second)}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)

	require.NoError(t, tr.Set(w, r, s))

	got := byName(w.Result().Cookies())
	require.Contains(t, got, "session_id")
	require.Contains(t, got, "XSRF-TOKEN")

	sid, csrf := got["session_id"], got["XSRF-TOKEN"]
	assert.True(t, sid.HttpOnly)
	assert.False(t, csrf.HttpOnly)
	assert.Equal(t, "csrf", csrf.Value)
	assert.NotEqual(t, "sid", sid.Value)
	for _, c := range []*http.Cookie{sid, csrf} {
		assert.Equal(t, "/", c.Path)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.False(t, c.Secure)
		assert.InDelta(t, 90, c.MaxAge, 1)
	}
}

func TestCookie_SecureDetection(t *testing.T) {
	t.Parallel()
	tr := newTransport(t)
	s := session.Session{ID: "sid", CSRFToken: "csrf", ExpiresAt: time.Now().Add(time.Minute)}

	forwarded := httptest.NewRequest(http.MethodPost, "/", nil)
	forwarded.Header.Set("X-Forwarded-Proto", "https")

	direct := httptest.NewRequest(http.MethodPost, "/", nil)
	direct.TLS = &tls.ConnectionState{}

	for _, r := range []*http.Request{forwarded, direct} {
		w := httptest.NewRecorder()
		require.NoError(t, tr.Set(w, r, s))
		for _, c := range w.Result().Cookies() {
			assert.True(t, c.Secure, c.Name)
		}
	}
}

func TestCookie_ExtractRoundTrip(t *testing.T) {
	t.Parallel()
	tr := newTransport(t)
	s := session.Session{ID: "sid-123", CSRFToken: "csrf-456", ExpiresAt: time.Now().Add(time.Minute)}

	w := httptest.NewRecorder()
	require.NoError(t, tr.Set(w, httptest.NewRequest(http.MethodPost, "/", nil), s))

	r := httptest.NewRequest(http.MethodPatch, "/admin/projects/x", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	r.Header.Set(tr.CSRFHeader(), "csrf-456")

	id, csrf, err := tr.Extract(r)
	require.NoError(t, err)
	assert.Equal(t, "sid-123", id)
	assert.Equal(t, "csrf-456", csrf)
}

func TestCookie_ExtractErrors(t *testing.T) {
	t.Parallel()
	tr := newTransport(t)

	_, _, err := tr.Extract(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, sessiontransport.ErrNoToken)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "session_id", Value: "forged"})
	_, _, err = tr.Extract(r)
	assert.ErrorIs(t, err, sessiontransport.ErrInvalidToken)
}

func TestCookie_SetExpired(t *testing.T) {
	t.Parallel()
	tr := newTransport(t)

	err := tr.Set(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil),
		session.Session{ID: "x", ExpiresAt: time.Now().Add(-time.Second)})
	assert.ErrorIs(t, err, sessiontransport.ErrExpiredSession)
}

func TestCookie_Clear(t *testing.T) {
	t.Parallel()
	tr := newTransport(t)

	w := httptest.NewRecorder()
	tr.Clear(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	got := byName(w.Result().Cookies())
	require.Len(t, got, 2)
	assert.Equal(t, -1, got["session_id"].MaxAge)
	assert.Equal(t, -1, got["XSRF-TOKEN"].MaxAge)
}

func TestIsSecureRequest(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, sessiontransport.IsSecureRequest(r))

	r.Header.Set("X-Forwarded-Proto", "HTTPS, http")
	assert.True(t, sessiontransport.IsSecureRequest(r))
}
