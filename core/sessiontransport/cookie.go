package sessiontransport

import (
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/folio/core/cookie"
	"github.com/dmitrymomot/folio/core/session"
)

// Cookie carries a session over two cookies: an HttpOnly, signed cookie
// with the session id and a script-readable cookie with the CSRF token
// the client must echo in the CSRF header.
type Cookie struct {
	cookies *cookie.Manager
	cfg     CookieConfig
}

// NewCookie returns a cookie transport backed by cookies.
func NewCookie(cookies *cookie.Manager) *Cookie {
	return NewCookieFromConfig(DefaultCookieConfig(), cookies)
}

// CSRFHeader returns the request header holding the echoed CSRF token.
func (c *Cookie) CSRFHeader() string { return c.cfg.CSRFHeader }

// Set writes both cookies with Max-Age equal to the session's remaining
// lifetime.
func (c *Cookie) Set(w http.ResponseWriter, r *http.Request, s session.Session) error {
	remaining := s.Remaining(time.Now())
	if remaining <= 0 {
		return ErrExpiredSession
	}
	maxAge := int(math.Ceil(remaining.Seconds()))

	opts := c.options(r, cookie.WithMaxAge(maxAge))
	if err := c.cookies.SetSigned(w, c.cfg.CookieName, s.ID, append(opts, cookie.WithHTTPOnly(true))...); err != nil {
		return err
	}
	return c.cookies.Set(w, c.cfg.CSRFCookieName, s.CSRFToken, append(opts, cookie.WithHTTPOnly(false))...)
}

// Extract returns the session id from the signed cookie and the CSRF
// token from the request header (possibly empty).
func (c *Cookie) Extract(r *http.Request) (id, csrf string, err error) {
	id, err = c.cookies.GetSigned(r, c.cfg.CookieName)
	switch {
	case errors.Is(err, cookie.ErrCookieNotFound):
		return "", "", ErrNoToken
	case err != nil:
		return "", "", errors.Join(ErrInvalidToken, err)
	}
	return id, r.Header.Get(c.cfg.CSRFHeader), nil
}

// Clear expires both cookies.
func (c *Cookie) Clear(w http.ResponseWriter, r *http.Request) {
	opts := c.options(r)
	c.cookies.Delete(w, c.cfg.CookieName, append(opts, cookie.WithHTTPOnly(true))...)
	c.cookies.Delete(w, c.cfg.CSRFCookieName, append(opts, cookie.WithHTTPOnly(false))...)
}

func (c *Cookie) options(r *http.Request, extra ...cookie.Option) []cookie.Option {
	opts := []cookie.Option{cookie.WithPath("/"), cookie.WithSameSite(http.SameSiteLaxMode)}
	if IsSecureRequest(r) {
		opts = append(opts, cookie.WithSecure(true))
	}
	return append(opts, extra...)
}

// IsSecureRequest reports whether the client reached us over HTTPS,
// directly or through a proxy setting X-Forwarded-Proto.
func IsSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	proto, _, _ := strings.Cut(r.Header.Get("X-Forwarded-Proto"), ",")
	return strings.EqualFold(strings.TrimSpace(proto), "https")
}
