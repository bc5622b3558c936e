package sessiontransport

import "github.com/dmitrymomot/folio/core/cookie"

// CookieConfig names the session cookie pair and the CSRF header.
type CookieConfig struct {
	CookieName     string `env:"SESSION_COOKIE_NAME" envDefault:"session_id"`
	CSRFCookieName string `env:"SESSION_CSRF_COOKIE_NAME" envDefault:"XSRF-TOKEN"`
	CSRFHeader     string `env:"SESSION_CSRF_HEADER" envDefault:"X-CSRF-Token"`
}

// DefaultCookieConfig returns the session cookie defaults.
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{
		CookieName:     "session_id",
		CSRFCookieName: "XSRF-TOKEN",
		CSRFHeader:     "X-CSRF-Token",
	}
}

// NewCookieFromConfig creates a Cookie transport. Empty names fall back
// to the defaults.
func NewCookieFromConfig(cfg CookieConfig, cookies *cookie.Manager) *Cookie {
	def := DefaultCookieConfig()
	if cfg.CookieName == "" {
		cfg.CookieName = def.CookieName
	}
	if cfg.CSRFCookieName == "" {
		cfg.CSRFCookieName = def.CSRFCookieName
	}
	if cfg.CSRFHeader == "" {
		cfg.CSRFHeader = def.CSRFHeader
	}
	return &Cookie{cookies: cookies, cfg: cfg}
}
