package api

import (
	"strings"

	"github.com/dmitrymomot/folio/middleware"
)

// Config holds the HTTP surface settings.
type Config struct {
	// AllowedOrigins is a comma-separated list of origins allowed to call
	// the API with credentials.
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"https://mathislambert.fr,http://localhost:3000"`
	CORSMaxAge     int    `env:"CORS_MAX_AGE" envDefault:"600"`

	// PublicBaseURL prefixes every sitemap location.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"https://mathislambert.fr"`

	BodyLimit   int64 `env:"API_BODY_LIMIT" envDefault:"1048576"`
	Development bool  `env:"API_DEVELOPMENT" envDefault:"false"`
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{
		AllowedOrigins: "https://mathislambert.fr,http://localhost:3000",
		CORSMaxAge:     600,
		PublicBaseURL:  "https://mathislambert.fr",
		BodyLimit:      middleware.MB,
	}
}

// Origins returns the trimmed non-empty origins.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c Config) cors() middleware.CORSConfig {
	return middleware.CORSConfig{
		AllowOrigins:     c.Origins(),
		AllowCredentials: true,
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           c.CORSMaxAge,
	}
}

func (c Config) baseURL() string {
	return strings.TrimRight(c.PublicBaseURL, "/")
}
