package content

import (
	"io"
	"log/slog"

	"github.com/dmitrymomot/folio/pkg/slug"
)

// Config configures the content coordinator.
type Config struct {
	DataDir       string `env:"CONTENT_DATA_DIR" envDefault:"data"`
	Transliterate bool   `env:"CONTENT_SLUG_TRANSLITERATE" envDefault:"false"`
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{DataDir: "data"}
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the coordinator logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTransliteration folds Latin diacritics before slugifying.
func WithTransliteration() Option {
	return func(c *Coordinator) {
		c.slugOpts = append(c.slugOpts, slug.Transliterate())
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
