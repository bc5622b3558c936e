package session

import (
	"io"
	"log/slog"
	"time"
)

// Config is the env-driven session configuration.
type Config struct {
	TTLSeconds     int    `env:"SESSION_TTL_SECONDS" envDefault:"900"`
	Store          string `env:"SESSION_STORE" envDefault:"memory"`
	RedisKeyPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"{folio:session}:"`
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{TTLSeconds: 900, Store: "memory", RedisKeyPrefix: defaultRedisPrefix}
}

// MaxLifetime is the upper bound for any session TTL.
func (c Config) MaxLifetime() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxLifetime caps session lifetimes. Non-positive values are ignored.
func WithMaxLifetime(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.maxLifetime = d
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger used for session lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
