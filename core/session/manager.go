package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/folio/core/logger"
)

const defaultMaxLifetime = 15 * time.Minute

// Manager drives the session lifecycle: ABSENT -> ACTIVE -> EXPIRED or
// REVOKED. It holds no state of its own; all of it lives in the Store.
type Manager struct {
	store       Store
	maxLifetime time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

// NewManager returns a Manager over store. A nil store yields ErrNilStore.
func NewManager(store Store, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	m := &Manager{
		store:       store,
		maxLifetime: defaultMaxLifetime,
		now:         time.Now,
		logger:      defaultLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// NewFromConfig builds a Manager whose lifetime cap comes from cfg.
func NewFromConfig(cfg Config, store Store, opts ...Option) (*Manager, error) {
	return NewManager(store, append([]Option{WithMaxLifetime(cfg.MaxLifetime())}, opts...)...)
}

// MaxLifetime returns the session lifetime cap.
func (m *Manager) MaxLifetime() time.Duration { return m.maxLifetime }

// Create starts a session bound to bearer. The lifetime is ttlHint capped
// at the configured maximum; a non-positive hint means the maximum.
func (m *Manager) Create(ctx context.Context, bearer string, ttlHint time.Duration) (Session, error) {
	s, err := newSession(bearer, m.ttl(ttlHint), m.now())
	if err != nil {
		return Session{}, err
	}
	if err := m.store.Create(ctx, s); err != nil {
		return Session{}, err
	}
	m.logger.DebugContext(ctx, "session created", logger.Action("create"), slog.Time("expires_at", s.ExpiresAt))
	return s, nil
}

// Validate returns the live session for id. Mutating methods additionally
// need csrfHeader to equal the session's CSRF token.
func (m *Manager) Validate(ctx context.Context, id, method, csrfHeader string) (Session, error) {
	s, err := m.lookup(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if !IsSafeMethod(method) && !csrfMatches(s.CSRFToken, csrfHeader) {
		return Session{}, ErrCSRFMismatch
	}
	return s, nil
}

// Refresh swaps an active session for a fresh one. The old id stops
// working before Refresh returns.
func (m *Manager) Refresh(ctx context.Context, oldID, bearer string, ttlHint time.Duration) (Session, error) {
	if _, err := m.lookup(ctx, oldID); err != nil {
		return Session{}, err
	}

	next, err := newSession(bearer, m.ttl(ttlHint), m.now())
	if err != nil {
		return Session{}, err
	}
	if err := m.store.Replace(ctx, oldID, next); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrNotAuthenticated
		}
		return Session{}, err
	}
	m.logger.DebugContext(ctx, "session refreshed", logger.Action("refresh"))
	return next, nil
}

// Revoke ends a session. Unknown or empty ids are a no-op.
func (m *Manager) Revoke(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return m.store.Delete(ctx, id)
}

// DeleteExpired sweeps expired sessions from the store.
func (m *Manager) DeleteExpired(ctx context.Context) (int, error) {
	return m.store.DeleteExpired(ctx, m.now())
}

func (m *Manager) lookup(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, ErrNotAuthenticated
	}
	s, err := m.store.Lookup(ctx, id, m.now())
	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, ErrNotFound):
		return Session{}, ErrNotAuthenticated
	case errors.Is(err, ErrExpired):
		return Session{}, ErrExpired
	default:
		return Session{}, err
	}
}

func (m *Manager) ttl(hint time.Duration) time.Duration {
	if hint <= 0 || hint > m.maxLifetime {
		return m.maxLifetime
	}
	return hint
}

// IsSafeMethod reports whether method is exempt from CSRF checks.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func csrfMatches(expected, got string) bool {
	if got == "" || len(got) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}
