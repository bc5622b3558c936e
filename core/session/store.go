package session

import (
	"context"
	"time"
)

// Store persists sessions. Every method must be atomic with respect to the
// others; the manager relies on that instead of locking itself.
type Store interface {
	// Create stores a new session.
	Create(ctx context.Context, s Session) error
	// Lookup returns the session with id. An entry expired at now is
	// removed and reported as ErrExpired; a missing one as ErrNotFound.
	Lookup(ctx context.Context, id string, now time.Time) (Session, error)
	// Replace stores next and removes oldID in one step. It fails with
	// ErrNotFound, storing nothing, when oldID is gone.
	Replace(ctx context.Context, oldID string, next Session) error
	// Delete removes id. Missing ids are not an error.
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes every session expired at now.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
