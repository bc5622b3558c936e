package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory behind one mutex.
// Sessions do not survive restarts and are not shared between replicas.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

// Create stores s under its id.
func (m *MemoryStore) Create(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

// Lookup returns the session for id. An expired session is evicted and
// reported as ErrExpired; later lookups get ErrNotFound.
func (m *MemoryStore) Lookup(_ context.Context, id string, now time.Time) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	if s.IsExpired(now) {
		delete(m.sessions, id)
		return Session{}, ErrExpired
	}
	return s, nil
}

// Replace swaps oldID for next. It returns ErrNotFound and stores
// nothing when oldID is unknown.
func (m *MemoryStore) Replace(_ context.Context, oldID string, next Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[oldID]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, oldID)
	m.sessions[next.ID] = next
	return nil
}

// Delete removes id. Unknown ids are a no-op.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// DeleteExpired evicts every session expired at now and returns the count.
func (m *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, s := range m.sessions {
		if s.IsExpired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
