package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"
)

// tokenBytes is the entropy of session ids and CSRF tokens.
const tokenBytes = 32

// Session is a server-side admin session. ID travels in the HttpOnly
// session cookie; CSRFToken is mirrored in a script-readable cookie and
// must be echoed in a header on mutating requests.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	CSRFToken string    `json:"csrf_token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired reports whether now is strictly after ExpiresAt. A session is
// still valid at the exact expiry instant.
func (s Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Remaining returns the time left before expiry, never negative.
func (s Session) Remaining(now time.Time) time.Duration {
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

func newSession(bearer string, ttl time.Duration, now time.Time) (Session, error) {
	id, err := generateToken()
	if err != nil {
		return Session{}, errors.Join(ErrTokenGeneration, err)
	}
	csrf, err := generateToken()
	if err != nil {
		return Session{}, errors.Join(ErrTokenGeneration, err)
	}
	return Session{
		ID:        id,
		Token:     bearer,
		CSRFToken: csrf,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}

func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
