package session

import "errors"

var (
	ErrNotAuthenticated = errors.New("session: not authenticated")
	ErrExpired          = errors.New("session: expired")
	ErrCSRFMismatch     = errors.New("session: csrf token mismatch")
	ErrNotFound         = errors.New("session: not found")
	ErrTokenGeneration  = errors.New("session: failed to generate token")
	ErrStore            = errors.New("session: store failure")
	ErrNilStore         = errors.New("session: nil store")
)
