package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrInvalidToken       = errors.New("auth: invalid token")
	ErrMissingPassword    = errors.New("auth: admin password is not configured")
	ErrUnknownSecretMode  = errors.New("auth: unknown secret mode")
)
