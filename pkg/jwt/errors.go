package jwt

import "errors"

var (
	ErrInvalidToken      = errors.New("jwt: invalid token")
	ErrExpiredToken      = errors.New("jwt: token has expired")
	ErrInvalidSignature  = errors.New("jwt: invalid signature")
	ErrInvalidAudience   = errors.New("jwt: invalid audience")
	ErrInvalidIssuer     = errors.New("jwt: invalid issuer")
	ErrMissingSigningKey = errors.New("jwt: missing signing key")
	ErrInvalidSigningKey = errors.New("jwt: signing key must be at least 32 bytes")
	ErrInvalidClaims     = errors.New("jwt: invalid claims")
	ErrMissingClaims     = errors.New("jwt: missing claims")
)
