package auth

import (
	"time"

	"github.com/dmitrymomot/folio/pkg/jwt"
)

// TokenType is the only token type issued.
const TokenType = "bearer"

// Token is a minted access token.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"-"`
}

// Claims are the claims carried by every minted token.
type Claims struct {
	jwt.StandardClaims
}
