package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const minKeyLength = 32

// StandardClaims holds the registered claims. Embed it in custom claim
// structs to satisfy the Claims interface.
type StandardClaims struct {
	jwtlib.RegisteredClaims
}

// Claims is what Generate and Parse accept.
type Claims = jwtlib.Claims

// NewStandardClaims fills sub, aud, iss, iat and exp relative to now.
func NewStandardClaims(subject, audience, issuer string, now time.Time, ttl time.Duration) StandardClaims {
	c := StandardClaims{RegisteredClaims: jwtlib.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
	}}
	if audience != "" {
		c.Audience = jwtlib.ClaimStrings{audience}
	}
	return c
}

// Service signs and verifies HS256 tokens.
type Service struct {
	key      []byte
	audience string
	issuer   string
	leeway   time.Duration
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithAudience makes Parse require aud to contain audience.
func WithAudience(audience string) Option {
	return func(s *Service) { s.audience = audience }
}

// WithIssuer makes Parse require iss to equal issuer.
func WithIssuer(issuer string) Option {
	return func(s *Service) { s.issuer = issuer }
}

// WithLeeway tolerates clock skew on exp/nbf/iat.
func WithLeeway(d time.Duration) Option {
	return func(s *Service) { s.leeway = d }
}

// WithClock overrides the time source used for validation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Service. The key must be at least 32 bytes.
func New(key []byte, opts ...Option) (*Service, error) {
	if len(key) == 0 {
		return nil, ErrMissingSigningKey
	}
	if len(key) < minKeyLength {
		return nil, ErrInvalidSigningKey
	}
	s := &Service{key: append([]byte(nil), key...), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewFromString is New for string keys.
func NewFromString(key string, opts ...Option) (*Service, error) {
	return New([]byte(key), opts...)
}

// Generate signs claims with HS256.
func (s *Service) Generate(claims Claims) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", errors.Join(ErrInvalidClaims, err)
	}
	return token, nil
}

// Parse verifies token and decodes it into claims. exp is mandatory; aud
// and iss are checked when configured.
func (s *Service) Parse(token string, claims Claims) error {
	if claims == nil {
		return ErrMissingClaims
	}
	if token == "" {
		return ErrInvalidToken
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	}
	if s.audience != "" {
		opts = append(opts, jwtlib.WithAudience(s.audience))
	}
	if s.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(s.issuer))
	}
	if s.leeway > 0 {
		opts = append(opts, jwtlib.WithLeeway(s.leeway))
	}

	_, err := jwtlib.ParseWithClaims(token, claims, func(*jwtlib.Token) (any, error) {
		return s.key, nil
	}, opts...)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return errors.Join(ErrExpiredToken, err)
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
		return errors.Join(ErrInvalidSignature, err)
	case errors.Is(err, jwtlib.ErrTokenInvalidAudience):
		return errors.Join(ErrInvalidAudience, err)
	case errors.Is(err, jwtlib.ErrTokenInvalidIssuer):
		return errors.Join(ErrInvalidIssuer, err)
	default:
		return errors.Join(ErrInvalidToken, err)
	}
}
