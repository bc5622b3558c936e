package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/folio/core/logger"
	"github.com/dmitrymomot/folio/pkg/jwt"
)

// Verifier checks admin credentials and mints bearer tokens. It holds no
// mutable state and is safe for concurrent use.
type Verifier struct {
	username []byte
	secret   []byte
	mode     SecretMode
	adminTTL time.Duration
	sessTTL  time.Duration
	tokens   *jwt.Service
	audience string
	issuer   string
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithClock overrides the time source for minting and parsing.
func WithClock(now func() time.Time) Option {
	return func(v *Verifier) {
		if now != nil {
			v.now = now
		}
	}
}

// WithLogger sets the logger used for failed attempts.
func WithLogger(l *slog.Logger) Option {
	return func(v *Verifier) {
		if l != nil {
			v.logger = l
		}
	}
}

// NewFromConfig builds a Verifier from cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Verifier, error) {
	if cfg.Password == "" {
		return nil, ErrMissingPassword
	}

	v := &Verifier{
		username: []byte(cfg.Username),
		mode:     cfg.SecretMode,
		adminTTL: cfg.AdminTTL(),
		sessTTL:  cfg.SessionTTL(),
		now:      time.Now,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if v.mode == "" {
		v.mode = SecretSHA256
	}

	switch v.mode {
	case SecretSHA256:
		sum := sha256.Sum256([]byte(cfg.Password))
		v.secret = []byte(hex.EncodeToString(sum[:]))
	case SecretBcrypt, SecretPlain:
		v.secret = []byte(cfg.Password)
	default:
		return nil, ErrUnknownSecretMode
	}

	for _, opt := range opts {
		opt(v)
	}

	tokens, err := jwt.NewFromString(cfg.SigningKey,
		jwt.WithAudience(cfg.Audience),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithClock(v.now),
	)
	if err != nil {
		return nil, err
	}
	v.tokens = tokens
	v.issuer = cfg.Issuer
	v.audience = cfg.Audience

	return v, nil
}

// Verify checks username and secret and mints an admin token. Both checks
// run regardless of the outcome of the other; every failure is reported
// as ErrInvalidCredentials.
func (v *Verifier) Verify(username, secret string) (Token, error) {
	userOK := equalConstantTime([]byte(username), v.username)
	secretOK := v.checkSecret(secret)

	if !userOK || !secretOK {
		v.logger.Warn("admin login rejected", logger.Component("auth"), logger.Result("invalid_credentials"))
		return Token{}, ErrInvalidCredentials
	}
	return v.Issue(username, v.adminTTL)
}

// Issue mints a token for subject without checking credentials.
func (v *Verifier) Issue(subject string, ttl time.Duration) (Token, error) {
	now := v.now()
	claims := Claims{StandardClaims: jwt.NewStandardClaims(subject, v.audience, v.issuer, now, ttl)}

	signed, err := v.tokens.Generate(claims)
	if err != nil {
		return Token{}, err
	}
	return Token{
		AccessToken: signed,
		TokenType:   TokenType,
		ExpiresIn:   int(ttl / time.Second),
		ExpiresAt:   now.Add(ttl),
	}, nil
}

// SessionSubject is the subject of tokens bound to browser sessions.
const SessionSubject = "session"

// IssueSession mints the short-lived token bound to a browser session.
func (v *Verifier) IssueSession() (Token, error) {
	return v.Issue(SessionSubject, v.sessTTL)
}

// Tokens exposes the signing service for the bearer token middleware.
func (v *Verifier) Tokens() *jwt.Service { return v.tokens }

// Parse validates a bearer token (signature, exp, aud, iss).
func (v *Verifier) Parse(token string) (*Claims, error) {
	var claims Claims
	if err := v.tokens.Parse(token, &claims); err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	return &claims, nil
}

func (v *Verifier) checkSecret(supplied string) bool {
	switch v.mode {
	case SecretBcrypt:
		return bcrypt.CompareHashAndPassword(v.secret, []byte(supplied)) == nil
	case SecretSHA256:
		return equalConstantTime([]byte(strings.ToLower(supplied)), v.secret)
	default:
		return equalConstantTime([]byte(supplied), v.secret)
	}
}

// equalConstantTime hashes both sides first so the comparison does not
// leak the expected length.
func equalConstantTime(a, b []byte) bool {
	ha := sha256.Sum256(a)
	hb := sha256.Sum256(b)
	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}
