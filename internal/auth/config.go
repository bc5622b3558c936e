package auth

import "time"

// SecretMode selects how the supplied admin secret is checked.
type SecretMode string

const (
	// SecretSHA256 expects hex(sha256(password)) from the client; the
	// configured value is the plaintext password.
	SecretSHA256 SecretMode = "sha256"
	// SecretBcrypt expects the password; the configured value is a bcrypt hash.
	SecretBcrypt SecretMode = "bcrypt"
	// SecretPlain compares the supplied value with the configured one.
	SecretPlain SecretMode = "plain"
)

// Config is the admin credential and token configuration.
type Config struct {
	Username        string     `env:"INTERNAL_API_USERNAME" envDefault:"admin"`
	Password        string     `env:"INTERNAL_API_PASSWORD"`
	SecretMode      SecretMode `env:"ADMIN_SECRET_MODE" envDefault:"sha256"`
	AdminTokenTTL   int        `env:"ADMIN_TOKEN_EXPIRE_SECONDS" envDefault:"1800"`
	SigningKey      string     `env:"JWT_SECRET_KEY"`
	SessionTokenTTL int        `env:"JWT_EXPIRE_SECONDS" envDefault:"60"`
	Audience        string     `env:"TOKEN_AUDIENCE" envDefault:"https://mathislambert.fr"`
	Issuer          string     `env:"JWT_ISSUER" envDefault:"folio"`
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{
		Username:        "admin",
		SecretMode:      SecretSHA256,
		AdminTokenTTL:   1800,
		SessionTokenTTL: 60,
		Audience:        "https://mathislambert.fr",
		Issuer:          "folio",
	}
}

// AdminTTL is the lifetime of tokens minted by Verify.
func (c Config) AdminTTL() time.Duration {
	return time.Duration(c.AdminTokenTTL) * time.Second
}

// SessionTTL is the lifetime of session bearer tokens.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTokenTTL) * time.Second
}
