package jwt_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/jwt"
)

const (
	key      = "0123456789abcdef0123456789abcdef"
	audience = "https://mathislambert.fr"
)

func TestNew_KeyValidation(t *testing.T) {
	t.Parallel()

	_, err := jwt.New(nil)
	assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)

	_, err = jwt.NewFromString("short")
	assert.ErrorIs(t, err, jwt.ErrInvalidSigningKey)
}

func TestService_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := jwt.NewFromString(key, jwt.WithAudience(audience), jwt.WithIssuer("folio"))
	require.NoError(t, err)

	token, err := svc.Generate(jwt.NewStandardClaims("admin", audience, "folio", time.Now(), time.Minute))
	require.NoError(t, err)

	var claims jwt.StandardClaims
	require.NoError(t, svc.Parse(token, &claims))
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, jwtlib.ClaimStrings{audience}, claims.Audience)
}

type roleClaims struct {
	jwt.StandardClaims
	Role string `json:"role"`
}

func TestService_CustomClaims(t *testing.T) {
	t.Parallel()

	svc, err := jwt.NewFromString(key)
	require.NoError(t, err)

	token, err := svc.Generate(roleClaims{
		StandardClaims: jwt.NewStandardClaims("admin", "", "", time.Now(), time.Minute),
		Role:           "editor",
	})
	require.NoError(t, err)

	var got roleClaims
	require.NoError(t, svc.Parse(token, &got))
	assert.Equal(t, "editor", got.Role)
}

func TestService_ParseFailures(t *testing.T) {
	t.Parallel()

	now := time.Now()
	svc, err := jwt.NewFromString(key, jwt.WithAudience(audience))
	require.NoError(t, err)
	other, err := jwt.NewFromString("fedcba9876543210fedcba9876543210")
	require.NoError(t, err)

	expired, err := svc.Generate(jwt.NewStandardClaims("admin", audience, "", now.Add(-time.Hour), time.Minute))
	require.NoError(t, err)
	wrongAud, err := svc.Generate(jwt.NewStandardClaims("admin", "https://evil.example", "", now, time.Minute))
	require.NoError(t, err)
	foreign, err := other.Generate(jwt.NewStandardClaims("admin", audience, "", now, time.Minute))
	require.NoError(t, err)
	noExp, err := svc.Generate(jwt.StandardClaims{RegisteredClaims: jwtlib.RegisteredClaims{
		Subject: "admin", Audience: jwtlib.ClaimStrings{audience},
	}})
	require.NoError(t, err)
	none, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone,
		jwt.NewStandardClaims("admin", audience, "", now, time.Minute)).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "expired", token: expired, want: jwt.ErrExpiredToken},
		{name: "wrong audience", token: wrongAud, want: jwt.ErrInvalidAudience},
		{name: "wrong key", token: foreign, want: jwt.ErrInvalidSignature},
		{name: "missing exp", token: noExp, want: jwt.ErrInvalidToken},
		{name: "alg none", token: none, want: jwt.ErrInvalidSignature},
		{name: "garbage", token: "not.a.jwt", want: jwt.ErrInvalidToken},
		{name: "empty", token: "", want: jwt.ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var claims jwt.StandardClaims
			assert.ErrorIs(t, svc.Parse(tt.token, &claims), tt.want)
		})
	}
}
