// Package jwt issues and verifies HS256 JSON Web Tokens on top of
// github.com/golang-jwt/jwt/v5.
//
//	svc, err := jwt.NewFromString(secret, jwt.WithAudience("https://example.com"))
//	claims := jwt.NewStandardClaims("admin", "https://example.com", "folio", time.Now(), time.Hour)
//	token, err := svc.Generate(claims)
//
//	var parsed jwt.StandardClaims
//	if err := svc.Parse(token, &parsed); errors.Is(err, jwt.ErrExpiredToken) {
//		// ask the client to log in again
//	}
//
// Parse only accepts HS256, always requires exp, and checks aud and iss
// when the service was configured with them. Failures wrap one of the
// package sentinels together with the library error.
package jwt
