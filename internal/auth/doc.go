// Package auth verifies the admin credentials and mints HS256 bearer
// tokens.
//
// The admin secret is checked according to Config.SecretMode. In the
// default sha256 mode the client sends hex(sha256(password)) and the
// comparison is case-insensitive on the digest. Username and secret are
// both evaluated in constant time on every attempt, and any failure is
// reported as ErrInvalidCredentials.
//
//	v, err := auth.NewFromConfig(cfg)
//	tok, err := v.Verify(username, secret)
//	claims, err := v.Parse(tok.AccessToken)
package auth
