// Package cookie manages HTTP cookies with shared secure defaults
// (Path=/, HttpOnly, SameSite=Lax) and HMAC-signed values.
//
//	m, err := cookie.New([]string{secret})
//	_ = m.SetSigned(w, "session_id", id, cookie.WithMaxAge(900))
//	id, err := m.GetSigned(r, "session_id")
//
// Signed values are base64url(value) "." base64url(HMAC-SHA256). Passing
// several secrets enables rotation: the first signs, any of them verifies.
package cookie
