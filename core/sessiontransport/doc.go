// Package sessiontransport moves admin sessions between server and browser.
//
// Cookie writes the session id into an HttpOnly signed cookie (session_id)
// and the CSRF token into a readable cookie (XSRF-TOKEN). The dashboard
// reads XSRF-TOKEN and sends it back in X-CSRF-Token on mutating requests.
// Both cookies share Path=/, SameSite=Lax and a Max-Age equal to the
// session's remaining lifetime; Secure is set for HTTPS requests, including
// those terminated by a proxy that sets X-Forwarded-Proto.
package sessiontransport
