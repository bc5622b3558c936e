// Package api is the HTTP surface of folio: admin login and session
// management under /auth, content administration under /admin, and the
// public read endpoints consumed by the website.
//
// Admin routes accept either a bearer token (Authorization header) or the
// session cookie pair, in which case mutating requests must echo the
// XSRF-TOKEN cookie in the X-CSRF-Token header. Errors are rendered as
// {"detail": "..."}.
package api
