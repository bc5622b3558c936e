// Package response holds the handler.Response constructors used by the API:
// JSON, XML, plain text and status-only replies, plus HTTPError and the
// error handlers that render it.
//
// Errors render as a single-field JSON object:
//
//	{"detail": "Not authenticated"}
//
// Any error with a StatusCode() int method is mapped to the canonical
// HTTPError for that status; anything else becomes a 500.
package response
