package binder

import "errors"

var (
	// ErrUnsupportedMediaType is returned when Content-Type names a
	// non-JSON media type.
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")

	// ErrFailedToParseJSON covers malformed bodies, type mismatches and
	// trailing data.
	ErrFailedToParseJSON = errors.New("binder: failed to parse JSON request body")

	// ErrEmptyBody is returned when the request has no body at all.
	ErrEmptyBody = errors.New("binder: empty request body")
)
