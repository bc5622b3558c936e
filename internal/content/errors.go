package content

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("content: item not found")
	ErrInvalidPayload = errors.New("content: invalid payload")
	ErrStorage        = errors.New("content: storage failure")
	ErrMirrorWrite    = errors.New("content: mirror write failed")
	ErrNilFileStore   = errors.New("content: file store is required")
)

// ErrUnknownCollection is reported for names outside the schema registry.
// It matches ErrNotFound with errors.Is.
var ErrUnknownCollection = fmt.Errorf("%w: unknown collection", ErrNotFound)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayload, fmt.Sprintf(format, args...))
}
