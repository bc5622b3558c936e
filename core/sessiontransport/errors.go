package sessiontransport

import "errors"

var (
	// ErrNoToken means the request carries no session cookie.
	ErrNoToken = errors.New("sessiontransport: no token")
	// ErrInvalidToken means the session cookie failed signature checks.
	ErrInvalidToken = errors.New("sessiontransport: invalid token")
	// ErrExpiredSession is returned when asked to write a session with no
	// time left.
	ErrExpiredSession = errors.New("sessiontransport: session already expired")
)
