package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("ratelimiter: invalid configuration")
	ErrInvalidTokenCount = errors.New("ratelimiter: invalid token count")
	ErrNilStore          = errors.New("ratelimiter: store is required")
	ErrAlreadyRunning    = errors.New("ratelimiter: cleanup already running")
)
