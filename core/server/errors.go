package server

import "errors"

var (
	ErrMissingAddress       = errors.New("server: address is required")
	ErrIncompleteTLS        = errors.New("server: both TLS cert and key files are required")
	ErrFailedLoadCert       = errors.New("server: failed to load certificate")
	ErrServerAlreadyRunning = errors.New("server: already running")
)
