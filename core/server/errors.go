package server

import "errors"

var (
	ErrMissingAddress       = errors.New("server address is required")
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrFailedLoadCert       = errors.New("failed to load certificate")
	ErrConflictingTLS       = errors.New("certificate files and autocert domains are mutually exclusive")
)
