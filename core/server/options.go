package server

import (
	"crypto/tls"
	"log/slog"
	"time"

	"golang.org/x/crypto/acme/autocert"
)

// Option configures server behavior.
type Option func(*Server)

// WithTLS serves HTTPS with the given configuration.
func WithTLS(config *tls.Config) Option {
	return func(s *Server) {
		s.tlsConfig = config
	}
}

// WithAutoCert obtains certificates from m and answers its HTTP-01
// challenges on challengeAddr. An empty challengeAddr uses
// DefaultChallengeAddr.
func WithAutoCert(m *autocert.Manager, challengeAddr string) Option {
	return func(s *Server) {
		if m == nil {
			return
		}
		if challengeAddr == "" {
			challengeAddr = DefaultChallengeAddr
		}
		s.tlsConfig = m.TLSConfig()
		s.tlsConfig.MinVersion = tls.VersionTLS12
		s.challenge = m.HTTPHandler(nil)
		s.challengeAddr = challengeAddr
	}
}

// WithLogger sets the logger for lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) { s.shutdown = timeout }
}

func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Server) { s.readTimeout = timeout }
}

func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *Server) { s.writeTimeout = timeout }
}

func WithIdleTimeout(timeout time.Duration) Option {
	return func(s *Server) { s.idleTimeout = timeout }
}

func WithMaxHeaderBytes(n int) Option {
	return func(s *Server) { s.maxHeaderBytes = n }
}
