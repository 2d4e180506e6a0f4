package server

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/eurodata/site/core/logger"
)

// Server wraps http.Server with graceful shutdown. Safe for concurrent use.
type Server struct {
	mu             sync.RWMutex
	addr           string
	server         *http.Server
	listener       net.Listener
	logger         *slog.Logger
	shutdown       time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
	maxHeaderBytes int
	tlsConfig      *tls.Config
	running        bool

	challenge       http.Handler
	challengeAddr   string
	challengeServer *http.Server
}

// New creates a Server listening on addr. Without options it uses the
// package default timeouts and discards its logs.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:           addr,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdown:       DefaultShutdownTimeout,
		readTimeout:    DefaultReadTimeout,
		writeTimeout:   DefaultWriteTimeout,
		idleTimeout:    DefaultIdleTimeout,
		maxHeaderBytes: DefaultMaxHeaderBytes,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Addr reports the bound address once the server is listening, and the
// configured address before that.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Start serves handler and blocks until ctx is canceled or serving fails.
// It returns ctx.Err() on cancellation; call Stop to shut down.
func (s *Server) Start(ctx context.Context, handler http.Handler) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.running = true
	s.listener = ln
	s.server = &http.Server{
		Handler:        handler,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		TLSConfig:      s.tlsConfig,
	}
	if s.challenge != nil {
		s.challengeServer = &http.Server{
			Addr:              s.challengeAddr,
			Handler:           s.challenge,
			ReadHeaderTimeout: s.readTimeout,
		}
	}
	srv, challengeSrv := s.server, s.challengeServer
	hasTLS := s.tlsConfig != nil
	s.mu.Unlock()

	errCh := make(chan error, 2)
	go func() {
		s.logger.InfoContext(ctx, "starting server",
			logger.Component("server"),
			slog.String("addr", ln.Addr().String()),
			slog.Bool("tls", hasTLS),
		)

		var err error
		if hasTLS {
			err = srv.ServeTLS(ln, "", "")
		} else {
			err = srv.Serve(ln)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if challengeSrv != nil {
		go func() {
			s.logger.InfoContext(ctx, "starting ACME challenge listener",
				logger.Component("server"),
				slog.String("addr", challengeSrv.Addr),
			)
			if err := challengeSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	select {
	case err := <-errCh:
		_ = s.Stop()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop gracefully shuts the server down within the shutdown timeout.
// It is a no-op when the server is not running.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.server == nil {
		return nil
	}

	s.logger.Info("shutting down server", logger.Component("server"), slog.Duration("timeout", s.shutdown))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	err := s.server.Shutdown(shutdownCtx)
	if s.challengeServer != nil {
		err = errors.Join(err, s.challengeServer.Shutdown(shutdownCtx))
	}
	s.running = false
	s.listener = nil

	if err != nil {
		s.logger.Error("server shutdown error", logger.Component("server"), logger.Error(err))
		return err
	}

	s.logger.Info("server shutdown complete", logger.Component("server"))
	return nil
}

// Run returns a function suitable for errgroup.Group.Go. It serves until
// ctx is canceled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context, handler http.Handler) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- s.Start(ctx, handler)
		}()

		select {
		case <-ctx.Done():
			if err := s.Stop(); err != nil {
				s.logger.Error("failed to stop server", logger.Component("server"), logger.Error(err))
			}
			<-errCh
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}
