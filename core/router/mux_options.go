package router

import (
	"log/slog"
	"net/http"

	"github.com/eurodata/site/core/handler"
)

// Option configures a Router during creation.
type Option[C handler.Context] func(*mux[C])

// WithErrorHandler sets the handler for routing, rendering and panic errors.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithMiddleware adds typed middleware to the router.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.middlewares = append(m.middlewares, middlewares...)
	}
}

// WithHTTPMiddleware adds net/http middleware that runs before routing,
// e.g. chi's StripSlashes.
func WithHTTPMiddleware[C handler.Context](middlewares ...func(http.Handler) http.Handler) Option[C] {
	return func(m *mux[C]) {
		m.httpMiddlewares = append(m.httpMiddlewares, middlewares...)
	}
}

// WithContextFactory sets a custom context factory.
func WithContextFactory[C handler.Context](f func(http.ResponseWriter, *http.Request, map[string]string) C) Option[C] {
	return func(m *mux[C]) {
		m.newContext = f
	}
}

// WithLogger sets the logger used for panics that happen after the
// response has been written.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if logger != nil {
			m.logger = logger
		}
	}
}
