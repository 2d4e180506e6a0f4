package handler

import "net/http"

// Response renders an HTTP response: headers, status code and body.
// A returned error is passed to the router's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc handles a request using the router's context type.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler renders errors raised while handling or rendering a request.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps a handler with cross-cutting behaviour.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// Chain composes middlewares around an endpoint so that the first
// middleware in the slice runs first.
func Chain[C Context](middlewares []Middleware[C], endpoint HandlerFunc[C]) HandlerFunc[C] {
	h := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
