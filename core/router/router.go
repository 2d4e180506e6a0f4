package router

import (
	"net/http"

	"github.com/eurodata/site/core/handler"
)

// Router registers typed handlers on top of a chi routing tree.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Head(pattern string, h handler.HandlerFunc[C])
	Handle(pattern string, h handler.HandlerFunc[C])
	Method(pattern string, h handler.HandlerFunc[C], methods ...string)

	// Use appends middleware. It must be called before any route is registered.
	Use(middlewares ...handler.Middleware[C])
	With(middlewares ...handler.Middleware[C]) Router[C]

	Group(fn func(r Router[C])) Router[C]
	Route(pattern string, fn func(r Router[C])) Router[C]

	// Mount attaches a plain http.Handler, e.g. a metrics exporter.
	Mount(pattern string, h http.Handler)
}

// Routes provides route introspection.
type Routes interface {
	Routes() []Route
}

// Route describes a registered route.
type Route struct {
	Method  string
	Pattern string
}

// New creates a router. Without WithContextFactory the context type must be *Context.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux(opts...)
}
