package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eurodata/site/core/handler"
)

var allowedMethods = map[string]bool{
	http.MethodConnect: true,
	http.MethodDelete:  true,
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
	http.MethodPatch:   true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodTrace:   true,
}

// mux is the private implementation of Router. Path matching is delegated
// to chi; mux adds typed contexts, deferred responses, error handling and
// panic recovery.
type mux[C handler.Context] struct {
	chi             chi.Router
	middlewares     []handler.Middleware[C]
	httpMiddlewares []func(http.Handler) http.Handler
	errorHandler    handler.ErrorHandler[C]
	newContext      func(http.ResponseWriter, *http.Request, map[string]string) C
	logger          *slog.Logger
	parent          *mux[C]
	inline          bool
	hasRoutes       bool
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r, params)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	cm := chi.NewRouter()
	if len(m.httpMiddlewares) > 0 {
		cm.Use(m.httpMiddlewares...)
	}
	cm.NotFound(m.errorEndpoint(ErrNotFound))
	cm.MethodNotAllowed(m.errorEndpoint(ErrMethodNotAllowed))
	m.chi = cm

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.chi.ServeHTTP(w, r)
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

func (m *mux[C]) Head(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodHead, pattern, h)
}

// Handle registers a handler for every HTTP method.
func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle("", pattern, h)
}

// Method registers a handler for one or more HTTP methods.
func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}

	seen := make(map[string]bool, len(methods))
	for _, method := range methods {
		method = strings.ToUpper(method)
		if !allowedMethods[method] {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if seen[method] {
			continue
		}
		seen[method] = true
		m.handle(method, pattern, h)
	}
}

func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.hasRoutes {
		panic("router: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With returns an inline router that shares the routing tree and adds
// middlewares to the routes registered through it.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return &mux[C]{
		chi:          m.chi,
		middlewares:  middlewares,
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
		parent:       m,
		inline:       true,
	}
}

func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Route mounts a sub-router at pattern. The sub-router inherits the
// middlewares, error handler, context factory and logger of m.
func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilSubrouter, pattern))
	}

	sub := &mux[C]{
		middlewares:  m.chain(),
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
	}

	m.markRoutes()
	m.chi.Route(pattern, func(r chi.Router) {
		sub.chi = r
		fn(sub)
	})
	return sub
}

func (m *mux[C]) Mount(pattern string, h http.Handler) {
	if h == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilRouter, pattern))
	}
	m.markRoutes()
	m.chi.Mount(pattern, h)
}

// Routes returns every registered method/pattern pair.
func (m *mux[C]) Routes() []Route {
	var routes []Route
	_ = chi.Walk(m.chi, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, Route{Method: method, Pattern: route})
		return nil
	})
	return routes
}

func (m *mux[C]) handle(method, pattern string, fn handler.HandlerFunc[C]) {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
	if fn == nil {
		panic(fmt.Errorf("%w: nil handler on '%s'", ErrInvalidPattern, pattern))
	}

	m.markRoutes()

	h := m.serve(handler.Chain(m.chain(), fn))
	if method == "" {
		m.chi.HandleFunc(pattern, h)
		return
	}
	m.chi.MethodFunc(method, pattern, h)
}

// chain collects middlewares from the inline parents down to m.
func (m *mux[C]) chain() []handler.Middleware[C] {
	var all []handler.Middleware[C]
	for curr := m; curr != nil; curr = curr.parent {
		all = append(append([]handler.Middleware[C]{}, curr.middlewares...), all...)
		if !curr.inline {
			break
		}
	}
	return all
}

func (m *mux[C]) markRoutes() {
	for curr := m; curr != nil; curr = curr.parent {
		curr.hasRoutes = true
	}
}

// errorEndpoint runs the router's middlewares for unmatched requests so
// they are logged and tagged like any other request.
func (m *mux[C]) errorEndpoint(err error) http.HandlerFunc {
	endpoint := func(C) handler.Response {
		return func(http.ResponseWriter, *http.Request) error {
			return err
		}
	}
	return func(w http.ResponseWriter, r *http.Request) {
		m.serve(handler.Chain(m.middlewares, endpoint))(w, r)
	}
}

// serve adapts a typed handler to http.HandlerFunc.
func (m *mux[C]) serve(fn handler.HandlerFunc[C]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ww := newResponseWriter(w)
		ctx := m.newContext(ww, r, urlParams(r))

		defer func() {
			if p := recover(); p != nil {
				perr := &panicError{value: p, stack: debug.Stack()}
				if ww.Written() {
					m.logger.Error("panic after response written",
						"value", perr.value,
						"stack", string(perr.stack),
						"path", r.URL.Path,
						"method", r.Method,
						"status", ww.Status(),
					)
					return
				}
				m.errorHandler(ctx, perr)
			}
		}()

		resp := fn(ctx)
		if resp == nil {
			m.errorHandler(ctx, ErrNilResponse)
			return
		}

		// Middlewares may have replaced the request (SetValue); render
		// with the context's view of it.
		if err := resp(ww, ctx.Request()); err != nil {
			m.errorHandler(ctx, err)
		}
	}
}

func urlParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) && key != "*" {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	return params
}
