package router

import (
	"context"
	"net/http"
	"time"
)

// Context is the default handler.Context implementation. It delegates to
// the request's context, so values stored with SetValue reach templ
// components rendered with r.Context().
type Context struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
}

func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

func (c *Context) Err() error {
	return c.r.Context().Err()
}

func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}

// SetValue stores a value in the request's context.
func (c *Context) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}

func (c *Context) Request() *http.Request {
	return c.r
}

func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the path parameter captured by the route pattern.
func (c *Context) Param(key string) string {
	if c.params == nil {
		return ""
	}
	return c.params[key]
}

// NewContext creates the default context. It is exported for tests and
// for custom factories that embed *Context.
func NewContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{w: w, r: r, params: params}
}
