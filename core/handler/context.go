package handler

import (
	"context"
	"net/http"
)

// Context is the request context handed to every handler and middleware.
// Values stored with SetValue are visible through Value for the rest of
// the request and to anything rendered with Request().Context().
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
