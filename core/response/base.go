package response

import (
	"net/http"

	"github.com/eurodata/site/core/handler"
)

// Render executes resp against the context's writer and request. A render
// error becomes a plain 500.
func Render(ctx handler.Context, resp handler.Response) {
	if err := resp(ctx.ResponseWriter(), ctx.Request()); err != nil {
		http.Error(ctx.ResponseWriter(), err.Error(), http.StatusInternalServerError)
	}
}

// String creates a text/plain response with 200 OK status.
func String(content string) handler.Response {
	return StringWithStatus(content, http.StatusOK)
}

// StringWithStatus creates a text/plain response with a custom status code.
func StringWithStatus(content string, status int) handler.Response {
	return bytesWithStatus([]byte(content), "text/plain; charset=utf-8", status)
}

// HTMLWithStatus writes pre-rendered markup with a custom status code.
func HTMLWithStatus(content string, status int) handler.Response {
	return bytesWithStatus([]byte(content), "text/html; charset=utf-8", status)
}

// Status creates an empty response with the given status code.
func Status(code int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if code == 0 {
			code = http.StatusOK
		}
		w.WriteHeader(code)
		return nil
	}
}

// Error propagates err to the router's error handler.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}

func bytesWithStatus(content []byte, contentType string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if len(content) > 0 {
			_, err := w.Write(content)
			return err
		}
		return nil
	}
}
