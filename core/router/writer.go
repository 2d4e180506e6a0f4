package router

import "net/http"

// responseWriter records whether and with which status a response was written.
type responseWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

func (w *responseWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Written reports whether WriteHeader has been called.
func (w *responseWriter) Written() bool {
	return w.written
}

// Status returns the written status code, or 0.
func (w *responseWriter) Status() int {
	return w.status
}

func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// StatusWriter is implemented by the router's response writer. Middleware
// uses it to read the status written by a response.
type StatusWriter interface {
	Written() bool
	Status() int
}
