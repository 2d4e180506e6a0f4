package response

import (
	"net/http"

	"github.com/eurodata/site/core/handler"
)

// WithHeaders sets headers before the wrapped response renders.
func WithHeaders(resp handler.Response, headers map[string]string) handler.Response {
	if resp == nil || len(headers) == 0 {
		return resp
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		return resp(w, r)
	}
}

// WithRevalidate marks the response as always revalidated so that
// server-rendered content is fetched again on every navigation.
func WithRevalidate(resp handler.Response) handler.Response {
	return WithHeaders(resp, map[string]string{
		"Cache-Control": "no-cache",
	})
}
