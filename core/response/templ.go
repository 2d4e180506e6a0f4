package response

import (
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"github.com/eurodata/site/core/handler"
)

// Templ renders a templ component with 200 OK.
// The component receives the request context, so request-scoped values
// such as the active locale and translator are visible to it.
func Templ(component templ.Component) handler.Response {
	return TemplWithStatus(component, http.StatusOK)
}

// TemplWithStatus renders a templ component with a custom status code.
func TemplWithStatus(component templ.Component, status int) handler.Response {
	if component == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)

		if err := component.Render(r.Context(), w); err != nil {
			return fmt.Errorf("templ component render error: %w", err)
		}
		return nil
	}
}
