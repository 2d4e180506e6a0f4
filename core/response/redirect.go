package response

import (
	"net/http"

	"github.com/eurodata/site/core/handler"
)

// Redirect creates a 302 Found redirect.
func Redirect(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusFound)
}

// RedirectSeeOther creates a 303 See Other redirect.
func RedirectSeeOther(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusSeeOther)
}

// RedirectWithStatus creates a redirect with a 3xx status; anything else
// falls back to 302.
func RedirectWithStatus(url string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if status < 300 || status >= 400 {
			status = http.StatusFound
		}
		http.Redirect(w, r, url, status)
		return nil
	}
}
