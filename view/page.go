// Package view renders the site's HTML. Components are templ components
// that take their request data explicitly through Page.
package view

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/eurodata/site/core/i18n"
	"github.com/eurodata/site/locale"
	"github.com/eurodata/site/query"
	"github.com/eurodata/site/supabase"
)

// ClientConfigID is the id of the JSON script carrying ClientConfig.
const ClientConfigID = "eurodata-config"

// ClientConfig is embedded in every page for browser scripts.
type ClientConfig struct {
	Locale   string                  `json:"locale"`
	Supabase *supabase.BrowserConfig `json:"supabase,omitempty"`
	Query    query.Options           `json:"query"`
}

// Page carries the request-scoped data every component needs.
type Page struct {
	Locale locale.Locale
	T      *i18n.Translator
	// URL is the request URL; the locale switcher keeps its path and query.
	URL    *url.URL
	Client ClientConfig
}

// rest returns the locale-relative part of the request path.
func (p Page) rest() string {
	if p.URL == nil {
		return "/"
	}
	if _, rest, ok := locale.Strip(p.URL.Path); ok {
		return rest
	}
	return "/"
}

func (p Page) requestURI() string {
	if p.URL == nil {
		return locale.Path(p.Locale, "/")
	}
	return p.URL.RequestURI()
}

// html accumulates the first write error so components read linearly.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *html) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// url writes a URL attribute through templ's sanitizer, which replaces
// unsafe schemes such as javascript: with a harmless placeholder.
func (h *html) url(name, value string) {
	h.attr(name, string(templ.URL(value)))
}

func (h *html) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}
