package view

import (
	"net/url"
	"sort"

	"github.com/a-h/templ"

	"github.com/eurodata/site/locale"
	"github.com/eurodata/site/navigation"
)

// Header renders the navigation and the locale switcher.
func Header(p Page) templ.Component {
	return component(func(h *html) {
		h.raw("<header>")
		h.render(Navigation(p))
		h.render(LocaleSwitcher(p))
		h.raw("</header>")
	})
}

// Navigation renders one link per section, in order, under the active
// locale.
func Navigation(p Page) templ.Component {
	return component(func(h *html) {
		rest := p.rest()
		h.raw("<nav>")
		for _, s := range navigation.Sections() {
			h.raw("<a")
			h.url("href", locale.Path(p.Locale, s.Path))
			if s.Active(rest) {
				h.attr("aria-current", "page")
			}
			h.raw(">")
			h.text(p.T.T("Navigation", s.Key))
			h.raw("</a>")
		}
		h.raw("</nav>")
	})
}

// LocaleSwitcher renders one control per locale. The active locale is a
// disabled button; every other locale is a GET form targeting the same
// page under that locale, with the query string carried as hidden
// fields since browsers drop the query of a GET form action.
func LocaleSwitcher(p Page) templ.Component {
	return component(func(h *html) {
		h.raw(`<div class="locale-switcher"><span>`)
		h.text(p.T.T("LocaleSwitcher", "label"))
		h.raw(":</span>")

		for _, l := range locale.All() {
			label := p.T.T("LocaleSwitcher", l.String())
			if l == p.Locale {
				h.raw(`<button type="button" disabled aria-pressed="true"`)
				h.attr("lang", l.String())
				h.raw(">")
				h.text(label)
				h.raw("</button>")
				continue
			}

			target, err := url.Parse(locale.SwitchPath(p.requestURI(), l))
			if err != nil {
				target = &url.URL{Path: locale.Path(l, "/")}
			}
			h.raw(`<form method="get"`)
			h.url("action", target.Path)
			h.raw(">")
			query := target.Query()
			keys := make([]string, 0, len(query))
			for k := range query {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				for _, v := range query[k] {
					h.raw(`<input type="hidden"`)
					h.attr("name", k)
					h.attr("value", v)
					h.raw(">")
				}
			}
			h.raw(`<button type="submit"`)
			h.attr("lang", l.String())
			h.raw(">")
			h.text(label)
			h.raw("</button></form>")
		}
		h.raw("</div>")
	})
}
