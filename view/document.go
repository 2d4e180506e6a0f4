package view

import (
	"github.com/a-h/templ"

	"github.com/eurodata/site/theme"
)

// Document wraps body in the full HTML document: metadata, the inlined
// theme, the client config blob and, when withHeader is set, the site
// header.
func Document(p Page, withHeader bool, body templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw("<!doctype html><html")
		h.attr("lang", p.Locale.String())
		h.raw("><head><meta charset=\"utf-8\">",
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			"<title>")
		h.text(p.T.T("Metadata", "title"))
		h.raw("</title><meta")
		h.attr("name", "description")
		h.attr("content", p.T.T("Metadata", "description"))
		h.raw("><style>", theme.Default().CSS(), documentCSS, "</style>")
		h.render(templ.JSONScript(ClientConfigID, p.Client))
		h.raw("</head><body>")
		if withHeader {
			h.render(Header(p))
		}
		h.render(body)
		h.raw("</body></html>")
	})
}

const documentCSS = `body{margin:0;font-family:system-ui,sans-serif;color:var(--color-brand-neutral);background:var(--color-surface)}` +
	`header{display:flex;align-items:center;justify-content:space-between;padding:1rem 1.5rem;border-bottom:1px solid var(--color-surface-border)}` +
	`nav{display:flex;gap:1.5rem;align-items:center}nav a{color:inherit;text-decoration:none}nav a[aria-current]{font-weight:600;color:var(--color-brand-primary)}` +
	`.locale-switcher{display:flex;gap:.5rem;align-items:center}.locale-switcher form{margin:0}` +
	`main{padding:2rem}table{border-collapse:collapse}td,th{padding:.25rem .75rem;border-bottom:1px solid var(--color-surface-border)}` +
	`.notice{background:var(--color-surface-muted);border-left:4px solid var(--color-brand-accent);padding:.75rem 1rem}`
