package view

import (
	"github.com/a-h/templ"

	"github.com/eurodata/site/core/i18n"
	"github.com/eurodata/site/locale"
)

// Indicator is one row of the indicators table.
type Indicator struct {
	ID      string  `json:"id"`
	Section string  `json:"section"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Unit    string  `json:"unit"`
	Period  string  `json:"period"`
	Source  string  `json:"source"`
}

// HomePage renders the localized landing content.
func HomePage(p Page) templ.Component {
	return Document(p, true, component(func(h *html) {
		h.raw(`<main class="home"><h1>`)
		h.text(p.T.T("HomePage", "title"))
		h.raw(`</h1><p class="subtitle">`)
		h.text(p.T.T("HomePage", "subtitle"))
		h.raw("</p><p>")
		h.text(p.T.T("HomePage", "description"))
		h.raw("</p></main>")
	}))
}

// SectionData is the content of a section page.
type SectionData struct {
	Key        string
	Indicators []Indicator
	// Unavailable is set when the data backend could not be reached.
	Unavailable bool
}

// SectionPage renders a section heading and its indicators.
func SectionPage(p Page, d SectionData) templ.Component {
	return Document(p, true, component(func(h *html) {
		h.raw("<main")
		h.attr("class", "section section-"+d.Key)
		h.raw("><h1>")
		h.text(p.T.T("Navigation", d.Key))
		h.raw("</h1>")

		switch {
		case d.Unavailable:
			h.raw(`<p class="notice" role="status">`)
			h.text(p.T.T("Section", "unavailable"))
			h.raw("</p>")
		case len(d.Indicators) == 0:
			h.raw(`<p class="empty">`)
			h.text(p.T.T("Section", "empty"))
			h.raw("</p>")
		default:
			h.raw(`<p class="count">`)
			h.text(p.T.Tn("Section", "count", len(d.Indicators)))
			h.raw("</p>")
			indicatorTable(h, p.T, d.Indicators)
		}
		h.raw("</main>")
	}))
}

func indicatorTable(h *html, t *i18n.Translator, rows []Indicator) {
	h.raw("<table><thead><tr>")
	for _, col := range []string{"name", "value", "period", "source"} {
		h.raw("<th>")
		h.text(t.T("Section", col))
		h.raw("</th>")
	}
	h.raw("</tr></thead><tbody>")
	for _, row := range rows {
		h.raw("<tr><td>")
		h.text(row.Name)
		h.raw(`</td><td class="value">`)
		h.text(t.FormatNumber(row.Value))
		if row.Unit != "" {
			h.raw(" ")
			h.text(row.Unit)
		}
		h.raw("</td><td>")
		h.text(row.Period)
		h.raw("</td><td>")
		h.text(row.Source)
		h.raw("</td></tr>")
	}
	h.raw("</tbody></table>")
}

// NotFoundPage renders the localized not-found page. withHeader is false
// when the request never reached a valid locale.
func NotFoundPage(p Page, withHeader bool) templ.Component {
	return Document(p, withHeader, component(func(h *html) {
		h.raw(`<main class="not-found"><h1>`)
		h.text(p.T.T("NotFound", "title"))
		h.raw("</h1><p>")
		h.text(p.T.T("NotFound", "message"))
		h.raw("</p><a")
		h.url("href", locale.Path(p.Locale, "/"))
		h.raw(">")
		h.text(p.T.T("NotFound", "back"))
		h.raw("</a></main>")
	}))
}
