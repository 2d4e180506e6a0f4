// Package locales embeds the message catalogs served by the site.
package locales

import (
	"embed"

	"github.com/eurodata/site/core/i18n"
)

//go:embed messages.*.toml
var FS embed.FS

// Load builds the catalog store for every embedded language, with
// defaultLang as the fallback.
func Load(defaultLang string, opts ...i18n.Option) (*i18n.I18n, error) {
	return i18n.New(append([]i18n.Option{
		i18n.WithDefaultLanguage(defaultLang),
		i18n.WithCatalogFS(FS, "."),
	}, opts...)...)
}
