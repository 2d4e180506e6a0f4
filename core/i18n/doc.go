// Package i18n stores translations and resolves them per language.
//
// Translations live under a language and a namespace. Nested keys are
// flattened with dots, and lookups fall back to the default language and
// then to the key itself:
//
//	tr, err := i18n.New(
//		i18n.WithDefaultLanguage("es"),
//		i18n.WithCatalogFS(locales, "locales"),
//	)
//
//	t := i18n.NewTranslator(tr, "en")
//	t.T("Navigation", "economy")             // "Economy"
//	t.T("Section", "count", i18n.M{"n": 3})  // placeholders use %{n}
//	t.FormatNumber(12345.5)                  // "12,345.5"
//
// Catalogs are TOML files named messages.<lang>.toml whose top-level
// tables are namespaces. Match picks the best supported language for an
// Accept-Language header using golang.org/x/text/language.
//
// An I18n is immutable once New returns and may be shared across
// goroutines.
package i18n
