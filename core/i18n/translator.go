package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Translator binds an I18n to one language. Handlers get one per request
// from the locale middleware and pass it down to components.
type Translator struct {
	i18n     *I18n
	language string
	printer  *message.Printer
}

// NewTranslator creates a Translator for language. An empty or unknown
// language uses the default one.
func NewTranslator(i18n *I18n, lang string) *Translator {
	if i18n == nil {
		panic("localization service is not provided")
	}
	if lang == "" || !i18n.Has(lang) {
		lang = i18n.DefaultLanguage()
	}
	return &Translator{
		i18n:     i18n,
		language: lang,
		printer:  message.NewPrinter(language.Make(lang)),
	}
}

// T translates key in namespace.
func (t *Translator) T(namespace, key string, placeholders ...M) string {
	return t.i18n.T(t.language, namespace, key, placeholders...)
}

// Tn translates key in namespace with a plural form chosen by n.
func (t *Translator) Tn(namespace, key string, n int, placeholders ...M) string {
	return t.i18n.Tn(t.language, namespace, key, n, placeholders...)
}

// Language returns the translator's language.
func (t *Translator) Language() string {
	return t.language
}

// FormatNumber formats n with the language's separators and at most two
// fraction digits: 12345.5 is "12,345.5" in en and "12.345,5" in es.
func (t *Translator) FormatNumber(n float64) string {
	return t.printer.Sprint(number.Decimal(n, number.MaxFractionDigits(2)))
}
