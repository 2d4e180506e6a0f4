// Package locale defines the closed set of site locales and the path
// helpers that move between them.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported site language. The zero value is not a valid
// locale; use Parse to obtain one from untrusted input.
type Locale string

const (
	ES Locale = "es"
	EN Locale = "en"
)

// Default is the locale served at the site root.
const Default = ES

var all = [...]Locale{ES, EN}

// All returns every supported locale in display order.
func All() []Locale {
	return append([]Locale(nil), all[:]...)
}

// Strings returns All as plain language codes.
func Strings() []string {
	out := make([]string, len(all))
	for i, l := range all {
		out[i] = string(l)
	}
	return out
}

// Parse accepts exactly the codes of supported locales.
func Parse(s string) (Locale, bool) {
	for _, l := range all {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

func (l Locale) String() string {
	return string(l)
}

// Tag returns the BCP 47 tag for l.
func (l Locale) Tag() language.Tag {
	return language.Make(string(l))
}

// Path prefixes p with the locale segment. Path(ES, "/") is "/es" and
// Path(EN, "/crime") is "/en/crime".
func Path(l Locale, p string) string {
	p = strings.TrimSuffix(p, "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "/" + string(l) + p
}

// Strip splits a request path into its locale and the remainder. The
// remainder always starts with "/". ok is false when the first segment is
// not a supported locale.
func Strip(p string) (l Locale, rest string, ok bool) {
	trimmed := strings.TrimPrefix(p, "/")
	first, remainder, _ := strings.Cut(trimmed, "/")
	l, ok = Parse(first)
	if !ok {
		return "", p, false
	}
	return l, "/" + remainder, true
}

// SwitchPath rewrites a path with optional query string so that it points
// at the same page under target. Paths without a locale prefix lead to the
// target's root.
//
//	SwitchPath("/es/economy?year=2024", EN) // "/en/economy?year=2024"
func SwitchPath(current string, target Locale) string {
	p, query, hasQuery := strings.Cut(current, "?")

	rest := "/"
	if _, r, ok := Strip(p); ok {
		rest = r
	}

	out := Path(target, rest)
	if hasQuery && query != "" {
		out += "?" + query
	}
	return out
}
