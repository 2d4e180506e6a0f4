package i18n

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is used when no default language is configured.
const DefaultLang = "en"

var (
	ErrEmptyLanguage  = errors.New("language cannot be empty")
	ErrEmptyNamespace = errors.New("namespace cannot be empty")
)

// I18n holds translations for a fixed set of languages. It is immutable
// after New returns and safe for concurrent use.
type I18n struct {
	// Flattened "lang:namespace:key.path" -> translation.
	translations map[string]string

	defaultLang string
	languages   []string
	matcher     language.Matcher

	missingKeyHandler func(lang, namespace, key string)
}

// Option configures an I18n during construction.
type Option func(*I18n) error

// New builds an I18n from options.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if i.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}
	i.languages = withDefaultFirst(i.defaultLang, i.languages)

	tags := make([]language.Tag, 0, len(i.languages))
	for _, lang := range i.languages {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", lang, err)
		}
		tags = append(tags, tag)
	}
	i.matcher = language.NewMatcher(tags)

	return i, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithLanguages sets the supported languages. Their order is kept, with
// the default language moved to the front when it is missing from it.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		for _, lang := range langs {
			if lang == "" {
				return ErrEmptyLanguage
			}
		}
		i.languages = append(i.languages[:0:0], langs...)
		return nil
	}
}

// WithMissingKeyHandler registers a callback for keys missing in both the
// requested and the default language.
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// WithTranslations loads a possibly nested map for one language and
// namespace. Nested keys are joined with dots.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		i.addTranslations(lang, namespace, translations)
		return nil
	}
}

func (i *I18n) addTranslations(lang, namespace string, translations map[string]any) {
	for key, value := range flattenTranslations(translations, "") {
		i.translations[buildKey(lang, namespace, key)] = value
	}
}

// T returns the translation of key, falling back to the default language
// and finally to the key itself. Placeholders use the %{name} syntax.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	if translation, ok := i.lookup(lang, namespace, key); ok {
		return replacePlaceholdersWithMerge(translation, placeholders...)
	}

	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}
	return key
}

// Tn picks key.one for n == 1 or -1 and key.other otherwise, and exposes
// n as the %{count} placeholder.
func (i *I18n) Tn(lang, namespace, key string, n int, placeholders ...M) string {
	form := PluralOther
	if n == 1 || n == -1 {
		form = PluralOne
	}

	translation, ok := i.lookup(lang, namespace, key+"."+form)
	if !ok {
		translation, ok = i.lookup(lang, namespace, key+"."+PluralOther)
	}
	if !ok {
		if i.missingKeyHandler != nil {
			i.missingKeyHandler(lang, namespace, key)
		}
		return key
	}

	merged := M{"count": n}
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return ReplacePlaceholders(translation, merged)
}

func (i *I18n) lookup(lang, namespace, key string) (string, bool) {
	if translation, ok := i.translations[buildKey(lang, namespace, key)]; ok {
		return translation, true
	}
	if lang != i.defaultLang {
		if translation, ok := i.translations[buildKey(i.defaultLang, namespace, key)]; ok {
			return translation, true
		}
	}
	return "", false
}

// Has reports whether lang is one of the supported languages.
func (i *I18n) Has(lang string) bool {
	for _, l := range i.languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Languages returns the supported languages, default first.
func (i *I18n) Languages() []string {
	return i.languages
}

// DefaultLanguage returns the fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

// Match returns the supported language that best fits an Accept-Language
// header. An empty or unparsable header yields the default language.
func (i *I18n) Match(acceptLanguage string) string {
	if len(acceptLanguage) > maxAcceptLanguageLength {
		acceptLanguage = acceptLanguage[:maxAcceptLanguageLength]
	}
	tags, _, err := language.ParseAcceptLanguage(strings.TrimSpace(acceptLanguage))
	if err != nil || len(tags) == 0 {
		return i.defaultLang
	}
	_, idx, confidence := i.matcher.Match(tags...)
	if confidence == language.No {
		return i.defaultLang
	}
	return i.languages[idx]
}

func withDefaultFirst(def string, langs []string) []string {
	out := make([]string, 0, len(langs)+1)
	out = append(out, def)
	seen := map[string]bool{def: true}
	for _, l := range langs {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}

func replacePlaceholdersWithMerge(template string, placeholders ...M) string {
	if len(placeholders) == 0 {
		return template
	}

	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return ReplacePlaceholders(template, merged)
}
