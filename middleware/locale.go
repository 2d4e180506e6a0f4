package middleware

import (
	"context"
	"log/slog"

	"github.com/eurodata/site/core/handler"
	"github.com/eurodata/site/core/i18n"
	"github.com/eurodata/site/core/logger"
	"github.com/eurodata/site/core/response"
	"github.com/eurodata/site/locale"
)

type (
	localeContextKey     struct{}
	translatorContextKey struct{}
)

// LocaleShellConfig configures the locale gate.
type LocaleShellConfig struct {
	Skip func(ctx handler.Context) bool
	// I18n is required.
	I18n *i18n.I18n
	// Param is the route parameter holding the locale (default: "locale").
	Param string
}

// LocaleShell gates routes on the {locale} parameter.
func LocaleShell[C handler.Context](store *i18n.I18n) handler.Middleware[C] {
	return LocaleShellWithConfig[C](LocaleShellConfig{I18n: store})
}

// LocaleShellWithConfig rejects requests whose locale parameter is not a
// supported locale with response.ErrNotFound. Accepted requests get the
// locale and a bound translator in their context, and their responses
// carry Content-Language and Cache-Control: no-cache so that switching
// locale always re-renders on the server.
func LocaleShellWithConfig[C handler.Context](cfg LocaleShellConfig) handler.Middleware[C] {
	if cfg.I18n == nil {
		panic("locale middleware: i18n instance is required")
	}
	if cfg.Param == "" {
		cfg.Param = "locale"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			l, ok := locale.Parse(ctx.Param(cfg.Param))
			if !ok {
				return response.Error(response.ErrNotFound)
			}

			ctx.SetValue(localeContextKey{}, l)
			ctx.SetValue(translatorContextKey{}, i18n.NewTranslator(cfg.I18n, l.String()))

			return response.WithHeaders(response.WithRevalidate(next(ctx)), map[string]string{
				"Content-Language": l.String(),
			})
		}
	}
}

// GetLocale returns the locale accepted by LocaleShell.
func GetLocale(ctx context.Context) (locale.Locale, bool) {
	l, ok := ctx.Value(localeContextKey{}).(locale.Locale)
	return l, ok
}

// GetTranslator returns the translator bound by LocaleShell.
func GetTranslator(ctx context.Context) (*i18n.Translator, bool) {
	t, ok := ctx.Value(translatorContextKey{}).(*i18n.Translator)
	return t, ok
}

// LocaleExtractor adds the request locale to log records. Use it with
// logger.WithContextExtractors.
func LocaleExtractor(ctx context.Context) (slog.Attr, bool) {
	l, ok := GetLocale(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.Locale(l.String()), true
}
