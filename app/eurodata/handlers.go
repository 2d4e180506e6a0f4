package eurodata

import (
	"context"
	"fmt"
	"net/http"

	"github.com/supabase-community/postgrest-go"

	"github.com/eurodata/site/core/handler"
	"github.com/eurodata/site/core/i18n"
	"github.com/eurodata/site/core/logger"
	"github.com/eurodata/site/core/response"
	"github.com/eurodata/site/core/router"
	"github.com/eurodata/site/locale"
	"github.com/eurodata/site/middleware"
	"github.com/eurodata/site/navigation"
	"github.com/eurodata/site/query"
	"github.com/eurodata/site/view"
)

const indicatorsTable = "indicators"

const indicatorColumns = "id,section,name,value,unit,period,source"

func (a *App) rootRedirect(ctx *router.Context) handler.Response {
	return response.Redirect(locale.Path(locale.Default, "/"))
}

func (a *App) home(ctx *router.Context) handler.Response {
	return response.Templ(view.HomePage(a.page(ctx)))
}

// section renders a navigation section. A data backend failure still
// renders the page, with a notice in place of the indicators.
func (a *App) section(ctx *router.Context) handler.Response {
	s, ok := navigation.Lookup(ctx.Param("section"))
	if !ok {
		return response.Error(response.ErrNotFound)
	}

	data := view.SectionData{Key: s.Key}
	rows, err := a.indicators(ctx, s.Key)
	if err != nil {
		a.logger.WarnContext(ctx, "indicators unavailable",
			logger.Component("section"),
			logger.Table(indicatorsTable),
			logger.Key("section", s.Key),
			logger.Error(err),
		)
		data.Unavailable = true
	} else {
		data.Indicators = rows
	}

	return response.Templ(view.SectionPage(a.page(ctx), data))
}

func (a *App) notFound(ctx *router.Context) handler.Response {
	return response.Error(response.ErrNotFound)
}

// indicators loads the rows of one section through the request's query
// client. The comparator lists every indicator.
func (a *App) indicators(ctx context.Context, section string) ([]view.Indicator, error) {
	client, _ := middleware.GetQueryClient(ctx)
	return query.Fetch(ctx, client, indicatorsTable+":"+section, func(ctx context.Context) ([]view.Indicator, error) {
		backend := a.supabase.Browser()
		q := backend.From(indicatorsTable).Select(indicatorColumns, "", false)
		if section != navigation.Comparator {
			q = q.Eq("section", section)
		}
		q = q.Order("name", &postgrest.OrderOpts{Ascending: true})

		var rows []view.Indicator
		if err := backend.Execute(ctx, q, &rows); err != nil {
			return nil, fmt.Errorf("fetch %s for %s: %w", indicatorsTable, section, err)
		}
		return rows, nil
	})
}

// page collects the request data the views need. Outside the locale
// shell the locale is negotiated from Accept-Language.
func (a *App) page(ctx *router.Context) view.Page {
	l, ok := middleware.GetLocale(ctx)
	if !ok {
		if l, ok = locale.Parse(a.i18n.Match(ctx.Request().Header.Get("Accept-Language"))); !ok {
			l = locale.Default
		}
	}
	t, ok := middleware.GetTranslator(ctx)
	if !ok {
		t = i18n.NewTranslator(a.i18n, l.String())
	}

	opts := a.config.Query.Options()
	if client, ok := middleware.GetQueryClient(ctx); ok {
		opts = client.Options()
	}
	browser := a.supabase.Browser().BrowserConfig()

	return view.Page{
		Locale: l,
		T:      t,
		URL:    ctx.Request().URL,
		Client: view.ClientConfig{
			Locale:   l.String(),
			Supabase: &browser,
			Query:    opts,
		},
	}
}

// handleError renders not-found errors as the localized not-found page:
// inside the locale shell with the site header, elsewhere as a bare page
// in the visitor's preferred language. Other errors are plain text and
// server errors are logged.
func (a *App) handleError(ctx *router.Context, err error) {
	if sw, ok := ctx.ResponseWriter().(router.StatusWriter); ok && sw.Written() {
		return
	}

	httpErr := response.AsHTTPError(err)
	if httpErr.Status >= http.StatusInternalServerError {
		a.logger.ErrorContext(ctx, "request failed",
			logger.Method(ctx.Request().Method),
			logger.Path(ctx.Request().URL.Path),
			logger.StatusCode(httpErr.Status),
			logger.Error(err),
		)
	}

	if httpErr.Status != http.StatusNotFound {
		response.ErrorHandler(ctx, err)
		return
	}

	_, inShell := middleware.GetTranslator(ctx)
	response.Render(ctx, response.TemplWithStatus(view.NotFoundPage(a.page(ctx), inShell), http.StatusNotFound))
}
