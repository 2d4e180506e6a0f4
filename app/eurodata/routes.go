package eurodata

import (
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eurodata/site/core/health"
	"github.com/eurodata/site/core/router"
	"github.com/eurodata/site/middleware"
)

type Router = router.Router[*router.Context]

// routes builds the public surface. Infrastructure endpoints live outside
// the locale shell; everything under /{locale} is gated on a supported
// locale and gets its own query client.
func (a *App) routes() Router {
	security := middleware.BalancedSecurity
	if a.config.IsDevelopment() {
		security = middleware.DevelopmentSecurity
	}

	r := router.New[*router.Context](
		router.WithLogger[*router.Context](a.logger),
		router.WithErrorHandler[*router.Context](a.handleError),
		router.WithHTTPMiddleware[*router.Context](chimw.RealIP, chimw.StripSlashes),
		router.WithMiddleware(
			middleware.RequestID[*router.Context](),
			middleware.Logging[*router.Context](a.logger),
			middleware.MetricsWithConfig[*router.Context](middleware.MetricsConfig{Registerer: a.registry}),
			middleware.SecurityHeadersWithConfig[*router.Context](security),
		),
	)

	r.Get("/", a.rootRedirect)
	r.Get("/healthz", health.Liveness[*router.Context])
	r.Get("/readyz", health.Readiness[*router.Context](a.logger,
		a.supabase.Healthcheck(indicatorsTable),
	))
	r.Mount("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	r.Route("/{locale}", func(r Router) {
		r.Use(
			middleware.LocaleShell[*router.Context](a.i18n),
			middleware.QueryProviderWithConfig[*router.Context](middleware.QueryProviderConfig{
				Options: a.config.Query.Options(),
			}),
		)
		r.Get("/", a.home)
		r.Get("/{section}", a.section)
		r.Handle("/*", a.notFound)
	})

	return r
}
