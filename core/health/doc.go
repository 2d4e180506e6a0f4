// Package health provides the liveness and readiness handlers mounted outside the locale
// surface.
//
//	r.Get("/healthz", health.Liveness[*router.Context])
//	r.Get("/readyz", health.Readiness[*router.Context](log,
//		factory.Healthcheck("indicators"),
//	))
//
// Dependency checks have the signature func(context.Context) error.
package health
