// Package middleware provides the typed middlewares the site is built
// from. Each has a default constructor and an XxxWithConfig variant whose
// config accepts a Skip function.
//
//	r := router.New[*router.Context](
//		router.WithMiddleware(
//			middleware.RequestID[*router.Context](),
//			middleware.Logging[*router.Context](log),
//			middleware.SecurityHeaders[*router.Context](),
//		),
//	)
//
//	r.Route("/{locale}", func(r router.Router[*router.Context]) {
//		r.Use(middleware.LocaleShell[*router.Context](store))
//		r.Use(middleware.QueryProvider[*router.Context]())
//	})
//
// Values set by a middleware are read back with GetRequestID, GetLocale,
// GetTranslator and GetQueryClient, which accept any context.Context so
// templ components can call them with the render context.
package middleware
