// Package router wires typed handlers (handler.HandlerFunc) into a chi
// routing tree.
//
// chi does the path matching; this package builds the request context,
// runs middleware chains, renders the deferred handler.Response and turns
// routing failures, render errors and panics into calls to a single error
// handler:
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler(errorPage),
//		router.WithHTTPMiddleware[*router.Context](chimw.StripSlashes),
//	)
//	r.Use(middleware.RequestID[*router.Context]())
//	r.Get("/", rootRedirect)
//	r.Route("/{locale}", func(r router.Router[*router.Context]) {
//		r.Get("/", home)
//	})
//
// Unmatched paths produce ErrNotFound and wrong methods ErrMethodNotAllowed,
// both of which report their status through a StatusCode method.
package router
