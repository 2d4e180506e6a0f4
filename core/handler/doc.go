// Package handler defines the request-processing contracts shared by the
// router, the middleware and the application handlers.
//
// A handler receives a Context and returns a Response. The Response is a
// deferred renderer: nothing is written until the router invokes it, which
// lets middleware decorate headers after the handler has decided what to
// render.
//
//	func home(ctx *router.Context) handler.Response {
//		return response.Templ(view.HomePage())
//	}
//
// Middleware has the shape func(next HandlerFunc[C]) HandlerFunc[C] and is
// composed with Chain.
package handler
