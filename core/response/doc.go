// Package response builds handler.Response values: templ pages, plain
// text, redirects and status-carrying errors.
//
//	func root(ctx *router.Context) handler.Response {
//		return response.Redirect("/es")
//	}
//
//	func page(ctx *router.Context) handler.Response {
//		return response.WithRevalidate(response.Templ(view.HomePage()))
//	}
//
// Returning response.Error(response.ErrNotFound) hands the error to the
// router's error handler, which reads the status through StatusCode.
package response
