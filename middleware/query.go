package middleware

import (
	"context"

	"github.com/eurodata/site/core/handler"
	"github.com/eurodata/site/query"
)

type queryClientContextKey struct{}

// QueryProviderConfig configures the query provider.
type QueryProviderConfig struct {
	Skip    func(ctx handler.Context) bool
	Options query.Options
}

// QueryProvider attaches a fresh query client with default options.
func QueryProvider[C handler.Context]() handler.Middleware[C] {
	return QueryProviderWithConfig[C](QueryProviderConfig{Options: query.DefaultOptions()})
}

// QueryProviderWithConfig builds one query.Client per request and stores
// it in the request context. Clients are never shared between requests.
func QueryProviderWithConfig[C handler.Context](cfg QueryProviderConfig) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			ctx.SetValue(queryClientContextKey{}, query.New(cfg.Options))
			return next(ctx)
		}
	}
}

// GetQueryClient returns the request's query client.
func GetQueryClient(ctx context.Context) (*query.Client, bool) {
	c, ok := ctx.Value(queryClientContextKey{}).(*query.Client)
	return c, ok && c != nil
}
