package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/eurodata/site/core/handler"
	"github.com/eurodata/site/core/logger"
	"github.com/eurodata/site/core/response"
)

// DefaultCheckTimeout bounds each dependency check.
const DefaultCheckTimeout = 3 * time.Second

// Readiness runs every check in order and answers "ready", or 503 on the
// first failure.
func Readiness[C handler.Context](log *slog.Logger, checks ...func(context.Context) error) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		for _, check := range checks {
			start := time.Now()
			checkCtx, cancel := context.WithTimeout(ctx, DefaultCheckTimeout)
			err := check(checkCtx)
			cancel()
			if err != nil {
				log.WarnContext(ctx, "readiness check failed",
					logger.Component("health"),
					logger.Duration(time.Since(start)),
					logger.Error(err),
				)
				return response.Error(response.ErrServiceUnavailable.WithError(err))
			}
		}
		return response.String("ready")
	}
}
