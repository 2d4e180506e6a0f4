// Package logger builds slog loggers and provides attribute helpers.
//
// Development loggers write coloured text through tint; staging and
// production loggers write JSON:
//
//	log := logger.New(
//		logger.ForEnv(cfg.Env, cfg.Name),
//		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
//		logger.WithContextExtractors(requestIDFromContext),
//	)
//
//	log.InfoContext(ctx, "request handled",
//		logger.Method(r.Method),
//		logger.Path(r.URL.Path),
//		logger.StatusCode(status),
//		logger.Latency(time.Since(start)),
//	)
//
// Context extractors add request-scoped attributes such as the request id
// or active locale to every record logged with a *Context method.
package logger
