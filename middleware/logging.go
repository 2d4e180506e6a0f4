package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/eurodata/site/core/handler"
	"github.com/eurodata/site/core/logger"
	"github.com/eurodata/site/core/response"
)

// LoggingConfig configures request logging.
type LoggingConfig struct {
	Skip func(ctx handler.Context) bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// LogLevel for successful requests (default: info).
	LogLevel slog.Level
	// SlowRequestThreshold logs slower requests at warn (default: 5s).
	SlowRequestThreshold time.Duration
	// Component defaults to "http".
	Component string
}

// Logging logs one line per request with the default configuration.
func Logging[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig logs method, path, status, size and latency once the
// response is rendered. When the response returns an error the logged
// status is the one the error handler will send.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			req := ctx.Request()

			resp := next(ctx)
			if resp == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
				err := resp(rec, r)

				status := rec.status
				if err != nil && !rec.wroteHeader {
					status = response.AsHTTPError(err).Status
				}
				duration := time.Since(start)

				attrs := []slog.Attr{
					logger.Component(cfg.Component),
					logger.Method(req.Method),
					logger.Path(req.URL.Path),
					logger.StatusCode(status),
					logger.BytesOut(rec.size),
					logger.Latency(duration),
					logger.ClientIP(req.RemoteAddr),
					logger.UserAgent(req.UserAgent()),
				}

				level := cfg.LogLevel
				switch {
				case status >= 500:
					level = slog.LevelError
					attrs = append(attrs, logger.Error(err))
				case status >= 400:
					level = slog.LevelWarn
				case duration > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow_request", true))
				}

				cfg.Logger.LogAttrs(r.Context(), level, "HTTP request completed", attrs...)
				return err
			}
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	size        int64
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)
	return n, err
}

func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
