package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/eurodata/site/core/handler"
	"github.com/eurodata/site/core/response"
)

// unmatchedRoute labels requests that matched no route, so arbitrary
// paths cannot grow label cardinality.
const unmatchedRoute = "unmatched"

// MetricsConfig configures the Prometheus middleware.
type MetricsConfig struct {
	Skip func(ctx handler.Context) bool
	// Registerer defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
	// Namespace prefixes metric names.
	Namespace string
}

// Metrics records request counts and durations on the default registry.
func Metrics[C handler.Context]() handler.Middleware[C] {
	return MetricsWithConfig[C](MetricsConfig{})
}

// MetricsWithConfig registers http_requests_total and
// http_request_duration_seconds, labelled by method, route pattern and
// status code. It panics if the collectors are already registered.
func MetricsWithConfig[C handler.Context](cfg MetricsConfig) handler.Middleware[C] {
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(cfg.Registerer)

	labels := []string{"method", "path", "status_code"}
	requests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, labels)
	duration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, labels)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
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

				route := unmatchedRoute
				if rctx := chi.RouteContext(r.Context()); rctx != nil && status != http.StatusNotFound {
					if p := rctx.RoutePattern(); p != "" {
						route = p
					}
				}

				values := []string{r.Method, route, strconv.Itoa(status)}
				requests.WithLabelValues(values...).Inc()
				duration.WithLabelValues(values...).Observe(time.Since(start).Seconds())
				return err
			}
		}
	}
}
