package content

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nativebpm/connectors/content/internal/httptransport"
)

// LoggingMiddleware logs every request and response on logger.
func LoggingMiddleware(logger *slog.Logger) func(http.RoundTripper) http.RoundTripper {
	return httptransport.LoggingMiddleware(logger)
}

// ConcurrencyMiddleware is a convenience wrapper that exposes the internal
// concurrency limiter middleware for external packages. It returns a
// Middleware that limits the number of concurrent in-flight HTTP requests.
func ConcurrencyMiddleware(limit int) func(http.RoundTripper) http.RoundTripper {
	return httptransport.ConcurrencyMiddleware(limit)
}

// MetricsMiddleware records request counts, in-flight requests and latency
// on a Prometheus registerer. Passing nil uses the default registerer.
func MetricsMiddleware(reg prometheus.Registerer) func(http.RoundTripper) http.RoundTripper {
	return httptransport.MetricsMiddleware(reg)
}
