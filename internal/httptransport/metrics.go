package httptransport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsMiddleware returns a Middleware that records request totals,
// in-flight requests and request duration with Prometheus. Collectors are
// registered on reg once; passing nil uses the default registerer. Failed
// round trips are counted with status "error".
func MetricsMiddleware(reg prometheus.Registerer) func(http.RoundTripper) http.RoundTripper {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	requests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "content",
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests sent.",
	}, []string{"method", "status"})

	inflight := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "content",
		Subsystem: "client",
		Name:      "in_flight_requests",
		Help:      "Number of HTTP requests currently in flight.",
	})

	duration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "content",
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	return func(next http.RoundTripper) http.RoundTripper {
		return &metricsRoundTripper{
			next:     next,
			requests: requests,
			inflight: inflight,
			duration: duration,
		}
	}
}

type metricsRoundTripper struct {
	next     http.RoundTripper
	requests *prometheus.CounterVec
	inflight prometheus.Gauge
	duration *prometheus.HistogramVec
}

func (m *metricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.inflight.Inc()
	defer m.inflight.Dec()

	start := time.Now()
	resp, err := m.next.RoundTrip(req)
	m.duration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	m.requests.WithLabelValues(req.Method, status).Inc()

	return resp, err
}
