package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "soldag",
		Subsystem: "http_server",
		Name:      "requests_total",
		Help:      "Count of REST requests.",
	}, []string{"route", "code"})
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "soldag",
		Subsystem: "http_server",
		Name:      "request_duration_seconds",
		Help:      "Duration of REST requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "code"})
)

// HTTPServer tracks metrics for REST handlers.
type HTTPServer struct{}

// NewHTTPServer constructs an HTTPServer metrics collector.
func NewHTTPServer() *HTTPServer {
	return &HTTPServer{}
}

// ObserveRequest records a served request by route and status code.
func (m HTTPServer) ObserveRequest(route string, code int, started time.Time) {
	c := strconv.Itoa(code)
	httpRequestsTotal.WithLabelValues(route, c).Inc()
	httpRequestDuration.WithLabelValues(route, c).Observe(time.Since(started).Seconds())
}
