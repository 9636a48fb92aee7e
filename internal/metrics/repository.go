package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	repositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "soldag",
		Subsystem: "repository",
		Name:      "operations_total",
		Help:      "Count of repository operations.",
	}, []string{"backend", "operation", "status"})
	repositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "soldag",
		Subsystem: "repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"backend", "operation", "status"})
)

// Repository tracks metrics for transaction store operations of one backend.
type Repository struct {
	backend string
}

// NewClickhouseRepository creates a Repository metrics collector for ClickHouse.
func NewClickhouseRepository() *Repository {
	return &Repository{backend: "clickhouse"}
}

// NewPostgresRepository creates a Repository metrics collector for Postgres.
func NewPostgresRepository() *Repository {
	return &Repository{backend: "postgres"}
}

// Observe records duration and status of a repository operation.
func (m Repository) Observe(operation string, err error, started time.Time) {
	backend := m.backend
	if backend == "" {
		backend = "unknown"
	}
	status := statusOf(err)

	repositoryRequestsTotal.WithLabelValues(backend, operation, status).Inc()
	repositoryRequestDuration.WithLabelValues(backend, operation, status).Observe(time.Since(started).Seconds())
}
