package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	indexerPollTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "soldag",
		Subsystem: "indexer",
		Name:      "poll_total",
		Help:      "Count of poll loop ticks.",
	}, []string{"status"})

	indexerPollDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "soldag",
		Subsystem: "indexer",
		Name:      "poll_duration_seconds",
		Help:      "Duration of a poll loop tick, excluding the wait for the tick itself.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	indexerLatestHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "soldag",
		Subsystem: "indexer",
		Name:      "latest_height",
		Help:      "Latest slot reported by the node.",
	})

	indexerGapsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "soldag",
		Subsystem: "indexer",
		Name:      "gaps_total",
		Help:      "Count of detected slot gaps.",
	})

	indexerGapSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "soldag",
		Subsystem: "indexer",
		Name:      "gap_size",
		Help:      "Distance between the previous and the current slot when a gap is detected.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
	})

	indexerCatchUpTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "soldag",
		Subsystem: "indexer",
		Name:      "catch_up_total",
		Help:      "Count of processed catch-up requests.",
	}, []string{"status"})

	indexerCatchUpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "soldag",
		Subsystem: "indexer",
		Name:      "catch_up_duration_seconds",
		Help:      "Duration of a catch-up request.",
		Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
	}, []string{"status"})

	indexerCatchUpHeights = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "soldag",
		Subsystem: "indexer",
		Name:      "catch_up_heights_total",
		Help:      "Count of heights forwarded to the store queue by catch-up requests.",
	})

	indexerStoreJobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "soldag",
		Subsystem: "indexer",
		Name:      "store_jobs_total",
		Help:      "Count of store jobs handled by the sink.",
	}, []string{"status"})

	indexerStoreJobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "soldag",
		Subsystem: "indexer",
		Name:      "store_job_duration_seconds",
		Help:      "Duration of decoding and storing one block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	indexerStoredTransactions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "soldag",
		Subsystem: "indexer",
		Name:      "stored_transactions_total",
		Help:      "Count of transactions inserted by the sink.",
	})

	indexerQueueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "soldag",
		Subsystem: "indexer",
		Name:      "queue_depth",
		Help:      "Pending jobs per pipeline queue.",
	}, []string{"queue"})
)

// Indexer tracks metrics for the ingestion pipeline.
type Indexer struct{}

// NewIndexer constructs an Indexer metrics collector.
func NewIndexer() *Indexer {
	return &Indexer{}
}

// ObservePoll records one poll tick and the height it observed.
func (m Indexer) ObservePoll(err error, height uint64, started time.Time) {
	status := statusOf(err)
	indexerPollTotal.WithLabelValues(status).Inc()
	indexerPollDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if height > 0 {
		indexerLatestHeight.Set(float64(height))
	}
}

// ObserveGap records a detected gap between two heights.
func (m Indexer) ObserveGap(from, to uint64) {
	indexerGapsTotal.Inc()
	if to > from {
		indexerGapSize.Observe(float64(to - from))
	}
}

// ObserveCatchUp records a finished catch-up request and how many heights it forwarded.
func (m Indexer) ObserveCatchUp(err error, heights uint64, started time.Time) {
	status := statusOf(err)
	indexerCatchUpTotal.WithLabelValues(status).Inc()
	indexerCatchUpDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	indexerCatchUpHeights.Add(float64(heights))
}

// ObserveStoreJob records a store job and how many transactions were inserted, including partial progress.
func (m Indexer) ObserveStoreJob(err error, transactions int, started time.Time) {
	status := statusOf(err)
	indexerStoreJobsTotal.WithLabelValues(status).Inc()
	indexerStoreJobDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if transactions > 0 {
		indexerStoredTransactions.Add(float64(transactions))
	}
}

// SetQueueDepth publishes the current length of a pipeline queue.
func (m Indexer) SetQueueDepth(queue string, depth int) {
	if queue == "" {
		queue = "unknown"
	}
	indexerQueueDepth.WithLabelValues(queue).Set(float64(depth))
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
