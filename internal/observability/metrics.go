// Package observability provides Prometheus metrics for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vidtube_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// StorageUploads counts blob storage uploads by kind and outcome.
	StorageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_storage_uploads_total",
		Help: "Total number of blob storage uploads",
	}, []string{"kind", "outcome"})

	// StorageUploadLatency records blob storage upload latency by kind.
	StorageUploadLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vidtube_storage_upload_latency_seconds",
		Help:    "Blob storage upload latency in seconds",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	}, []string{"kind"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// ObserveUpload records outcome and latency of a blob storage upload.
func ObserveUpload(kind string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StorageUploads.WithLabelValues(kind, outcome).Inc()
	StorageUploadLatency.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
