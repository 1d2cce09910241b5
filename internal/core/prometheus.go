package core

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromMetricsRecorder exports aggregate operation counters and latency
// histograms through a prometheus registerer, for deployments scraped by a
// metrics collector rather than reading expvar.
type PromMetricsRecorder struct {
	results   *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewPromMetricsRecorder constructs a recorder and registers its collectors
// with reg. Registration failure (e.g. duplicate collectors) panics, matching
// prometheus MustRegister semantics; construct once per process.
func NewPromMetricsRecorder(reg prometheus.Registerer, namespace string) *PromMetricsRecorder {
	if namespace == "" {
		namespace = "genomecore"
	}
	rec := &PromMetricsRecorder{
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gto",
			Name:      "operations_total",
			Help:      "Aggregate operations by operation name and outcome.",
		}, []string{"operation", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gto",
			Name:      "operation_duration_seconds",
			Help:      "Aggregate operation latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(rec.results, rec.durations)
	return rec
}

// Observe records an aggregate operation outcome.
func (r *PromMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.results.WithLabelValues(operation, status).Inc()
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
}
