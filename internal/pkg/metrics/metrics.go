// Package metrics exposes Prometheus instrumentation for the gateway and the HTTP API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation outcomes.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeStoreFault   = "store_fault"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBOperationsTotal   *prometheus.CounterVec
	DBOperationDuration *prometheus.HistogramVec
	DBDocumentsAffected *prometheus.CounterVec
}

// New registers the collectors on reg under namespace.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		DBOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_operations_total",
				Help:      "Total number of gateway operations by outcome",
			},
			[]string{"operation", "collection", "outcome"},
		),
		DBOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_operation_duration_seconds",
				Help:      "Round trip time of operations sent to the store",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "collection"},
		),
		DBDocumentsAffected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_documents_affected_total",
				Help:      "Documents inserted, returned, modified or deleted",
			},
			[]string{"operation", "collection"},
		),
	}
}

// RecordHTTPRequest records a served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDBOperation counts a gateway operation and its outcome. Operations
// rejected before reaching the store carry a zero duration and are not
// observed in the latency histogram.
func (m *Metrics) RecordDBOperation(operation, collection, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.DBOperationsTotal.WithLabelValues(operation, collection, outcome).Inc()
	if duration > 0 {
		m.DBOperationDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
	}
}

// AddDocuments adds n to the affected documents counter.
func (m *Metrics) AddDocuments(operation, collection string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.DBDocumentsAffected.WithLabelValues(operation, collection).Add(float64(n))
}
