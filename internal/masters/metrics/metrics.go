package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for master-list operations.
type Metrics struct {
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

// New registers and returns masters metrics collectors.
func New() *Metrics {
	return &Metrics{
		Operations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "presales_masters_operations_total",
			Help: "Total number of master-list operations by category and operation",
		}, []string{"category", "operation"}),
		OperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "presales_masters_operation_duration_seconds",
			Help:    "Duration of master-list operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"category", "operation"}),
	}
}

func (m *Metrics) IncrementOperations(category, operation string) {
	if m != nil {
		m.Operations.WithLabelValues(category, operation).Inc()
	}
}

func (m *Metrics) ObserveOperationDuration(category, operation string, start time.Time) {
	if m != nil {
		m.OperationDuration.WithLabelValues(category, operation).Observe(time.Since(start).Seconds())
	}
}
