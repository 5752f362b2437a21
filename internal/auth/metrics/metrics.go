package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for auth operations.
type Metrics struct {
	LoginAttempts prometheus.Counter
	LoginFailures prometheus.Counter
	LoginDuration prometheus.Histogram
}

// New registers and returns auth metrics collectors.
func New() *Metrics {
	return &Metrics{
		LoginAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "presales_login_attempts_total",
			Help: "Total number of sign-in attempts",
		}),
		LoginFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "presales_login_failures_total",
			Help: "Total number of rejected sign-in attempts",
		}),
		LoginDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "presales_login_duration_seconds",
			Help:    "Duration of sign-in handling in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementLoginAttempts() {
	if m != nil {
		m.LoginAttempts.Inc()
	}
}

func (m *Metrics) IncrementLoginFailures() {
	if m != nil {
		m.LoginFailures.Inc()
	}
}

func (m *Metrics) ObserveLoginDuration(start time.Time) {
	if m != nil {
		m.LoginDuration.Observe(time.Since(start).Seconds())
	}
}
