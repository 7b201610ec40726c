package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CodeNetworkError labels requests that never produced an HTTP status
// (DNS failure, connection refused, cancellation).
const CodeNetworkError = "network_error"

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "console",
			Name:      "client_requests_total",
			Help:      "Backend requests issued, partitioned by operation and status code.",
		},
		[]string{"operation", "code"},
	)

	requestDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "console",
			Name:      "client_request_seconds",
			Help:      "Backend request latency in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13},
		},
	)
)

// Register attaches the console client collectors to the supplied registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		requestsTotal,
		requestDurationSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveRequest records one backend round trip.
func ObserveRequest(operation, code string, duration time.Duration) {
	requestsTotal.WithLabelValues(operation, code).Inc()
	if duration < 0 {
		duration = 0
	}
	requestDurationSeconds.Observe(duration.Seconds())
}
