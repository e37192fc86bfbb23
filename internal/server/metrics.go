package server

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instruments for the archive API.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec   // labels: route, method, status
	RequestDuration *prometheus.HistogramVec // labels: route
}

func newMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climdex",
			Name:      "http_requests_total",
			Help:      "API requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "climdex",
			Name:      "http_request_duration_seconds",
			Help:      "API request duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"route"}),
	}
}

// NewMetrics creates and registers the API metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.RequestsTotal, m.RequestDuration)
	return m
}

// NewMetricsForTesting creates unregistered metrics, avoiding duplicate
// registration panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
