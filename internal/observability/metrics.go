// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the client.
type Metrics struct {
	// Transport metrics
	RequestLatency *prometheus.HistogramVec
	RequestErrors  *prometheus.CounterVec

	// Session metrics
	SessionExpiries prometheus.Counter
	Logins          prometheus.Counter

	// Poller metrics
	PollTicks  *prometheus.CounterVec
	PollErrors *prometheus.CounterVec

	// History metrics
	HistorySize prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "fraudwatch_client"
	}

	return &Metrics{
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "request_latency_seconds",
			Help:      "API request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		RequestErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "request_errors_total",
			Help:      "Total number of failed API requests by fault kind",
		}, []string{"endpoint", "kind"}),

		SessionExpiries: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "expiries_total",
			Help:      "Total number of session-expired broadcasts",
		}),
		Logins: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "logins_total",
			Help:      "Total number of successful logins",
		}),

		PollTicks: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "poller",
			Name:      "ticks_total",
			Help:      "Total number of poll ticks by target",
		}, []string{"target"}),
		PollErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "poller",
			Name:      "tick_errors_total",
			Help:      "Total number of failed poll ticks by target",
		}, []string{"target"}),

		HistorySize: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "entries",
			Help:      "Current number of entries in the prediction history ring",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordRequest records one API round trip. kind is "" on success.
func RecordRequest(endpoint string, seconds float64, kind string) {
	DefaultMetrics.RequestLatency.WithLabelValues(endpoint).Observe(seconds)
	if kind != "" {
		DefaultMetrics.RequestErrors.WithLabelValues(endpoint, kind).Inc()
	}
}

// RecordSessionExpired increments the session expiry counter.
func RecordSessionExpired() {
	DefaultMetrics.SessionExpiries.Inc()
}

// RecordLogin increments the successful login counter.
func RecordLogin() {
	DefaultMetrics.Logins.Inc()
}

// RecordPollTick records one poll tick and whether it failed.
func RecordPollTick(target string, err error) {
	DefaultMetrics.PollTicks.WithLabelValues(target).Inc()
	if err != nil {
		DefaultMetrics.PollErrors.WithLabelValues(target).Inc()
	}
}

// UpdateHistorySize updates the history ring size gauge.
func UpdateHistorySize(n int) {
	DefaultMetrics.HistorySize.Set(float64(n))
}
