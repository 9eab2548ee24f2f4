// Package metrics holds the Prometheus collectors of the campaign service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campaign",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campaign",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	requestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "campaign",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "HTTP requests currently being served.",
		},
	)

	cardsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campaign",
			Name:      "cards_rendered_total",
			Help:      "Support cards rendered.",
		},
		[]string{"format", "language"},
	)

	pushSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campaign",
			Name:      "push_sent_total",
			Help:      "Push notifications sent, by result.",
		},
		[]string{"result"},
	)

	recordsLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campaign",
			Name:      "records_logged_total",
			Help:      "Rows appended to the record store, by partition.",
		},
		[]string{"partition"},
	)

	backgroundFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campaign",
			Name:      "background_failures_total",
			Help:      "Background tasks that returned an error.",
		},
		[]string{"task"},
	)
)

// Handler exposes every registered collector
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records one finished HTTP request
func ObserveRequest(method, path string, status int, elapsed time.Duration) {
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	requestDuration.With(labels).Observe(elapsed.Seconds())
	requestTotal.With(labels).Inc()
}

// TrackInFlight increments the in-flight gauge and returns the matching decrement
func TrackInFlight() func() {
	requestsInFlight.Inc()
	return requestsInFlight.Dec
}

// CardRendered counts a rendered card
func CardRendered(format, language string) {
	cardsRendered.WithLabelValues(format, language).Inc()
}

// PushSent counts one push delivery attempt
func PushSent(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	pushSent.WithLabelValues(result).Inc()
}

// RecordLogged counts one appended row
func RecordLogged(partition string) {
	recordsLogged.WithLabelValues(partition).Inc()
}

// BackgroundFailed counts a failed background task
func BackgroundFailed(task string) {
	backgroundFailures.WithLabelValues(task).Inc()
}
