// Package metrics holds the Prometheus collectors exported on /metrics.
//
// Collectors are registered on the registerer handed to New, so tests can use a
// private prometheus.NewRegistry and the server can use the default one.
//
// HTTP:
//   - fyyur_http_requests_total{method,route,status}
//   - fyyur_http_request_duration_seconds{method,route}
//   - fyyur_http_requests_in_flight
//   - fyyur_http_rate_limited_total
//
// Persistence:
//   - fyyur_db_transaction_duration_seconds{operation}
//   - fyyur_db_transaction_failures_total{operation,kind}
//
// Listings:
//   - fyyur_listing_events_total{event}
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups every collector the service records into.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	HTTPInFlight    prometheus.Gauge
	HTTPRateLimited prometheus.Counter

	TxDuration *prometheus.HistogramVec
	TxFailures *prometheus.CounterVec

	ListingEvents *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fyyur_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fyyur_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		HTTPInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "fyyur_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		HTTPRateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fyyur_http_rate_limited_total",
				Help: "Form submissions rejected by the rate limiter",
			},
		),
		TxDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fyyur_db_transaction_duration_seconds",
				Help:    "Duration of write transactions in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		TxFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fyyur_db_transaction_failures_total",
				Help: "Write transactions that were rolled back",
			},
			[]string{"operation", "kind"},
		),
		ListingEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fyyur_listing_events_total",
				Help: "Listing events handled, by event name",
			},
			[]string{"event"},
		),
	}
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackInFlight adjusts the in-flight gauge.
func (m *Metrics) TrackInFlight(inc bool) {
	if m == nil {
		return
	}
	if inc {
		m.HTTPInFlight.Inc()
	} else {
		m.HTTPInFlight.Dec()
	}
}

// RecordRateLimited counts a rejected submission.
func (m *Metrics) RecordRateLimited() {
	if m == nil {
		return
	}
	m.HTTPRateLimited.Inc()
}

// RecordTx records a write transaction. failureKind is empty on commit.
func (m *Metrics) RecordTx(operation string, duration time.Duration, failureKind string) {
	if m == nil {
		return
	}
	m.TxDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if failureKind != "" {
		m.TxFailures.WithLabelValues(operation, failureKind).Inc()
	}
}

// RecordListingEvent counts a handled listing event.
func (m *Metrics) RecordListingEvent(event string) {
	if m == nil {
		return
	}
	m.ListingEvents.WithLabelValues(event).Inc()
}
