// Package metrics exposes Prometheus collectors for the indexcheck service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	validationsTotal        *prometheus.CounterVec
	fetchDurationSeconds    *prometheus.HistogramVec
	cacheLookupsTotal       *prometheus.CounterVec
	inFlightFetches         prometheus.Gauge
	httpRequestsTotal       *prometheus.CounterVec
	httpRequestDurationSecs *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		validationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "indexcheck_validations_total",
				Help: "Total number of URL validation results, labeled by status.",
			},
			[]string{"status"},
		)

		fetchDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "indexcheck_fetch_duration_seconds",
				Help:    "Histogram of target fetch latencies, labeled by HTTP code.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 50},
			},
			[]string{"code"},
		)

		cacheLookupsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "indexcheck_cache_lookups_total",
				Help: "Total result cache lookups, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		inFlightFetches = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "indexcheck_in_flight_fetches",
				Help: "Number of target fetches currently in flight.",
			},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSecs = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveValidation increments the per-status validation counter.
func ObserveValidation(status string) {
	if validationsTotal == nil {
		return
	}
	validationsTotal.WithLabelValues(status).Inc()
}

// ObserveFetch records the duration of a completed target fetch.
func ObserveFetch(code int, duration time.Duration) {
	if fetchDurationSeconds == nil {
		return
	}
	fetchDurationSeconds.WithLabelValues(strconv.Itoa(code)).Observe(duration.Seconds())
}

// ObserveCache increments the cache lookup counter for a hit or miss.
func ObserveCache(hit bool) {
	if cacheLookupsTotal == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	cacheLookupsTotal.WithLabelValues(outcome).Inc()
}

// IncInFlightFetches increments the in-flight fetch gauge.
func IncInFlightFetches() {
	if inFlightFetches == nil {
		return
	}
	inFlightFetches.Inc()
}

// DecInFlightFetches decrements the in-flight fetch gauge.
func DecInFlightFetches() {
	if inFlightFetches == nil {
		return
	}
	inFlightFetches.Dec()
}

// ObserveHTTPRequest increments the API request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSecs.WithLabelValues(method, route).Observe(duration.Seconds())
}
