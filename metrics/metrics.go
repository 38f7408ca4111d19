// Package metrics provides Prometheus metrics collection for the catalog API.
// It covers HTTP request performance plus data-quality counters from the
// OMIM parsing layer:
//   - http_request_total / http_request_duration_seconds / http_request_in_flight
//   - catalog_records_parsed: gauge per source file
//   - catalog_parse_duration_seconds: histogram of full parse runs
//   - catalog_mim_repairs_total / catalog_mim_unrepairable_total
//   - catalog_nomenclature_conflicts_total
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen in last ~5 minutes)",
		},
	)

	RecordsParsed = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_records_parsed",
			Help: "Records produced by the last parse of each OMIM source file",
		},
		[]string{"file"},
	)

	ParseDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_parse_duration_seconds",
			Help:    "Duration of full catalog parse runs",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	MimNumbersRepaired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_mim_repairs_total",
			Help: "Malformed MIM numbers repaired by heuristics",
		},
	)

	MimNumbersUnrepairable = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_mim_unrepairable_total",
			Help: "Malformed MIM numbers dropped after failed repair",
		},
	)

	NomenclatureConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_nomenclature_conflicts_total",
			Help: "MIM numbers dropped from the merged nomenclature map due to conflicting symbols",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(RecordsParsed)
	prometheus.MustRegister(ParseDuration)
	prometheus.MustRegister(MimNumbersRepaired)
	prometheus.MustRegister(MimNumbersUnrepairable)
	prometheus.MustRegister(NomenclatureConflicts)
}
