// Package metrics exposes the Prometheus collectors of the front-end.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Catalog request outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeCache = "cache"
	OutcomeError = "error"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "teleflix",
		Name:      "http_requests_total",
		Help:      "Page and widget requests by route pattern and status code.",
	}, []string{"route", "code"})

	CatalogRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "teleflix",
		Name:      "catalog_requests_total",
		Help:      "Catalog API calls by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	CatalogLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "teleflix",
		Name:      "catalog_request_duration_seconds",
		Help:      "Latency of catalog API calls that reached the network.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
