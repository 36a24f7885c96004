// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	renderCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_render_cycles_total",
		Help: "Total number of dashboard render cycles",
	})
	filterResets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_filter_resets_total",
		Help: "Render cycles in which a dataset change reset the filters",
	})
	emptyResults = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_empty_results_total",
		Help: "Render cycles whose filters matched no rows",
	})
	datasetLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_dataset_loads_total",
		Help: "Dataset loads by source and result",
	}, []string{"source", "result"})
	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_render_duration_seconds",
		Help:    "Duration of dashboard render cycles",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests by route and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// ObserveRender records one render cycle.
func ObserveRender(start time.Time, reset, empty bool) {
	renderCycles.Inc()
	renderDuration.Observe(time.Since(start).Seconds())
	if reset {
		filterResets.Inc()
	}
	if empty {
		emptyResults.Inc()
	}
}

// DatasetLoaded counts a load attempt; source is "sample" or "upload".
func DatasetLoaded(source string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	datasetLoads.WithLabelValues(source, result).Inc()
}

func ObserveHTTP(method, route, status string, d time.Duration) {
	httpDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}
