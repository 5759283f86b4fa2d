package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collection counters. Labelled values are kept low-cardinality: results are
// "success"/"error" (plus "partial" for runs), stages are the three collector
// stages.
var (
	CollectRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dining_collect_runs_total",
		Help: "Collection runs by result.",
	}, []string{"result"})

	StageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dining_stage_failures_total",
		Help: "Collector stage failures by stage.",
	}, []string{"stage"})

	PagesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dining_pages_fetched_total",
		Help: "Upstream page fetches by result.",
	}, []string{"result"})

	ItemsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dining_items_resolved_total",
		Help: "Menu item lookups by result.",
	}, []string{"result"})

	LastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dining_last_success_timestamp_seconds",
		Help: "Unix time of the last fully successful collection run.",
	})
)

// Handler serves the Prometheus exposition endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
