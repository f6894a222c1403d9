// Package metrics holds the Prometheus collectors for ingestion runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the registry every collector here is registered on.
var Registry = prometheus.NewRegistry()

var (
	RecordsRead = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoingest_records_read_total",
		Help: "Source records read, by format",
	}, []string{"format"})
	RecordsSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoingest_records_skipped_total",
		Help: "Source features ignored (unnamed, filtered or unsupported), by format",
	}, []string{"format"})
	WaysMerged = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoingest_ways_merged_total",
		Help: "Named ways produced by merging source records",
	})
	PointsBeforeSimplify = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoingest_points_before_simplify_total",
		Help: "Way and boundary points entering the simplifier",
	})
	PointsAfterSimplify = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoingest_points_after_simplify_total",
		Help: "Way and boundary points kept by the simplifier",
	})
	DegenerateDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoingest_degenerate_dropped_total",
		Help: "Degenerate features dropped, by geometry kind",
	}, []string{"kind"})
	LocationsAccepted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoingest_locations_accepted_total",
		Help: "Locations kept by de-duplication",
	})
	LocationsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoingest_locations_rejected_total",
		Help: "Locations dropped by de-duplication",
	})
	CacheReads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoingest_cache_reads_total",
		Help: "Cache file reads, by kind",
	}, []string{"kind"})
	CacheWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoingest_cache_writes_total",
		Help: "Cache file writes, by kind",
	}, []string{"kind"})
	CacheFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoingest_cache_failures_total",
		Help: "Cache reads or writes that failed, by kind and operation",
	}, []string{"kind", "op"})
	IngestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geoingest_ingest_duration_seconds",
		Help:    "Wall time of one ingestion stage",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
	}, []string{"stage"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		RecordsRead,
		RecordsSkipped,
		WaysMerged,
		PointsBeforeSimplify,
		PointsAfterSimplify,
		DegenerateDropped,
		LocationsAccepted,
		LocationsRejected,
		CacheReads,
		CacheWrites,
		CacheFailures,
		IngestDuration,
	)
}

// Handler serves Registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
