package discovery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalCollected tracks normalized records accepted from all sources.
	TotalCollected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discovery_records_collected_total",
		Help: "The total number of valid records collected across sources.",
	})
	// TotalRejected tracks raw candidates rejected by validation.
	TotalRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discovery_records_rejected_total",
		Help: "The total number of raw candidates rejected by validation.",
	})
	// TotalSourceFailures tracks collector invocations that errored or timed out.
	TotalSourceFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discovery_source_failures_total",
		Help: "The total number of collector runs that failed.",
	})
	// TotalDuplicatesDropped tracks records removed by either dedup phase.
	TotalDuplicatesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discovery_duplicates_dropped_total",
		Help: "The total number of duplicate records dropped.",
	})
	// TotalEnrichmentFetches tracks homepage fetches attempted by the enricher.
	TotalEnrichmentFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discovery_enrichment_fetches_total",
		Help: "The total number of homepage fetches attempted during enrichment.",
	})
)
