// Package discovery implements the startup discovery pipeline: concurrent
// collection from heterogeneous sources, validation and normalization of raw
// candidates, two-phase deduplication, enrichment, and confidence ranking of
// the final result set.
package discovery
