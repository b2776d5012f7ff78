// Package sink persists discovery run output. The file sink writes the
// ranked result set as pretty-printed JSON; the GCS sink uploads the same
// document to a bucket for downstream consumers.
package sink
