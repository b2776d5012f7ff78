package discovery

import (
	"context"
	"time"
)

// Collector produces zero or more normalized records from one source. A
// collector may fail, may be slow, and may return static last-resort data;
// the Aggregator isolates it either way. Collect must be safe to call again
// with the same arguments.
type Collector interface {
	Name() string
	Collect(ctx context.Context, limit int) ([]*Startup, error)
}

// PageFetcher retrieves the plain-text extract of a web page. Used by the
// Enricher to backfill missing descriptions from company homepages.
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Sink persists the final output and returns a locator for it.
type Sink interface {
	Save(ctx context.Context, out Output) (string, error)
}

// RunStore records run results for later inspection.
type RunStore interface {
	SaveRun(ctx context.Context, out Output) error
	Close() error
}

// Publisher pushes run-completion events to Pub/Sub (or similar).
type Publisher interface {
	Publish(ctx context.Context, topic string, event RunEvent) (string, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// systemClock implements Clock with time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// SystemClock returns the wall clock used outside of tests.
func SystemClock() Clock {
	return systemClock{}
}
