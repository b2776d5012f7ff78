package discovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JakeFAU/startup-discovery/internal/identity"
)

// Aggregator fans collector invocations out over a bounded worker pool and
// merges whatever survives. Every collector is isolated: an error, panic, or
// timeout in one contributes zero records and never disturbs the others.
// Concatenation order depends on completion order and is not deterministic.
type Aggregator struct {
	collectors    []Collector
	workers       int
	sourceLimit   int
	sourceTimeout time.Duration
	logger        *zap.Logger
}

// NewAggregator builds an Aggregator over the given collectors.
func NewAggregator(collectors []Collector, cfg Config, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	timeout := cfg.SourceTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Aggregator{
		collectors:    collectors,
		workers:       workers,
		sourceLimit:   cfg.SourceLimit,
		sourceTimeout: timeout,
		logger:        logger,
	}
}

// Collect runs every collector and returns the merged valid records. The
// returned slice is never nil; a run where every source fails is an empty,
// not an error, result.
func (a *Aggregator) Collect(ctx context.Context) []*Startup {
	var (
		mu     sync.Mutex
		merged = make([]*Startup, 0, len(a.collectors)*a.sourceLimit)
	)

	var g errgroup.Group
	g.SetLimit(a.workers)

	for _, c := range a.collectors {
		g.Go(func() error {
			records, err := a.runCollector(ctx, c)
			if err != nil {
				TotalSourceFailures.Inc()
				a.logger.Error("Source collection failed",
					zap.String("source", c.Name()),
					zap.Error(err),
				)
				return nil
			}
			valid := filterValid(records)
			a.logger.Info("Source collection finished",
				zap.String("source", c.Name()),
				zap.Int("valid", len(valid)),
				zap.Int("filtered", len(records)-len(valid)),
			)
			TotalCollected.Add(float64(len(valid)))

			mu.Lock()
			merged = append(merged, valid...)
			mu.Unlock()
			return nil
		})
	}
	// Errors are handled per collector; Wait only synchronizes.
	_ = g.Wait()
	return merged
}

// runCollector invokes one collector under its own timeout, converting a
// panic into an error so a misbehaving adapter cannot take down the run.
func (a *Aggregator) runCollector(ctx context.Context, c Collector) (records []*Startup, err error) {
	sourceCtx, cancel := context.WithTimeout(ctx, a.sourceTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = fmt.Errorf("collector panic: %v", r)
		}
	}()
	records, err = c.Collect(sourceCtx, a.sourceLimit)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", c.Name(), err)
	}
	return records, nil
}

// filterValid re-applies the validity gate after each adapter returns:
// no invalid record may pass aggregation even if an adapter skipped
// normalization. Identities are recomputed rather than trusted.
func filterValid(records []*Startup) []*Startup {
	out := make([]*Startup, 0, len(records))
	for _, s := range records {
		if s == nil || !s.IsValidCompany {
			continue
		}
		s.ID = identity.New(s.Name, s.Website)
		out = append(out, s)
	}
	return out
}
