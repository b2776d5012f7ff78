package discovery

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine orchestrates one discovery run: Aggregate, Deduplicate, Enrich,
// Rank, Save. Data flows strictly one direction; every stage consumes the
// previous stage's full output. Only a sink failure is fatal; partial
// source failures degrade the result set but never abort the run.
type Engine struct {
	cfg        Config
	aggregator *Aggregator
	enricher   *Enricher
	sink       Sink
	store      RunStore
	publisher  Publisher
	topic      string
	clock      Clock
	logger     *zap.Logger
}

// NewEngine wires the pipeline stages together. store, publisher, and
// enricher's fetcher are optional collaborators.
func NewEngine(
	cfg Config,
	aggregator *Aggregator,
	enricher *Enricher,
	sink Sink,
	store RunStore,
	publisher Publisher,
	topic string,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:        cfg,
		aggregator: aggregator,
		enricher:   enricher,
		sink:       sink,
		store:      store,
		publisher:  publisher,
		topic:      topic,
		clock:      systemClock{},
		logger:     logger,
	}
}

// Run executes the full pipeline and returns the persisted output.
func (e *Engine) Run(ctx context.Context) (Output, error) {
	runID, err := uuid.NewV7()
	if err != nil {
		return Output{}, fmt.Errorf("generate run id: %w", err)
	}
	started := e.clock.Now()
	logger := e.logger.With(zap.String("run_id", runID.String()))
	logger.Info("Starting startup discovery run",
		zap.Int("target_count", e.cfg.TargetCount),
		zap.Int("workers", e.cfg.Workers),
	)

	startups := e.aggregator.Collect(ctx)
	logger.Info("Aggregation complete", zap.Int("collected", len(startups)))

	before := len(startups)
	startups = Deduplicate(startups)
	logger.Info("Deduplication complete",
		zap.Int("before", before),
		zap.Int("after", len(startups)),
	)

	e.enricher.Enrich(ctx, startups)
	startups = Rank(startups, e.cfg.TargetCount)

	out := Output{
		Metadata: buildMetadata(runID.String(), e.clock.Now(), e.cfg.TargetCount, startups),
		Startups: startups,
	}

	location, err := e.sink.Save(ctx, out)
	if err != nil {
		return Output{}, fmt.Errorf("save results: %w", err)
	}
	logger.Info("Results saved", zap.String("location", location))

	e.recordRun(ctx, logger, out)
	e.publishRun(ctx, logger, out, location)
	e.logSummary(logger, out, time.Since(started))
	return out, nil
}

func (e *Engine) recordRun(ctx context.Context, logger *zap.Logger, out Output) {
	if e.store == nil {
		return
	}
	if err := e.store.SaveRun(ctx, out); err != nil {
		logger.Warn("Failed to persist run to store", zap.Error(err))
	}
}

func (e *Engine) publishRun(ctx context.Context, logger *zap.Logger, out Output, location string) {
	if e.publisher == nil || e.topic == "" {
		return
	}
	if _, err := e.publisher.Publish(ctx, e.topic, out.Metadata.Event(location)); err != nil {
		logger.Warn("Failed to publish run event", zap.Error(err))
	}
}

func (e *Engine) logSummary(logger *zap.Logger, out Output, elapsed time.Duration) {
	counts := make(map[string]int)
	for _, s := range out.Startups {
		counts[s.Source]++
	}
	logger.Info("Discovery run complete",
		zap.Int("total", out.Metadata.TotalCount),
		zap.Int("high_confidence", out.Metadata.HighConfidence),
		zap.Int("medium_confidence", out.Metadata.MediumConfidence),
		zap.Int("low_confidence", out.Metadata.LowConfidence),
		zap.Any("source_breakdown", counts),
		zap.Duration("elapsed", elapsed),
	)
}

func buildMetadata(runID string, generatedAt time.Time, target int, startups []*Startup) Metadata {
	sources := make(map[string]struct{})
	meta := Metadata{
		RunID:       runID,
		GeneratedAt: generatedAt,
		TotalCount:  len(startups),
		TargetCount: target,
	}
	for _, s := range startups {
		sources[s.Source] = struct{}{}
		switch s.Confidence {
		case ConfidenceHigh:
			meta.HighConfidence++
		case ConfidenceMedium:
			meta.MediumConfidence++
		default:
			meta.LowConfidence++
		}
	}
	meta.SourcesUsed = make([]string, 0, len(sources))
	for src := range sources {
		meta.SourcesUsed = append(meta.SourcesUsed, src)
	}
	sort.Strings(meta.SourcesUsed)
	return meta
}
