package discovery_test

import (
	"context"
	"errors"
	"testing"
	"time"

	discovery "github.com/JakeFAU/startup-discovery/internal/discovery"
	"github.com/JakeFAU/startup-discovery/internal/publisher/memory"
)

type stubCollector struct {
	name    string
	records []*discovery.Startup
	err     error
	panics  bool
}

func (c *stubCollector) Name() string { return c.name }

func (c *stubCollector) Collect(_ context.Context, _ int) ([]*discovery.Startup, error) {
	if c.panics {
		panic("adapter bug")
	}
	return c.records, c.err
}

func named(name, website, source string) *discovery.Startup {
	return &discovery.Startup{
		Name:           name,
		Website:        website,
		Source:         source,
		IsValidCompany: true,
	}
}

type captureSink struct {
	out   discovery.Output
	calls int
	err   error
}

func (s *captureSink) Save(_ context.Context, out discovery.Output) (string, error) {
	s.calls++
	s.out = out
	return "memory://results", s.err
}

type captureStore struct {
	out   discovery.Output
	calls int
}

func (s *captureStore) SaveRun(_ context.Context, out discovery.Output) error {
	s.calls++
	s.out = out
	return nil
}

func (s *captureStore) Close() error { return nil }

func pipelineConfig() discovery.Config {
	return discovery.Config{
		TargetCount:   150,
		Workers:       1,
		SourceLimit:   10,
		SourceTimeout: time.Second,
	}
}

func razorpayRecord(source string) *discovery.Startup {
	s := named("Razorpay", "https://razorpay.com", source)
	s.Location = "Bangalore, India"
	return s
}

func meeshoRecord(source string) *discovery.Startup {
	s := named("Meesho", "https://meesho.com", source)
	s.Location = "India"
	return s
}

func TestEngineRunEndToEnd(t *testing.T) {
	t.Parallel()

	// Workers is 1 so merge order follows collector order and the first
	// Razorpay occurrence deterministically wins deduplication.
	collectors := []discovery.Collector{
		&stubCollector{name: "yc", records: []*discovery.Startup{razorpayRecord("yc_w15")}},
		&stubCollector{name: "dpiit", records: []*discovery.Startup{
			razorpayRecord("dpiit_api"),
			meeshoRecord("dpiit_api"),
		}},
	}
	cfg := pipelineConfig()
	aggregator := discovery.NewAggregator(collectors, cfg, nil)
	enricher := discovery.NewEnricher(nil, time.Second, nil)
	sink := &captureSink{}
	store := &captureStore{}
	pub := memory.New()

	engine := discovery.NewEngine(cfg, aggregator, enricher, sink, store, pub, "discovery-runs", nil)
	out, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(out.Startups) != 2 {
		t.Fatalf("got %d startups, want 2 after dedup", len(out.Startups))
	}
	if out.Startups[0].Name != "Razorpay" || out.Startups[0].Source != "yc_w15" {
		t.Fatalf("first record = %s from %s", out.Startups[0].Name, out.Startups[0].Source)
	}

	meta := out.Metadata
	if meta.RunID == "" {
		t.Fatal("run id must be set")
	}
	if meta.TotalCount != 2 || meta.TargetCount != 150 {
		t.Fatalf("counts = %d/%d", meta.TotalCount, meta.TargetCount)
	}
	// Razorpay scores high (website, synthesized fintech description,
	// location); Meesho has website and location but no description.
	if meta.HighConfidence != 1 || meta.MediumConfidence != 1 || meta.LowConfidence != 0 {
		t.Fatalf("tiers = %d/%d/%d", meta.HighConfidence, meta.MediumConfidence, meta.LowConfidence)
	}
	wantSources := []string{"dpiit_api", "yc_w15"}
	if len(meta.SourcesUsed) != len(wantSources) {
		t.Fatalf("sources = %v", meta.SourcesUsed)
	}
	for i, src := range wantSources {
		if meta.SourcesUsed[i] != src {
			t.Fatalf("sources = %v, want sorted %v", meta.SourcesUsed, wantSources)
		}
	}

	if sink.calls != 1 {
		t.Fatalf("sink calls = %d", sink.calls)
	}
	if store.calls != 1 || store.out.Metadata.RunID != meta.RunID {
		t.Fatalf("store calls = %d, run id %q", store.calls, store.out.Metadata.RunID)
	}

	events := pub.Events()
	if len(events) != 1 {
		t.Fatalf("published %d events, want 1", len(events))
	}
	if events[0].Topic != "discovery-runs" {
		t.Fatalf("topic = %q", events[0].Topic)
	}
	run := events[0].Run
	if run.RunID != meta.RunID {
		t.Fatalf("event run_id = %q, want %q", run.RunID, meta.RunID)
	}
	if run.TotalCount != 2 || run.HighConfidence != 1 || run.MediumConfidence != 1 {
		t.Fatalf("event counts = %d (%d/%d/%d)", run.TotalCount, run.HighConfidence, run.MediumConfidence, run.LowConfidence)
	}
	if run.ResultLocation != "memory://results" {
		t.Fatalf("event location = %q", run.ResultLocation)
	}
}

func TestEngineRunSinkFailureIsFatal(t *testing.T) {
	t.Parallel()

	cfg := pipelineConfig()
	aggregator := discovery.NewAggregator(nil, cfg, nil)
	enricher := discovery.NewEnricher(nil, time.Second, nil)
	sink := &captureSink{err: errors.New("bucket gone")}

	engine := discovery.NewEngine(cfg, aggregator, enricher, sink, nil, nil, "", nil)
	if _, err := engine.Run(context.Background()); err == nil {
		t.Fatal("expected error from sink failure")
	}
}

func TestEngineRunWithoutStoreOrPublisher(t *testing.T) {
	t.Parallel()

	cfg := pipelineConfig()
	collectors := []discovery.Collector{
		&stubCollector{name: "mca", records: []*discovery.Startup{named("Meesho", "https://meesho.com", "mca_filings")}},
	}
	aggregator := discovery.NewAggregator(collectors, cfg, nil)
	enricher := discovery.NewEnricher(nil, time.Second, nil)
	sink := &captureSink{}

	engine := discovery.NewEngine(cfg, aggregator, enricher, sink, nil, nil, "", nil)
	out, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Metadata.TotalCount != 1 {
		t.Fatalf("total = %d", out.Metadata.TotalCount)
	}
}

func TestEngineRunTruncatesToTarget(t *testing.T) {
	t.Parallel()

	records := []*discovery.Startup{
		named("Razorpay", "https://razorpay.com", "yc_w15"),
		named("Zerodha", "https://zerodha.com", "yc_w15"),
		named("Meesho", "https://meesho.com", "yc_w15"),
	}
	cfg := pipelineConfig()
	cfg.TargetCount = 2
	aggregator := discovery.NewAggregator([]discovery.Collector{&stubCollector{name: "yc", records: records}}, cfg, nil)
	enricher := discovery.NewEnricher(nil, time.Second, nil)
	sink := &captureSink{}

	engine := discovery.NewEngine(cfg, aggregator, enricher, sink, nil, nil, "", nil)
	out, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Startups) != 2 || out.Metadata.TotalCount != 2 {
		t.Fatalf("got %d startups, total %d", len(out.Startups), out.Metadata.TotalCount)
	}
}
