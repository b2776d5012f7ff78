package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JakeFAU/startup-discovery/internal/identity"
)

type stubCollector struct {
	name    string
	records []*Startup
	err     error
	panics  bool
}

func (c *stubCollector) Name() string { return c.name }

func (c *stubCollector) Collect(_ context.Context, _ int) ([]*Startup, error) {
	if c.panics {
		panic("adapter bug")
	}
	return c.records, c.err
}

func testAggregatorConfig() Config {
	return Config{
		TargetCount:   150,
		Workers:       2,
		SourceLimit:   10,
		SourceTimeout: time.Second,
	}
}

func TestCollectIsolatesFailingSources(t *testing.T) {
	t.Parallel()

	collectors := []Collector{
		&stubCollector{name: "yc", records: []*Startup{named("Razorpay", "https://razorpay.com", "yc_w15")}},
		&stubCollector{name: "dpiit", err: errors.New("upstream 503")},
		&stubCollector{name: "tracxn", panics: true},
		&stubCollector{name: "mca", records: []*Startup{named("Meesho", "https://meesho.com", "mca_filings")}},
	}
	a := NewAggregator(collectors, testAggregatorConfig(), nil)

	got := a.Collect(context.Background())
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	seen := map[string]bool{}
	for _, s := range got {
		seen[s.Name] = true
	}
	if !seen["Razorpay"] || !seen["Meesho"] {
		t.Fatalf("missing records: %v", seen)
	}
}

func TestCollectFiltersInvalidRecords(t *testing.T) {
	t.Parallel()

	invalid := named("30 Startups To Watch", "", "inc42_startups")
	invalid.IsValidCompany = false
	collectors := []Collector{
		&stubCollector{name: "inc42", records: []*Startup{
			nil,
			invalid,
			named("Zerodha", "https://zerodha.com", "inc42_features"),
		}},
	}
	a := NewAggregator(collectors, testAggregatorConfig(), nil)

	got := a.Collect(context.Background())
	if len(got) != 1 || got[0].Name != "Zerodha" {
		t.Fatalf("got %+v, want only Zerodha", got)
	}
}

func TestCollectRecomputesIdentities(t *testing.T) {
	t.Parallel()

	s := named("Razorpay", "https://razorpay.com", "yc_w15")
	s.ID = "adapter-made-this-up"
	a := NewAggregator([]Collector{&stubCollector{name: "yc", records: []*Startup{s}}}, testAggregatorConfig(), nil)

	got := a.Collect(context.Background())
	if len(got) != 1 {
		t.Fatalf("got %d records", len(got))
	}
	if want := identity.New("Razorpay", "https://razorpay.com"); got[0].ID != want {
		t.Fatalf("ID = %q, want %q", got[0].ID, want)
	}
}

func TestCollectAllSourcesFailingIsEmptyNotError(t *testing.T) {
	t.Parallel()

	collectors := []Collector{
		&stubCollector{name: "yc", err: errors.New("down")},
		&stubCollector{name: "dpiit", panics: true},
	}
	a := NewAggregator(collectors, testAggregatorConfig(), nil)

	got := a.Collect(context.Background())
	if got == nil {
		t.Fatal("result must be non-nil")
	}
	if len(got) != 0 {
		t.Fatalf("got %d records, want 0", len(got))
	}
}
