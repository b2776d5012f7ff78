package collector

import (
	"context"
	"strings"
	"testing"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
)

func TestMCASampleFilings(t *testing.T) {
	t.Parallel()

	raws := mcaSampleFilings(12)
	if len(raws) != 12 {
		t.Fatalf("got %d records, want 12", len(raws))
	}
	seen := make(map[string]struct{})
	for _, raw := range raws {
		if raw.Name == "" {
			t.Fatal("empty name in sample filings")
		}
		if _, dup := seen[raw.Name]; dup {
			t.Fatalf("duplicate name %q", raw.Name)
		}
		seen[raw.Name] = struct{}{}
		if raw.Source != "mca_filings" {
			t.Fatalf("source = %q", raw.Source)
		}
		if raw.Confidence != discovery.ConfidenceHigh {
			t.Fatalf("confidence = %s", raw.Confidence)
		}
		if !strings.HasSuffix(raw.Location, ", India") {
			t.Fatalf("location = %q", raw.Location)
		}
	}
	// Past the template table the names pick up a counter suffix.
	if !strings.HasSuffix(raws[10].Name, " 11") {
		t.Fatalf("wrapped name = %q", raws[10].Name)
	}
}

func TestMCACollectUnboundedUsesSampleTable(t *testing.T) {
	t.Parallel()

	// A canceled context skips the live filing search entirely.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewMCACollector(NewAPIClient(testClientConfig(), nil), discovery.NewNormalizer(nil, nil), nil, nil)
	got, err := c.Collect(ctx, 0)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != mcaSampleBatch {
		t.Fatalf("unbounded collect = %d records, want %d", len(got), mcaSampleBatch)
	}
}

func TestTracxnSampleData(t *testing.T) {
	t.Parallel()

	raws := tracxnSampleData(11)
	if len(raws) != 11 {
		t.Fatalf("got %d records, want 11", len(raws))
	}
	for _, raw := range raws {
		if raw.Source != "tracxn_emerging" {
			t.Fatalf("source = %q", raw.Source)
		}
		if raw.Confidence != discovery.ConfidenceMedium {
			t.Fatalf("confidence = %s", raw.Confidence)
		}
		if raw.Industry == "" {
			t.Fatalf("missing industry for %q", raw.Name)
		}
	}
	if raws[10].Name == raws[0].Name {
		t.Fatal("wrapped entry must carry a distinguishing suffix")
	}
}

func TestTier2Generated(t *testing.T) {
	t.Parallel()

	raws := tier2Generated(0)
	if len(raws) != len(tier2Cities)*tier2PerCity {
		t.Fatalf("got %d records, want %d", len(raws), len(tier2Cities)*tier2PerCity)
	}
	for _, raw := range raws {
		if !strings.HasPrefix(raw.Source, "tier2_") {
			t.Fatalf("source = %q", raw.Source)
		}
		if raw.Confidence != discovery.ConfidenceMedium {
			t.Fatalf("confidence = %s", raw.Confidence)
		}
		if !strings.HasSuffix(raw.Location, ", India") {
			t.Fatalf("location = %q", raw.Location)
		}
	}

	limited := tier2Generated(7)
	if len(limited) != 7 {
		t.Fatalf("limited batch = %d records, want 7", len(limited))
	}
}

func TestDPIITKnownStartups(t *testing.T) {
	t.Parallel()

	raws := dpiitKnownStartups()
	if len(raws) != 15 {
		t.Fatalf("got %d records, want 15", len(raws))
	}
	names := make(map[string]struct{})
	for _, raw := range raws {
		if raw.Source != "dpiit_api" || raw.Confidence != discovery.ConfidenceHigh {
			t.Fatalf("record %q: source %q confidence %s", raw.Name, raw.Source, raw.Confidence)
		}
		if raw.Description == "" {
			t.Fatalf("record %q missing description", raw.Name)
		}
		names[raw.Name] = struct{}{}
	}
	if len(names) != len(raws) {
		t.Fatal("duplicate names in known startups")
	}
}
