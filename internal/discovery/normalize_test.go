package discovery

import (
	"testing"
	"time"

	"github.com/JakeFAU/startup-discovery/internal/identity"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestNormalizeCleansAndDefaults(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 0).UTC()
	n := NewNormalizer(fixedClock{t: now}, nil)

	s, ok := n.Normalize(RawCandidate{
		Name:        "  Razorpay  ",
		Website:     " https://razorpay.com ",
		Description: "Payments &amp;   settlements",
		Source:      "yc_w15",
	})
	if !ok {
		t.Fatal("expected acceptance")
	}
	if s.Name != "Razorpay" {
		t.Fatalf("name = %q", s.Name)
	}
	if s.Website != "https://razorpay.com" {
		t.Fatalf("website = %q", s.Website)
	}
	if s.Description != "Payments & settlements" {
		t.Fatalf("description = %q", s.Description)
	}
	if s.Location != "India" {
		t.Fatalf("location = %q, want default India", s.Location)
	}
	if s.Confidence != ConfidenceMedium {
		t.Fatalf("confidence = %s, want default medium", s.Confidence)
	}
	if !s.DiscoveredAt.Equal(now) {
		t.Fatalf("discoveredAt = %v, want clock time %v", s.DiscoveredAt, now)
	}
	if s.ID != identity.New("Razorpay", "https://razorpay.com") {
		t.Fatalf("id = %q, want content-addressed identity", s.ID)
	}
	if !s.IsValidCompany || s.ValidationReason != ReasonPassed {
		t.Fatalf("validity = %v / %q", s.IsValidCompany, s.ValidationReason)
	}
}

func TestNormalizePreservesSuppliedFields(t *testing.T) {
	t.Parallel()

	supplied := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	n := NewNormalizer(fixedClock{t: time.Unix(1700000000, 0)}, nil)

	s, ok := n.Normalize(RawCandidate{
		Name:         "Meesho",
		Location:     "Bangalore, India",
		Confidence:   ConfidenceHigh,
		DiscoveredAt: supplied,
		Source:       "dpiit_api",
	})
	if !ok {
		t.Fatal("expected acceptance")
	}
	if s.Location != "Bangalore, India" {
		t.Fatalf("location = %q", s.Location)
	}
	if s.Confidence != ConfidenceHigh {
		t.Fatalf("confidence = %s", s.Confidence)
	}
	if !s.DiscoveredAt.Equal(supplied) {
		t.Fatalf("discoveredAt = %v, want supplied %v", s.DiscoveredAt, supplied)
	}
}

func TestNormalizeRejectsInvalidCandidates(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil, nil)
	tests := []struct {
		name string
		raw  RawCandidate
	}{
		{"empty name", RawCandidate{Source: "yc_s24"}},
		{"article title", RawCandidate{Name: "30 Startups To Watch", Source: "inc42_startups"}},
		{"placeholder", RawCandidate{Name: "Stealth Startup", Source: "linkedin_search"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if s, ok := n.Normalize(tt.raw); ok || s != nil {
				t.Fatalf("Normalize(%q) = %+v, want rejection", tt.raw.Name, s)
			}
		})
	}
}
