package collector

import "testing"

func TestYCToRaw(t *testing.T) {
	t.Parallel()

	c := NewYCCollector(nil, nil, nil)

	t.Run("india company accepted", func(t *testing.T) {
		t.Parallel()
		raw, ok := c.toRaw(ycCompany{
			Name:       "Razorpay",
			Website:    "razorpay.com",
			OneLiner:   "Payments for businesses",
			Batch:      "W15",
			Locations:  []ycLoc{{City: "Bangalore", Country: "India"}},
			Industries: []string{"Fintech"},
		})
		if !ok {
			t.Fatal("expected acceptance")
		}
		if raw.Website != "https://razorpay.com" {
			t.Fatalf("website = %q", raw.Website)
		}
		if raw.Location != "Bangalore, India" {
			t.Fatalf("location = %q", raw.Location)
		}
		if raw.Industry != "Fintech" {
			t.Fatalf("industry = %q", raw.Industry)
		}
		if raw.Source != "yc_w15" {
			t.Fatalf("source = %q", raw.Source)
		}
	})

	t.Run("summer batch maps to seed", func(t *testing.T) {
		t.Parallel()
		raw, ok := c.toRaw(ycCompany{
			Name:      "Meesho",
			Batch:     "S16",
			Locations: []ycLoc{{Country: "india"}},
		})
		if !ok {
			t.Fatal("expected acceptance")
		}
		if raw.FundingStage != "seed" {
			t.Fatalf("stage = %q, want seed", raw.FundingStage)
		}
	})

	t.Run("winter batch maps to series_a", func(t *testing.T) {
		t.Parallel()
		raw, ok := c.toRaw(ycCompany{
			Name:      "Groww",
			Batch:     "W21",
			Locations: []ycLoc{{Country: "India"}},
		})
		if !ok {
			t.Fatal("expected acceptance")
		}
		if raw.FundingStage != "series_a" {
			t.Fatalf("stage = %q, want series_a", raw.FundingStage)
		}
	})

	t.Run("non india filtered", func(t *testing.T) {
		t.Parallel()
		if _, ok := c.toRaw(ycCompany{
			Name:      "Stripe",
			Batch:     "S10",
			Locations: []ycLoc{{City: "San Francisco", Country: "USA"}},
		}); ok {
			t.Fatal("expected rejection")
		}
	})

	t.Run("description falls back to one liner", func(t *testing.T) {
		t.Parallel()
		raw, _ := c.toRaw(ycCompany{
			Name:      "Zepto",
			OneLiner:  "Ten minute grocery delivery",
			Batch:     "W21",
			Locations: []ycLoc{{Country: "India"}},
		})
		if raw.Description != "Ten minute grocery delivery" {
			t.Fatalf("description = %q", raw.Description)
		}
	})
}
