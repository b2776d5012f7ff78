package discovery

import (
	"testing"

	"github.com/JakeFAU/startup-discovery/internal/identity"
)

func named(name, website, source string) *Startup {
	return &Startup{
		Name:           name,
		Website:        website,
		Source:         source,
		IsValidCompany: true,
	}
}

func TestDeduplicateCollapsesIdenticalIdentity(t *testing.T) {
	t.Parallel()

	in := []*Startup{
		named("Razorpay", "https://razorpay.com", "yc_w15"),
		named("razorpay", "HTTPS://RAZORPAY.COM", "dpiit_api"),
		named("Zerodha", "https://zerodha.com", "tracxn_fintech"),
	}
	out := Deduplicate(in)
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	if out[0].Source != "yc_w15" {
		t.Fatalf("first occurrence must win, got source %s", out[0].Source)
	}
}

func TestDeduplicateIgnoresAdapterSuppliedIDs(t *testing.T) {
	t.Parallel()

	a := named("Razorpay", "https://razorpay.com", "yc_w15")
	a.ID = "bogus-one"
	b := named("Razorpay", "https://razorpay.com", "dpiit_api")
	b.ID = "bogus-two"

	out := Deduplicate([]*Startup{a, b})
	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	want := identity.New("Razorpay", "https://razorpay.com")
	if out[0].ID != want {
		t.Fatalf("ID = %s, want recomputed %s", out[0].ID, want)
	}
}

func TestDeduplicateSubstringNames(t *testing.T) {
	t.Parallel()

	in := []*Startup{
		named("Razorpay", "https://razorpay.com", "yc_w15"),
		named("Razorpay Software", "https://razorpay.io", "mca_filings"),
		named("Zetapay", "https://zetapay.in", "tier2_indore"),
		named("Zeta", "https://zeta.tech", "tracxn_fintech"),
	}
	out := Deduplicate(in)

	// "Razorpay Software" contains "razorpay" so it collapses; "Zeta" is
	// contained by "zetapay" but short enough (<= 5 normalized chars)
	// that it survives.
	if len(out) != 3 {
		t.Fatalf("got %d records, want 3", len(out))
	}
	names := []string{out[0].Name, out[1].Name, out[2].Name}
	want := []string{"Razorpay", "Zetapay", "Zeta"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestDeduplicateDropsLongerSuperstring(t *testing.T) {
	t.Parallel()

	// A later candidate whose longer name contains an accepted short one is
	// dropped even when the websites differ. Greedy, order dependent.
	in := []*Startup{
		named("Zeta", "https://zeta.tech", "tracxn_fintech"),
		named("Zetapay", "https://zetapay.in", "tier2_indore"),
	}
	out := Deduplicate(in)
	if len(out) != 1 || out[0].Name != "Zeta" {
		t.Fatalf("got %+v, want only Zeta", out)
	}
}

func TestDeduplicateIsIdempotent(t *testing.T) {
	t.Parallel()

	in := []*Startup{
		named("Razorpay", "https://razorpay.com", "yc_w15"),
		named("Razorpay Software", "https://razorpay.io", "mca_filings"),
		named("Meesho", "https://meesho.com", "dpiit_api"),
	}
	once := Deduplicate(in)
	twice := Deduplicate(once)
	if len(once) != len(twice) {
		t.Fatalf("second pass changed length: %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("second pass reordered records at %d", i)
		}
	}
}

func TestDeduplicateDropsNilEntries(t *testing.T) {
	t.Parallel()

	in := []*Startup{nil, named("Meesho", "https://meesho.com", "dpiit_api"), nil}
	out := Deduplicate(in)
	if len(out) != 1 || out[0].Name != "Meesho" {
		t.Fatalf("unexpected output %+v", out)
	}
}
