package identity

import "testing"

func TestNewIsDeterministic(t *testing.T) {
	t.Parallel()

	a := New("Razorpay", "https://razorpay.com")
	b := New("Razorpay", "https://razorpay.com")
	if a != b {
		t.Fatalf("identical inputs produced different ids: %s vs %s", a, b)
	}
	if len(a) != Length {
		t.Fatalf("id length = %d, want %d", len(a), Length)
	}
}

func TestNewNormalizesCaseAndSpace(t *testing.T) {
	t.Parallel()

	base := New("Razorpay", "https://razorpay.com")
	tests := []struct {
		name    string
		website string
	}{
		{"razorpay", "https://razorpay.com"},
		{"  Razorpay  ", "https://razorpay.com"},
		{"RAZORPAY", "HTTPS://RAZORPAY.COM"},
	}
	for _, tt := range tests {
		if got := New(tt.name, tt.website); got != base {
			t.Fatalf("New(%q, %q) = %s, want %s", tt.name, tt.website, got, base)
		}
	}
}

func TestNewDistinguishesWebsites(t *testing.T) {
	t.Parallel()

	a := New("Acme", "https://acme.com")
	b := New("Acme", "https://acme.in")
	if a == b {
		t.Fatal("different websites must produce different ids")
	}
	if New("Acme", "") == a {
		t.Fatal("empty website must produce a different id")
	}
}
