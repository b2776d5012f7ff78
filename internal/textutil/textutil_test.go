package textutil

import "testing"

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace runs", "Acme   Corp\n\tIndia", "Acme Corp India"},
		{"html entities", "Tom &amp; Jerry", "Tom & Jerry"},
		{"non printable stripped", "Acme\u00a0Corp\u2122", "AcmeCorp"},
		{"leading trailing", "  Acme Corp  ", "Acme Corp"},
		{"already clean", "Acme Corp", "Acme Corp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Clean(tt.input); got != tt.want {
				t.Fatalf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"  Acme &amp; Co  ", "a b", "Plain"}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Fatalf("Clean not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
