package collector

import (
	"strings"
	"testing"
)

func fullPage(inner string) []byte {
	padding := strings.Repeat("<p>filler paragraph with enough text to matter</p>", 60)
	return []byte("<html><body>" + inner + padding + "</body></html>")
}

func TestNeedsRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     []byte
		selector string
		want     bool
	}{
		{"tiny body", []byte("<html></html>"), "", true},
		{"javascript notice", fullPage("<noscript>Please enable JavaScript to continue</noscript>"), "", true},
		{"next shell", fullPage(`<div id="__next"></div>`), "", true},
		{"react shell", fullPage(`<div id="root"></div>`), "", true},
		{"server rendered no selector", fullPage("<h1>Companies</h1>"), "", false},
		{"selector present", fullPage(`<div class="company-card">Acme</div>`), ".company-card", false},
		{"selector missing", fullPage("<h1>Companies</h1>"), ".company-card", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NeedsRender(tt.body, tt.selector); got != tt.want {
				t.Fatalf("NeedsRender = %v, want %v", got, tt.want)
			}
		})
	}
}
