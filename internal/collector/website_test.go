package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractPageText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"meta description wins",
			`<html><head><meta name="description" content="Payments infrastructure for Indian businesses"></head>
			<body><p>Some other very long paragraph that should not be used here</p></body></html>`,
			"Payments infrastructure for Indian businesses",
		},
		{
			"og description fallback",
			`<html><head><meta property="og:description" content="Social commerce for small sellers"></head><body></body></html>`,
			"Social commerce for small sellers",
		},
		{
			"first substantial paragraph",
			`<html><body><p>Short one.</p><p>We build logistics software for mid-sized Indian manufacturers.</p></body></html>`,
			"We build logistics software for mid-sized Indian manufacturers.",
		},
		{
			"nothing usable",
			`<html><body><p>Tiny.</p></body></html>`,
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractPageText(docFromHTML(t, tt.html)); got != tt.want {
				t.Fatalf("ExtractPageText = %q, want %q", got, tt.want)
			}
		})
	}
}

func testFetcherConfig() discovery.Config {
	return discovery.Config{
		RequestTimeout: 5 * time.Second,
		UserAgent:      "StartupDiscovery/1.0 (test)",
		DomainDelay:    10 * time.Millisecond,
	}
}

func TestFetchTextReadsMetaDescription(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><head><meta name="description" content="Lending platform for kirana stores"></head><body></body></html>`)) //nolint:errcheck
	}))
	defer srv.Close()

	fetcher, err := NewHTMLFetcher(testFetcherConfig(), nil)
	require.NoError(t, err)
	reader := NewWebsiteReader(fetcher, nil)

	text, err := reader.FetchText(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "Lending platform for kirana stores", text)
}

func TestFetchTextReportsUnreachablePages(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	fetcher, err := NewHTMLFetcher(testFetcherConfig(), nil)
	require.NoError(t, err)
	reader := NewWebsiteReader(fetcher, nil)

	_, err = reader.FetchText(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
}
