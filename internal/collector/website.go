package collector

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
	"github.com/JakeFAU/startup-discovery/internal/textutil"
)

// WebsiteReader implements discovery.PageFetcher by pulling a company
// homepage and extracting its meta description, falling back to the first
// substantial paragraph.
type WebsiteReader struct {
	fetcher *HTMLFetcher
	logger  *zap.Logger
}

// NewWebsiteReader wraps the shared HTML fetcher for enrichment lookups.
func NewWebsiteReader(fetcher *HTMLFetcher, logger *zap.Logger) *WebsiteReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebsiteReader{fetcher: fetcher, logger: logger}
}

// FetchText retrieves rawURL and returns descriptive text found on the page.
// An empty string with nil error means the page had nothing usable.
func (w *WebsiteReader) FetchText(ctx context.Context, rawURL string) (string, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}

	page, err := w.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if page.StatusCode >= 400 {
		return "", fmt.Errorf("fetch %s: status %d", rawURL, page.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", rawURL, err)
	}
	return ExtractPageText(doc), nil
}

// ExtractPageText pulls the best short description from a parsed page:
// the meta description when present, otherwise the first paragraph longer
// than a sentence fragment.
func ExtractPageText(doc *goquery.Document) string {
	if meta, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if text := textutil.Clean(meta); text != "" {
			return text
		}
	}
	if meta, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		if text := textutil.Clean(meta); text != "" {
			return text
		}
	}

	var found string
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := textutil.Clean(sel.Text())
		if len(text) > 40 {
			found = text
			return false
		}
		return true
	})
	return found
}

var _ discovery.PageFetcher = (*WebsiteReader)(nil)
