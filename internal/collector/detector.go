package collector

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// jsShellKeywords mark pages that ship an empty application shell and build
// the DOM client-side. Tracxn and Wellfound both do this.
var jsShellKeywords = [][]byte{
	[]byte("enable javascript"),
	[]byte("id=\"__next\""),
	[]byte("id=\"root\""),
	[]byte("window.__initial_state__"),
}

const minRenderedHTMLBytes = 2048

// NeedsRender reports whether a fetched page looks like a JS shell that
// should go through the headless renderer before parsing.
func NeedsRender(body []byte, contentSelector string) bool {
	if len(body) < minRenderedHTMLBytes {
		return true
	}
	lower := bytes.ToLower(body)
	for _, kw := range jsShellKeywords {
		if bytes.Contains(lower, kw) {
			return true
		}
	}
	if strings.TrimSpace(contentSelector) == "" {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return true
	}
	return doc.Find(contentSelector).Length() == 0
}
