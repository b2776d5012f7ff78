package collector

import (
	"strings"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
)

// normalizeBatch runs a slice of raw candidates through the normalizer,
// dropping rejects, and stops once limit records have been accepted.
// limit <= 0 means unbounded.
func normalizeBatch(n *discovery.Normalizer, raws []discovery.RawCandidate, limit int) []*discovery.Startup {
	out := make([]*discovery.Startup, 0, len(raws))
	for _, raw := range raws {
		s, ok := n.Normalize(raw)
		if !ok {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// ensureScheme prepends https:// to bare domains so downstream identity and
// enrichment see a usable URL.
func ensureScheme(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}
	return "https://" + rawURL
}

// containsAny reports whether lowered haystack contains any of the needles.
func containsAny(haystack string, needles []string) bool {
	lower := strings.ToLower(haystack)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}
