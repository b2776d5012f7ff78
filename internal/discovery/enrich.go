package discovery

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/textutil"
)

// descriptionExtractLimit caps how much homepage text is copied into an
// empty description.
const descriptionExtractLimit = 300

// sectorRule maps a sector tag to the keywords that signal it. Iteration
// order matters: only the first matching sector is applied.
type sectorRule struct {
	sector   string
	keywords []string
}

var sectorRules = []sectorRule{
	{"fintech", []string{"pay", "fin", "bank", "lend", "money", "wallet", "insurance"}},
	{"healthtech", []string{"health", "med", "care", "clinic", "doctor", "patient", "diagnostic"}},
	{"edtech", []string{"edu", "learn", "school", "student", "course", "academy"}},
	{"ecommerce", []string{"shop", "store", "retail", "market", "commerce", "buy", "sell"}},
	{"saas", []string{"cloud", "software", "enterprise", "b2b", "api", "platform"}},
	{"ai", []string{"ai", "artificial", "intelligence", "ml", "machine learning", "neural", "bot"}},
	{"agritech", []string{"agri", "farm", "crop", "farmer", "harvest", "rural"}},
	{"cleantech", []string{"green", "clean", "solar", "energy", "carbon", "climate", "sustain"}},
	{"logistics", []string{"logistics", "delivery", "supply", "transport", "cargo", "warehouse"}},
	{"food", []string{"food", "restaurant", "kitchen", "meal", "grocery", "delivery"}},
}

// Enricher layers derived metadata onto deduplicated records: a sector tag,
// an optional homepage-text description, and a recomputed confidence tier.
// It mutates records in place and only ever touches description and
// confidence; name, source, and identity are left alone.
type Enricher struct {
	fetcher      PageFetcher
	fetchTimeout time.Duration
	logger       *zap.Logger
}

// NewEnricher constructs an Enricher. fetcher may be nil, in which case
// homepage enrichment is skipped entirely.
func NewEnricher(fetcher PageFetcher, fetchTimeout time.Duration, logger *zap.Logger) *Enricher {
	if fetchTimeout <= 0 {
		fetchTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{fetcher: fetcher, fetchTimeout: fetchTimeout, logger: logger}
}

// Enrich processes every record in sequence. Homepage fetch failures are
// silently tolerated; the description simply stays empty. The confidence
// recompute at the end intentionally overwrites whatever tier the collector
// supplied.
func (e *Enricher) Enrich(ctx context.Context, startups []*Startup) {
	for _, s := range startups {
		e.tagSector(s)
		e.fetchDescription(ctx, s)
		s.Confidence = scoreConfidence(s)
	}
}

func (e *Enricher) tagSector(s *Startup) {
	haystack := strings.ToLower(s.Name + " " + s.Description)
	for _, rule := range sectorRules {
		if !containsAny(haystack, rule.keywords) {
			continue
		}
		if s.Description == "" {
			s.Description = titleCase(rule.sector) + " startup operating in India"
		} else {
			s.Description = "[" + strings.ToUpper(rule.sector) + "] " + s.Description
		}
		return
	}
}

func (e *Enricher) fetchDescription(ctx context.Context, s *Startup) {
	if s.Description != "" || s.Website == "" || e.fetcher == nil {
		return
	}
	TotalEnrichmentFetches.Inc()

	fetchCtx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()

	text, err := e.fetcher.FetchText(fetchCtx, s.Website)
	if err != nil {
		e.logger.Debug("Homepage enrichment failed",
			zap.String("name", s.Name),
			zap.String("website", s.Website),
			zap.Error(err),
		)
		return
	}
	// Clean here rather than trusting every PageFetcher to do it; record
	// fields must stay printable text.
	text = textutil.Clean(text)
	if len(text) > descriptionExtractLimit {
		text = text[:descriptionExtractLimit]
	}
	s.Description = text
}

// scoreConfidence recomputes the tier from field completeness: a reachable
// non-government website, a substantive description, and a location each
// score one point.
func scoreConfidence(s *Startup) Confidence {
	score := 0
	if s.Website != "" && !strings.Contains(s.Website, ".gov.in") {
		score++
	}
	if len(s.Description) > 20 {
		score++
	}
	if s.Location != "" {
		score++
	}
	switch {
	case score >= 3:
		return ConfidenceHigh
	case score >= 2:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
