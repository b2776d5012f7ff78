package discovery

import (
	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/identity"
	"github.com/JakeFAU/startup-discovery/internal/textutil"
)

// Normalizer turns raw candidates into canonical Startup records. It cleans
// every display field, runs validation, and attaches the content-addressed
// identity and discovery timestamp. Rejections are logged and dropped, never
// raised: one bad candidate must not abort a batch.
type Normalizer struct {
	clock  Clock
	logger *zap.Logger
}

// NewNormalizer constructs a Normalizer. A nil clock falls back to the
// system clock; a nil logger falls back to a no-op logger.
func NewNormalizer(clock Clock, logger *zap.Logger) *Normalizer {
	if clock == nil {
		clock = systemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{clock: clock, logger: logger}
}

// Normalize validates and canonicalizes one raw candidate. The second return
// is false when the candidate was rejected; no record is produced.
func (n *Normalizer) Normalize(raw RawCandidate) (*Startup, bool) {
	name := textutil.Clean(raw.Name)
	website := textutil.Clean(raw.Website)
	description := textutil.Clean(raw.Description)
	location := textutil.Clean(raw.Location)
	if location == "" {
		location = "India"
	}

	valid, reason := Validate(name, description, raw.Source)
	if !valid {
		TotalRejected.Inc()
		n.logger.Warn("Rejected candidate",
			zap.String("name", name),
			zap.String("source", raw.Source),
			zap.String("reason", reason),
		)
		return nil, false
	}

	confidence := raw.Confidence
	if confidence == "" {
		confidence = ConfidenceMedium
	}
	discoveredAt := raw.DiscoveredAt
	if discoveredAt.IsZero() {
		discoveredAt = n.clock.Now()
	}

	return &Startup{
		ID:               identity.New(name, website),
		Name:             name,
		Source:           raw.Source,
		Website:          website,
		Description:      description,
		Location:         location,
		Industry:         textutil.Clean(raw.Industry),
		FundingStage:     textutil.Clean(raw.FundingStage),
		EmployeeCount:    textutil.Clean(raw.EmployeeCount),
		DiscoveredAt:     discoveredAt,
		Confidence:       confidence,
		IsValidCompany:   true,
		ValidationReason: reason,
	}, true
}
