package discovery

import "time"

// Confidence grades how trustworthy a discovered record is.
type Confidence string

// Confidence tiers, ordered high to low.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// RawCandidate is the arbitrary, collector-supplied shape of a discovered
// company before validation. It is transient: the Normalizer consumes it
// immediately and it is never persisted.
type RawCandidate struct {
	Name          string
	Website       string
	Description   string
	Location      string
	Industry      string
	FundingStage  string
	EmployeeCount string
	Source        string
	Confidence    Confidence
	DiscoveredAt  time.Time
}

// Startup is the canonical record flowing through the pipeline. Every field
// is cleaned printable text; ID is content-addressed from (name, website).
type Startup struct {
	ID               string     `json:"startup_id"`
	Name             string     `json:"company_name"`
	Source           string     `json:"source"`
	Website          string     `json:"website"`
	Description      string     `json:"description"`
	Location         string     `json:"location"`
	Industry         string     `json:"industry"`
	FundingStage     string     `json:"funding_stage"`
	EmployeeCount    string     `json:"employee_count"`
	DiscoveredAt     time.Time  `json:"discovered_date"`
	Confidence       Confidence `json:"confidence"`
	IsValidCompany   bool       `json:"is_valid_company"`
	ValidationReason string     `json:"validation_reason"`
}

// Metadata summarizes one discovery run.
type Metadata struct {
	RunID            string    `json:"run_id"`
	GeneratedAt      time.Time `json:"generated_at"`
	TotalCount       int       `json:"total_count"`
	TargetCount      int       `json:"target_count"`
	SourcesUsed      []string  `json:"sources_used"`
	HighConfidence   int       `json:"high_confidence"`
	MediumConfidence int       `json:"medium_confidence"`
	LowConfidence    int       `json:"low_confidence"`
}

// Output is the persisted result of a run: summary metadata plus the final
// ranked, truncated record list.
type Output struct {
	Metadata Metadata   `json:"metadata"`
	Startups []*Startup `json:"startups"`
}

// RunEvent is the completion notification published once a run's output has
// been saved. Consumers key on RunID and the tier counts; ResultLocation
// points at the saved output.
type RunEvent struct {
	RunID            string    `json:"run_id"`
	GeneratedAt      time.Time `json:"generated_at"`
	TotalCount       int       `json:"total_count"`
	HighConfidence   int       `json:"high_confidence"`
	MediumConfidence int       `json:"medium_confidence"`
	LowConfidence    int       `json:"low_confidence"`
	SourcesUsed      []string  `json:"sources_used"`
	ResultLocation   string    `json:"result_location"`
}

// Event derives the run-completion notification from run metadata.
func (m Metadata) Event(resultLocation string) RunEvent {
	return RunEvent{
		RunID:            m.RunID,
		GeneratedAt:      m.GeneratedAt,
		TotalCount:       m.TotalCount,
		HighConfidence:   m.HighConfidence,
		MediumConfidence: m.MediumConfidence,
		LowConfidence:    m.LowConfidence,
		SourcesUsed:      m.SourcesUsed,
		ResultLocation:   resultLocation,
	}
}
