package discovery

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type stubFetcher struct {
	text  string
	err   error
	calls int
	urls  []string
}

func (f *stubFetcher) FetchText(_ context.Context, url string) (string, error) {
	f.calls++
	f.urls = append(f.urls, url)
	return f.text, f.err
}

func TestEnrichTagsFirstMatchingSector(t *testing.T) {
	t.Parallel()

	e := NewEnricher(nil, time.Second, nil)

	tests := []struct {
		name     string
		company  string
		desc     string
		wantDesc string
	}{
		{"synthesized when empty", "Zetapay", "", "Fintech startup operating in India"},
		{"prefixed when present", "MediCare", "Clinic appointments made simple", "[HEALTHTECH] Clinic appointments made simple"},
		{"no sector leaves description alone", "Zxqv", "Generous terms", "Generous terms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := &Startup{Name: tt.company, Description: tt.desc}
			e.Enrich(context.Background(), []*Startup{s})
			if s.Description != tt.wantDesc {
				t.Fatalf("description = %q, want %q", s.Description, tt.wantDesc)
			}
		})
	}
}

func TestEnrichFetchesHomepageOnlyWhenNeeded(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{text: "  Builds rockets in Hyderabad  "}
	e := NewEnricher(fetcher, time.Second, nil)

	withDesc := &Startup{Name: "Zxqv", Description: "Already described well enough", Website: "https://zxqv.example"}
	noWebsite := &Startup{Name: "Zxqv Two"}
	needsFetch := &Startup{Name: "Zxqv Three", Website: "https://zxqv3.example"}

	e.Enrich(context.Background(), []*Startup{withDesc, noWebsite, needsFetch})

	if fetcher.calls != 1 {
		t.Fatalf("fetch calls = %d, want 1", fetcher.calls)
	}
	if fetcher.urls[0] != "https://zxqv3.example" {
		t.Fatalf("fetched %q", fetcher.urls[0])
	}
	if needsFetch.Description != "Builds rockets in Hyderabad" {
		t.Fatalf("description = %q", needsFetch.Description)
	}
}

func TestEnrichCleansFetchedHomepageText(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{text: "  Rockets &amp; engines\n\nbuilt    in Hyderabad©  "}
	e := NewEnricher(fetcher, time.Second, nil)

	s := &Startup{Name: "Zxqv", Website: "https://zxqv.example"}
	e.Enrich(context.Background(), []*Startup{s})
	if s.Description != "Rockets & engines built in Hyderabad" {
		t.Fatalf("description = %q", s.Description)
	}
}

func TestEnrichTruncatesHomepageText(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{text: strings.Repeat("x", 2*descriptionExtractLimit)}
	e := NewEnricher(fetcher, time.Second, nil)

	s := &Startup{Name: "Zxqv", Website: "https://zxqv.example"}
	e.Enrich(context.Background(), []*Startup{s})
	if len(s.Description) != descriptionExtractLimit {
		t.Fatalf("description length = %d, want %d", len(s.Description), descriptionExtractLimit)
	}
}

func TestEnrichToleratesFetchFailure(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{err: errors.New("connection refused")}
	e := NewEnricher(fetcher, time.Second, nil)

	s := &Startup{Name: "Zxqv", Website: "https://zxqv.example"}
	e.Enrich(context.Background(), []*Startup{s})
	if s.Description != "" {
		t.Fatalf("description = %q, want empty", s.Description)
	}
}

func TestScoreConfidence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    Startup
		want Confidence
	}{
		{
			"all signals",
			Startup{Website: "https://razorpay.com", Description: "A payments platform for merchants", Location: "Bangalore, India"},
			ConfidenceHigh,
		},
		{
			"government website does not count",
			Startup{Website: "https://startupindia.gov.in", Description: "A recognition portal for startups", Location: "Delhi, India"},
			ConfidenceMedium,
		},
		{
			"short description does not count",
			Startup{Website: "https://zxqv.example", Description: "Short", Location: "Pune, India"},
			ConfidenceMedium,
		},
		{
			"location only",
			Startup{Location: "India"},
			ConfidenceLow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := scoreConfidence(&tt.s); got != tt.want {
				t.Fatalf("scoreConfidence = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEnrichOverwritesCollectorConfidence(t *testing.T) {
	t.Parallel()

	e := NewEnricher(nil, time.Second, nil)
	s := &Startup{Name: "Zxqv", Confidence: ConfidenceHigh}
	e.Enrich(context.Background(), []*Startup{s})
	if s.Confidence != ConfidenceLow {
		t.Fatalf("confidence = %s, want %s", s.Confidence, ConfidenceLow)
	}
}
