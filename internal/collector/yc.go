package collector

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
)

const (
	ycAPIBase  = "https://api.ycombinator.com/v0.1/companies"
	ycPageSize = 50
	ycMaxPages = 4
)

// YCCollector pulls India-based companies from the public Y Combinator
// directory API.
type YCCollector struct {
	client     *APIClient
	normalizer *discovery.Normalizer
	logger     *zap.Logger
}

// NewYCCollector constructs the Y Combinator adapter.
func NewYCCollector(client *APIClient, normalizer *discovery.Normalizer, logger *zap.Logger) *YCCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YCCollector{client: client, normalizer: normalizer, logger: logger}
}

// Name identifies the adapter in logs and run metadata.
func (c *YCCollector) Name() string { return "yc" }

type ycCompany struct {
	Name        string   `json:"name"`
	Website     string   `json:"website"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	OneLiner    string   `json:"one_liner"`
	Batch       string   `json:"batch"`
	Locations   []ycLoc  `json:"locations"`
	Industries  []string `json:"industries"`
}

type ycLoc struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type ycResponse struct {
	Companies []ycCompany `json:"companies"`
}

// Collect pages through the directory API until limit records pass
// validation or the feed runs dry.
func (c *YCCollector) Collect(ctx context.Context, limit int) ([]*discovery.Startup, error) {
	var raws []discovery.RawCandidate
	for page := 0; page < ycMaxPages; page++ {
		params := url.Values{
			"location": {"india"},
			"offset":   {strconv.Itoa(page * ycPageSize)},
			"limit":    {strconv.Itoa(ycPageSize)},
		}
		var resp ycResponse
		if err := c.client.GetJSON(ctx, ycAPIBase, params, nil, &resp); err != nil {
			if page == 0 {
				return nil, fmt.Errorf("yc directory: %w", err)
			}
			c.logger.Warn("YC pagination stopped early", zap.Int("page", page), zap.Error(err))
			break
		}
		if len(resp.Companies) == 0 {
			break
		}
		for _, company := range resp.Companies {
			if raw, ok := c.toRaw(company); ok {
				raws = append(raws, raw)
			}
		}
		if limit > 0 && len(raws) >= limit*2 {
			break
		}
	}

	startups := normalizeBatch(c.normalizer, raws, limit)
	c.logger.Info("YC collection complete", zap.Int("accepted", len(startups)))
	return startups, nil
}

func (c *YCCollector) toRaw(company ycCompany) (discovery.RawCandidate, bool) {
	if company.Name == "" || !c.inIndia(company.Locations) {
		return discovery.RawCandidate{}, false
	}

	desc := company.Description
	if desc == "" {
		desc = company.OneLiner
	}
	website := company.Website
	if website == "" {
		website = company.URL
	}

	location := "India"
	for _, loc := range company.Locations {
		if strings.EqualFold(loc.Country, "india") && loc.City != "" {
			location = loc.City + ", India"
			break
		}
	}

	industry := ""
	if len(company.Industries) > 0 {
		industry = company.Industries[0]
	}

	stage := "series_a"
	if strings.Contains(strings.ToUpper(company.Batch), "S") {
		stage = "seed"
	}

	return discovery.RawCandidate{
		Name:         company.Name,
		Website:      ensureScheme(website),
		Description:  desc,
		Location:     location,
		Industry:     industry,
		FundingStage: stage,
		Source:       "yc_" + strings.ToLower(company.Batch),
		Confidence:   discovery.ConfidenceHigh,
	}, true
}

func (c *YCCollector) inIndia(locations []ycLoc) bool {
	for _, loc := range locations {
		if strings.EqualFold(loc.Country, "india") {
			return true
		}
	}
	return false
}

var _ discovery.Collector = (*YCCollector)(nil)
