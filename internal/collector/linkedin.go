package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
)

const linkedinSearchURL = "https://www.linkedin.com/voyager/api/search/blended"

var linkedinKeywords = []string{
	"startup india",
	"fintech india",
	"saas india",
	"ai startup india",
}

// LinkedInCollector searches LinkedIn's company search for Indian startups.
// It requires session cookies and is disabled by default; when the session
// is missing or search fails it simply returns nothing rather than inventing
// records.
type LinkedInCollector struct {
	client     *APIClient
	normalizer *discovery.Normalizer
	sessionID  string
	authCookie string
	logger     *zap.Logger
}

// NewLinkedInCollector constructs the LinkedIn adapter. authCookie and
// sessionID come from the LI_AT and JSESSIONID environment values.
func NewLinkedInCollector(client *APIClient, normalizer *discovery.Normalizer, authCookie, sessionID string, logger *zap.Logger) *LinkedInCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinkedInCollector{
		client:     client,
		normalizer: normalizer,
		sessionID:  sessionID,
		authCookie: authCookie,
		logger:     logger,
	}
}

// Name identifies the adapter in logs and run metadata.
func (c *LinkedInCollector) Name() string { return "linkedin" }

type linkedinResponse struct {
	Data struct {
		Elements []struct {
			Company linkedinCompany `json:"company"`
		} `json:"elements"`
	} `json:"data"`
}

type linkedinCompany struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Locations   []string `json:"locations"`
	Industries  []string `json:"industries"`
	StaffCount  int      `json:"staffCount"`
	Websites    []struct {
		URL string `json:"url"`
	} `json:"websites"`
}

// Collect searches each keyword until the quota is met. Missing credentials
// short-circuit to an empty result.
func (c *LinkedInCollector) Collect(ctx context.Context, limit int) ([]*discovery.Startup, error) {
	if c.authCookie == "" {
		c.logger.Warn("LinkedIn session not configured, skipping source")
		return nil, nil
	}

	headers := http.Header{}
	headers.Set("Accept", "application/vnd.linkedin.normalized+json+2.1")
	headers.Set("X-Restli-Protocol-Version", "2.0.0")
	headers.Set("Cookie", fmt.Sprintf("li_at=%s; JSESSIONID=%s", c.authCookie, c.sessionID))

	var raws []discovery.RawCandidate
	for _, keyword := range linkedinKeywords {
		if ctx.Err() != nil || (limit > 0 && len(raws) >= limit) {
			break
		}
		for start := 0; limit <= 0 || len(raws) < limit; start += 20 {
			params := url.Values{
				"keywords": {keyword},
				"origin":   {"GLOBAL_SEARCH_HEADER"},
				"q":        {"blended"},
				"start":    {strconv.Itoa(start)},
				"count":    {"20"},
			}
			var resp linkedinResponse
			if err := c.client.GetJSON(ctx, linkedinSearchURL, params, headers, &resp); err != nil {
				c.logger.Debug("LinkedIn search failed", zap.String("keyword", keyword), zap.Error(err))
				break
			}
			if len(resp.Data.Elements) == 0 {
				break
			}
			for _, element := range resp.Data.Elements {
				if raw, ok := linkedinToRaw(element.Company); ok {
					raws = append(raws, raw)
				}
			}
		}
	}

	startups := normalizeBatch(c.normalizer, raws, limit)
	c.logger.Info("LinkedIn collection complete", zap.Int("accepted", len(startups)))
	return startups, nil
}

func linkedinToRaw(company linkedinCompany) (discovery.RawCandidate, bool) {
	if company.Name == "" || !linkedinInIndia(company.Locations) {
		return discovery.RawCandidate{}, false
	}

	website := ""
	if len(company.Websites) > 0 {
		website = company.Websites[0].URL
	}
	employeeCount := ""
	if company.StaffCount > 0 {
		employeeCount = strconv.Itoa(company.StaffCount)
	}

	return discovery.RawCandidate{
		Name:          company.Name,
		Website:       ensureScheme(website),
		Description:   company.Description,
		Location:      "India",
		Industry:      strings.Join(company.Industries, ", "),
		EmployeeCount: employeeCount,
		Source:        "linkedin_search",
		Confidence:    discovery.ConfidenceMedium,
	}, true
}

func linkedinInIndia(locations []string) bool {
	for _, loc := range locations {
		if strings.Contains(strings.ToLower(loc), "india") {
			return true
		}
	}
	return false
}

var _ discovery.Collector = (*LinkedInCollector)(nil)
