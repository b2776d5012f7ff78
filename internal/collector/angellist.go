package collector

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
	"github.com/JakeFAU/startup-discovery/internal/textutil"
)

const (
	wellfoundBase    = "https://wellfound.com"
	wellfoundGraphQL = "https://wellfound.com/graphql"
)

const wellfoundSearchQuery = `
query SearchCompanies($cursor: String, $filters: CompanySearchFilters!) {
  companySearch(first: 20, after: $cursor, filters: $filters) {
    edges {
      node {
        id
        name
        slug
        websiteUrl
        oneLiner
        locations
        industries
        fundingStage
        employeeCount
      }
      cursor
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}
`

var wellfoundLocations = []string{
	"india", "bangalore", "mumbai", "delhi", "hyderabad", "pune", "chennai",
}

// AngelListCollector pulls early-stage Indian companies from Wellfound
// (formerly AngelList Talent). The GraphQL search is tried first; when it is
// blocked the adapter scrapes the public company listing pages per city.
type AngelListCollector struct {
	client     *APIClient
	fetcher    *HTMLFetcher
	normalizer *discovery.Normalizer
	logger     *zap.Logger
}

// NewAngelListCollector constructs the Wellfound adapter.
func NewAngelListCollector(client *APIClient, fetcher *HTMLFetcher, normalizer *discovery.Normalizer, logger *zap.Logger) *AngelListCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AngelListCollector{client: client, fetcher: fetcher, normalizer: normalizer, logger: logger}
}

// Name identifies the adapter in logs and run metadata.
func (c *AngelListCollector) Name() string { return "angellist" }

type wellfoundResponse struct {
	Data struct {
		CompanySearch struct {
			Edges []struct {
				Node wellfoundCompany `json:"node"`
			} `json:"edges"`
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
		} `json:"companySearch"`
	} `json:"data"`
}

type wellfoundCompany struct {
	Name          string `json:"name"`
	WebsiteURL    string `json:"websiteUrl"`
	OneLiner      string `json:"oneLiner"`
	FundingStage  string `json:"fundingStage"`
	EmployeeCount any    `json:"employeeCount"`
}

// Collect tries GraphQL search, topping up from the HTML listing pages.
func (c *AngelListCollector) Collect(ctx context.Context, limit int) ([]*discovery.Startup, error) {
	raws := c.fromGraphQL(ctx, limit)
	if limit <= 0 || len(raws) < limit {
		raws = append(raws, c.fromListingPages(ctx, limit-len(raws))...)
	}

	startups := normalizeBatch(c.normalizer, raws, limit)
	c.logger.Info("AngelList collection complete", zap.Int("accepted", len(startups)))
	return startups, nil
}

func (c *AngelListCollector) fromGraphQL(ctx context.Context, limit int) []discovery.RawCandidate {
	var raws []discovery.RawCandidate
	var cursor string
	for {
		if ctx.Err() != nil || (limit > 0 && len(raws) >= limit) {
			break
		}
		variables := map[string]any{
			"filters": map[string]any{
				"locations":     []string{"india"},
				"companyStages": []string{"seed", "series_a", "series_b", "early_stage"},
			},
		}
		if cursor != "" {
			variables["cursor"] = cursor
		}
		body := map[string]any{"query": wellfoundSearchQuery, "variables": variables}

		var resp wellfoundResponse
		if err := c.client.PostJSON(ctx, wellfoundGraphQL, body, nil, &resp); err != nil {
			c.logger.Debug("Wellfound GraphQL failed", zap.Error(err))
			break
		}

		search := resp.Data.CompanySearch
		if len(search.Edges) == 0 {
			break
		}
		for _, edge := range search.Edges {
			node := edge.Node
			if node.Name == "" {
				continue
			}
			raws = append(raws, discovery.RawCandidate{
				Name:          node.Name,
				Website:       ensureScheme(node.WebsiteURL),
				Description:   node.OneLiner,
				Location:      "India",
				FundingStage:  node.FundingStage,
				EmployeeCount: employeeCountString(node.EmployeeCount),
				Source:        "angellist_graphql",
				Confidence:    discovery.ConfidenceHigh,
			})
		}
		if !search.PageInfo.HasNextPage {
			break
		}
		cursor = search.PageInfo.EndCursor
	}
	return raws
}

// employeeCountString tolerates the API returning the count as either a
// number or a range string.
func employeeCountString(v any) string {
	switch count := v.(type) {
	case string:
		return count
	case float64:
		return strconv.Itoa(int(count))
	default:
		return ""
	}
}

var wellfoundCardSelectors = []string{
	"[data-test='company-card']",
	".companyCard",
	"[class*='companyCard']",
	"div[class*='styles_companyCard']",
}

func (c *AngelListCollector) fromListingPages(ctx context.Context, want int) []discovery.RawCandidate {
	var raws []discovery.RawCandidate
	for _, location := range wellfoundLocations {
		if ctx.Err() != nil || (want > 0 && len(raws) >= want) {
			break
		}
		for page := 1; page <= 2; page++ {
			pageURL := fmt.Sprintf("%s/companies?page=%d&locations=%s&stage=seed&stage=series_a", wellfoundBase, page, location)
			fetched, err := c.fetcher.Fetch(ctx, pageURL)
			if err != nil {
				c.logger.Debug("Wellfound listing failed", zap.String("location", location), zap.Error(err))
				break
			}
			cards := c.parseListing(fetched.Body, location)
			if len(cards) == 0 {
				break
			}
			raws = append(raws, cards...)
		}
	}
	return raws
}

func (c *AngelListCollector) parseListing(body []byte, location string) []discovery.RawCandidate {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var raws []discovery.RawCandidate
	for _, selector := range wellfoundCardSelectors {
		doc.Find(selector).Each(func(_ int, card *goquery.Selection) {
			nameSel := card.Find("h2, [data-test='company-name'], a[class*='name']").First()
			if nameSel.Length() == 0 {
				nameSel = card.Find("a").First()
			}
			name := textutil.Clean(nameSel.Text())
			if len(name) <= 1 {
				return
			}

			website, _ := card.Find("a[href^='http']").First().Attr("href")
			if website == "" {
				if link, ok := nameSel.Attr("href"); ok && link != "" {
					website = wellfoundBase + link
				}
			}

			desc := textutil.Clean(card.Find("[data-test='company-description'], p[class*='description'], p").First().Text())

			raws = append(raws, discovery.RawCandidate{
				Name:        name,
				Website:     website,
				Description: desc,
				Location:    "India",
				Source:      "angellist_" + location,
				Confidence:  discovery.ConfidenceHigh,
			})
		})
		if len(raws) > 0 {
			break
		}
	}
	return raws
}

var _ discovery.Collector = (*AngelListCollector)(nil)
