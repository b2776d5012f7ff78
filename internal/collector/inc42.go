package collector

import (
	"bytes"
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
	"github.com/JakeFAU/startup-discovery/internal/textutil"
)

const (
	inc42Base           = "https://inc42.com"
	inc42FundingNewsURL = "https://inc42.com/news/funding/"
	inc42ArticlesCap    = 20
	inc42FundingCap     = 10
)

var inc42ListingPages = []string{
	"https://inc42.com/startups/",
	"https://inc42.com/startups/30-startups-to-watch/",
	"https://inc42.com/datalabs/startup-funding-report/",
	"https://inc42.com/features/",
}

// inc42TitlePatterns extract a company name from an article headline. Order
// matters: the possessive forms only apply after the How/Why forms miss.
var inc42TitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^How\s+(.+?)\s+Is\s+`),
	regexp.MustCompile(`(?i)^How\s+(.+?)\s+Has\s+`),
	regexp.MustCompile(`(?i)^How\s+(.+?)\s+Uses\s+`),
	regexp.MustCompile(`(?i)^How\s+(.+?)\s+Helps\s+`),
	regexp.MustCompile(`(?i)^Why\s+(.+?)\s+`),
	regexp.MustCompile(`(?i)^(.+?)’s\s+`),
	regexp.MustCompile(`(?i)^(.+?)'s\s+`),
	regexp.MustCompile(`(?i)^Inside\s+([A-Z][A-Za-z0-9&.\-]{2,20})$`),
}

// inc42InvalidNames are headline captures that are topics, not companies.
var inc42InvalidNames = map[string]struct{}{
	"gig economy":   {},
	"startup":       {},
	"startups":      {},
	"guide":         {},
	"funding":       {},
	"economy":       {},
	"features":      {},
	"decoding":      {},
	"understanding": {},
}

var inc42BadFundingNames = []string{
	"guide", "understanding", "funding", "startup", "founders", "economy",
}

// inc42FundingPatterns pull the company out of funding headlines like
// "Acme Raises $20 Mn".
var inc42FundingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([A-Z][\w\s&]+)\s+(?:Raises|Secures|Gets|Closes)`),
	regexp.MustCompile(`([A-Z][\w\s&]+)\s+(?:Funding|Investment)`),
	regexp.MustCompile(`([A-Z][\w\s&]+)\s+(?:Announces|Launches)`),
}

// inc42SectorKeywords classify an article into a sector for the description
// prefix. First match wins; "technology" is the default.
var inc42SectorKeywords = []struct {
	sector   string
	keywords []string
}{
	{"fintech", []string{"fintech", "financial", "payment", "banking", "lending"}},
	{"healthtech", []string{"health", "medical", "healthcare", "diagnostic", "pharma"}},
	{"edtech", []string{"education", "learning", "edtech", "student", "course"}},
	{"ecommerce", []string{"ecommerce", "retail", "marketplace", "shopping", "consumer"}},
	{"saas", []string{"saas", "enterprise", "software", "b2b", "cloud"}},
	{"ai", []string{"ai", "artificial intelligence", "machine learning", "ml", "deep learning"}},
	{"cleantech", []string{"clean", "green", "sustainability", "climate", "energy", "solar"}},
	{"deeptech", []string{"deeptech", "semiconductor", "chip", "hardware", "iot"}},
	{"agritech", []string{"agri", "farm", "agriculture", "crop", "farmer"}},
	{"logistics", []string{"logistics", "supply chain", "delivery", "transport", "warehouse"}},
}

// Inc42Collector mines Inc42 editorial coverage: listing pages link to
// per-startup features whose headlines name a company, and funding headlines
// name companies directly.
type Inc42Collector struct {
	fetcher     *HTMLFetcher
	normalizer  *discovery.Normalizer
	pages       []string
	fundingPage string
	logger      *zap.Logger
}

// NewInc42Collector constructs the Inc42 adapter.
func NewInc42Collector(fetcher *HTMLFetcher, normalizer *discovery.Normalizer, logger *zap.Logger) *Inc42Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inc42Collector{
		fetcher:     fetcher,
		normalizer:  normalizer,
		pages:       inc42ListingPages,
		fundingPage: inc42FundingNewsURL,
		logger:      logger,
	}
}

// Name identifies the adapter in logs and run metadata.
func (c *Inc42Collector) Name() string { return "inc42" }

// Collect walks every listing page, then funding news if the quota is short.
func (c *Inc42Collector) Collect(ctx context.Context, limit int) ([]*discovery.Startup, error) {
	var raws []discovery.RawCandidate
	for _, listing := range c.pages {
		if ctx.Err() != nil || (limit > 0 && len(raws) >= limit) {
			break
		}
		pageRaws, err := c.fromListing(ctx, listing)
		if err != nil {
			c.logger.Debug("Inc42 listing failed", zap.String("url", listing), zap.Error(err))
			continue
		}
		raws = append(raws, pageRaws...)
	}

	if limit <= 0 || len(raws) < limit {
		fundingRaws, err := c.fromFundingNews(ctx)
		if err != nil {
			c.logger.Debug("Inc42 funding news failed", zap.Error(err))
		} else {
			raws = append(raws, fundingRaws...)
		}
	}

	startups := normalizeBatch(c.normalizer, raws, limit)
	c.logger.Info("Inc42 collection complete", zap.Int("accepted", len(startups)))
	return startups, nil
}

var inc42LinkSelectors = []string{
	"article h2 a",
	"article h3 a",
	".post-title a",
	".entry-title a",
	".startup-card a",
	"a[href*='/startups/']",
	"a[href*='/features/']",
	"h2 a[href]",
	"h3 a[href]",
}

func (c *Inc42Collector) fromListing(ctx context.Context, listingURL string) ([]discovery.RawCandidate, error) {
	page, err := c.fetcher.Fetch(ctx, listingURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return nil, err
	}

	links := collectArticleLinks(doc)
	var raws []discovery.RawCandidate
	for i, articleURL := range links {
		if i >= inc42ArticlesCap || ctx.Err() != nil {
			break
		}
		raw, ok := c.fromArticle(ctx, articleURL)
		if ok {
			raws = append(raws, raw)
		}
	}
	return raws, nil
}

func collectArticleLinks(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	var links []string
	for _, selector := range inc42LinkSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			if href == "" {
				return
			}
			if !strings.Contains(href, "/startups/") &&
				!strings.Contains(href, "/features/") &&
				!strings.Contains(href, "/news/") {
				return
			}
			full := resolveURL(inc42Base, href)
			if _, ok := seen[full]; ok {
				return
			}
			seen[full] = struct{}{}
			links = append(links, full)
		})
	}
	return links
}

func resolveURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

func (c *Inc42Collector) fromArticle(ctx context.Context, articleURL string) (discovery.RawCandidate, bool) {
	page, err := c.fetcher.Fetch(ctx, articleURL)
	if err != nil {
		return discovery.RawCandidate{}, false
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return discovery.RawCandidate{}, false
	}

	title := textutil.Clean(doc.Find("h1, h2, .entry-title").First().Text())
	if title == "" {
		return discovery.RawCandidate{}, false
	}
	name := CompanyFromHeadline(title)
	if name == "" || containsAny(name, inc42BadFundingNames) {
		return discovery.RawCandidate{}, false
	}

	desc := ExtractPageText(doc)
	if len(desc) > 300 {
		desc = desc[:300]
	}

	website := firstExternalLink(doc)

	sector := "technology"
	contentLower := strings.ToLower(desc + " " + name)
	for _, entry := range inc42SectorKeywords {
		if containsAny(contentLower, entry.keywords) {
			sector = entry.sector
			break
		}
	}
	description := strings.ToUpper(sector)
	if desc != "" {
		description = strings.ToUpper(sector) + ": " + desc
	}

	confidence := discovery.ConfidenceMedium
	if website != "" {
		confidence = discovery.ConfidenceHigh
	}

	return discovery.RawCandidate{
		Name:        name,
		Website:     website,
		Description: description,
		Location:    "India",
		Industry:    sector,
		Source:      "inc42_" + firstPathSegment(articleURL),
		Confidence:  confidence,
	}, true
}

// CompanyFromHeadline extracts a company name from an editorial headline, or
// returns "" when the headline is about a topic rather than a company.
func CompanyFromHeadline(title string) string {
	title = strings.TrimSpace(title)
	for _, pattern := range inc42TitlePatterns {
		match := pattern.FindStringSubmatch(title)
		if match == nil {
			continue
		}
		name := strings.TrimSpace(match[1])
		if len(strings.Fields(name)) > 3 {
			return ""
		}
		if _, bad := inc42InvalidNames[strings.ToLower(name)]; bad {
			return ""
		}
		return name
	}
	return ""
}

// firstExternalLink finds the first outbound link that looks like a company
// website.
func firstExternalLink(doc *goquery.Document) string {
	domains := []string{".com", ".in", ".io", ".ai", ".tech"}
	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if !strings.HasPrefix(href, "http") || strings.Contains(href, "inc42.com") {
			return true
		}
		if containsAny(href, domains) {
			found = href
			return false
		}
		return true
	})
	return found
}

func firstPathSegment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "article"
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "article"
	}
	return parts[0]
}

func (c *Inc42Collector) fromFundingNews(ctx context.Context) ([]discovery.RawCandidate, error) {
	page, err := c.fetcher.Fetch(ctx, c.fundingPage)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return nil, err
	}

	var raws []discovery.RawCandidate
	doc.Find("article").EachWithBreak(func(i int, article *goquery.Selection) bool {
		if i >= inc42FundingCap {
			return false
		}
		title := textutil.Clean(article.Find("h2, h3, .entry-title").First().Text())
		if title == "" {
			return true
		}
		for _, pattern := range inc42FundingPatterns {
			match := pattern.FindStringSubmatch(title)
			if match == nil {
				continue
			}
			name := strings.TrimSpace(match[1])
			if len(name) <= 2 || len(name) >= 50 {
				break
			}
			headline := title
			if len(headline) > 100 {
				headline = headline[:100]
			}
			raws = append(raws, discovery.RawCandidate{
				Name:        name,
				Description: "Featured in funding news: " + headline,
				Location:    "India",
				Source:      "inc42_funding_news",
				Confidence:  discovery.ConfidenceMedium,
			})
			break
		}
		return true
	})
	return raws, nil
}

var _ discovery.Collector = (*Inc42Collector)(nil)
