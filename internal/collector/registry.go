package collector

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
)

// Set bundles the collectors for one run together with the shared plumbing
// they depend on, so the caller can close the renderer when the run ends.
type Set struct {
	Collectors []discovery.Collector
	Enrichment discovery.PageFetcher
	renderer   *Renderer
}

// Close releases shared resources held by the set.
func (s *Set) Close() error {
	if s == nil || s.renderer == nil {
		return nil
	}
	return s.renderer.Close()
}

// Build assembles every configured source adapter plus the enrichment page
// fetcher. The headless renderer is optional; when disabled, adapters that
// would use it fall back to plain fetches.
func Build(cfg discovery.Config, clock discovery.Clock, logger *zap.Logger) (*Set, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = discovery.SystemClock()
	}

	client := NewAPIClient(cfg, logger)
	fetcher, err := NewHTMLFetcher(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build html fetcher: %w", err)
	}

	renderer, err := NewRenderer(cfg, logger)
	if err != nil && !errors.Is(err, ErrRendererDisabled) {
		logger.Warn("Headless renderer unavailable", zap.Error(err))
	}
	if err != nil {
		renderer = nil
	}

	normalizer := discovery.NewNormalizer(clock, logger)

	collectors := []discovery.Collector{
		NewYCCollector(client, normalizer, logger),
		NewDPIITCollector(client, fetcher, normalizer, logger),
		NewMCACollector(client, normalizer, clock, logger),
		NewTracxnCollector(client, fetcher, renderer, normalizer, logger),
		NewInc42Collector(fetcher, normalizer, logger),
		NewAngelListCollector(client, fetcher, normalizer, logger),
		NewTier2Collector(fetcher, normalizer, cfg.Tier2Live, logger),
	}
	if cfg.EnableLinkedIn {
		collectors = append(collectors, NewLinkedInCollector(client, normalizer, cfg.LinkedInAuth, cfg.LinkedInSess, logger))
	}

	return &Set{
		Collectors: collectors,
		Enrichment: NewWebsiteReader(fetcher, logger),
		renderer:   renderer,
	}, nil
}
