// Package cmd defines and implements the CLI commands for the
// startup-discovery executable.
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/collector"
	"github.com/JakeFAU/startup-discovery/internal/discovery"
	"github.com/JakeFAU/startup-discovery/internal/logging"
)

// newDiscoverCmd creates and configures the 'discover' subcommand, which
// runs one full discovery pipeline pass and saves the ranked results.
func newDiscoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Runs one startup discovery pass",
		Long: `Collects startups from every configured source concurrently,
validates and deduplicates them, enriches the survivors, and saves the
top-ranked records to the configured sink.`,

		RunE: runDiscoverCommand,
	}
	return cmd
}

func runDiscoverCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}

	cfg, err := discovery.LoadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load discovery config: %w", err)
	}

	engine, closer, err := buildEngine(cfg, appInstance)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer(); cerr != nil {
			appInstance.GetLogger().Warn("Failed to close collectors", zap.Error(cerr))
		}
	}()

	if _, err := engine.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run discovery: %w", err)
	}

	logging.L.Info("Discover command finished.")
	return nil
}

func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, errors.New("application services not initialized")
	}
	return appInstance, nil
}

// buildEngine assembles the pipeline from the collector set and the app's
// sink, store, and publisher. The returned closer releases collector
// resources (the headless renderer in particular).
func buildEngine(cfg discovery.Config, appInstance App) (*discovery.Engine, func() error, error) {
	logger := appInstance.GetLogger()

	set, err := collector.Build(cfg, discovery.SystemClock(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build collectors: %w", err)
	}

	aggregator := discovery.NewAggregator(set.Collectors, cfg, logger)
	enricher := discovery.NewEnricher(set.Enrichment, cfg.EnrichTimeout, logger)

	engine := discovery.NewEngine(
		cfg,
		aggregator,
		enricher,
		appInstance.GetSink(),
		appInstance.GetStore(),
		appInstance.GetPublisher(),
		appInstance.GetTopic(),
		logger,
	)
	return engine, set.Close, nil
}
