package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/app"
	"github.com/JakeFAU/startup-discovery/internal/discovery"
	"github.com/JakeFAU/startup-discovery/internal/logging"
	"github.com/JakeFAU/startup-discovery/pkg/config"
)

var cfgFile string

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// App defines the application interface that commands use. This allows a
// mock app to be injected during tests.
type App interface {
	Close()
	GetLogger() *zap.Logger
	GetSink() discovery.Sink
	GetStore() discovery.RunStore
	GetPublisher() discovery.Publisher
	GetTopic() string
}

// newApp is the application factory. It is a variable so tests can replace
// it with a mock factory.
var newApp = func(ctx context.Context, cfg discovery.Config) (App, error) {
	return app.NewApp(ctx, cfg)
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "startup-discovery",
		Short: "Discovers early-stage Indian startups from public sources.",
		Long: `startup-discovery aggregates company records from accelerator
directories, government registries, market intelligence feeds, and startup
media, then validates, deduplicates, enriches, and ranks them into a single
high-signal result set.`,

		// Runs after config is loaded but before the subcommand's RunE;
		// builds and injects the application container.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := discovery.LoadConfig(viper.GetViper())
			if err != nil {
				return fmt.Errorf("load discovery config: %w", err)
			}
			appInstance, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application services: %w", err)
			}
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			cmd.SetContext(ctx)
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(App); ok && appInstance != nil {
				appInstance.Close()
			}
		},
	}

	cobra.OnInitialize(config.InitConfig)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	cmd.AddCommand(newDiscoverCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := logging.InitLogger(viper.GetBool("log.development")); err != nil {
		panic(err)
	}

	if err := newRootCmd().Execute(); err != nil {
		logging.L.Fatal("Command execution failed", zap.Error(err))
	}
}
