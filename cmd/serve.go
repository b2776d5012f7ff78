package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/api"
	"github.com/JakeFAU/startup-discovery/internal/discovery"
)

// newServeCmd creates the 'serve' subcommand, which exposes discovery runs
// over HTTP alongside health and metrics endpoints.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves the discovery HTTP API",
		Long: `Starts an HTTP server exposing health checks, Prometheus metrics,
an endpoint to trigger discovery runs, and the latest run's results.`,

		RunE: runServeCommand,
	}
	return cmd
}

func runServeCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	logger := appInstance.GetLogger()

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
			logger.Warn("Failed to close collectors", zap.Error(cerr))
		}
	}()

	server := api.NewServer(engine, logger)
	addr := viper.GetString("server.addr")
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	select {
	case serveErr := <-errCh:
		return fmt.Errorf("http server: %w", serveErr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info("HTTP server stopped.")
	return nil
}
