// Package app initializes and holds long-lived application services, acting
// as a dependency injection container.
package app

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	gstorage "cloud.google.com/go/storage"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
	"github.com/JakeFAU/startup-discovery/internal/logging"
	nooppub "github.com/JakeFAU/startup-discovery/internal/publisher/noop"
	gcppub "github.com/JakeFAU/startup-discovery/internal/publisher/pubsub"
	"github.com/JakeFAU/startup-discovery/internal/sink"
	"github.com/JakeFAU/startup-discovery/internal/store"
)

// App holds the shared, long-lived services for the application: the logger,
// the result sink, the run-history store, and the event publisher. It is
// initialized once at startup and passed to the components that need it.
type App struct {
	logger    *zap.Logger
	sink      discovery.Sink
	store     discovery.RunStore
	publisher discovery.Publisher
	topic     string

	pubsubClient *pubsub.Client
}

// GetLogger returns the shared zap logger instance.
func (a *App) GetLogger() *zap.Logger {
	return a.logger
}

// GetSink exposes the configured result sink.
func (a *App) GetSink() discovery.Sink {
	return a.sink
}

// GetStore provides access to the run-history store.
func (a *App) GetStore() discovery.RunStore {
	return a.store
}

// GetPublisher returns the publisher used to announce completed runs.
func (a *App) GetPublisher() discovery.Publisher {
	return a.publisher
}

// GetTopic returns the topic run events are published to.
func (a *App) GetTopic() string {
	return a.topic
}

// NewApp creates and initializes a new App from the application's
// configuration. It reads provider switches from Viper and instantiates the
// matching implementations, failing fast when a critical service cannot be
// initialized.
func NewApp(ctx context.Context, cfg discovery.Config) (*App, error) {
	l := logging.L
	l.Info("Initializing application services...")

	resultSink, err := newSink(ctx, cfg, l)
	if err != nil {
		return nil, err
	}

	runStore, err := newStore(ctx, l)
	if err != nil {
		return nil, err
	}

	a := &App{
		logger: l,
		sink:   resultSink,
		store:  runStore,
		topic:  viper.GetString("queue.gcp.topic_id"),
	}
	if err := a.initPublisher(ctx, l); err != nil {
		return nil, err
	}

	l.Info("Application services initialized successfully.")
	return a, nil
}

func newSink(ctx context.Context, cfg discovery.Config, l *zap.Logger) (discovery.Sink, error) {
	switch provider := viper.GetString("sink.provider"); provider {
	case "gcs":
		bucket := viper.GetString("sink.gcs.bucket_name")
		if bucket == "" {
			return nil, fmt.Errorf("sink provider is 'gcs' but sink.gcs.bucket_name is not set")
		}
		l.Info("Using GCS sink", zap.String("bucket", bucket))
		client, err := gstorage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("create storage client: %w", err)
		}
		return sink.NewGCSSink(client, bucket, viper.GetString("sink.gcs.prefix"), l)
	case "file", "":
		l.Info("Using file sink", zap.String("path", cfg.OutputPath))
		return sink.NewFileSink(cfg.OutputPath, l)
	default:
		return nil, fmt.Errorf("unknown sink provider: %s", provider)
	}
}

func newStore(ctx context.Context, l *zap.Logger) (discovery.RunStore, error) {
	switch provider := viper.GetString("database.provider"); provider {
	case "postgres":
		dsn := viper.GetString("database.postgres.dsn")
		if dsn == "" {
			return nil, fmt.Errorf("database provider is 'postgres' but database.postgres.dsn is not set")
		}
		l.Info("Connecting to PostgreSQL...")
		pg, err := store.NewPostgresStore(ctx, store.PostgresConfig{
			DSN:           dsn,
			RunsTable:     viper.GetString("database.postgres.runs_table"),
			StartupsTable: viper.GetString("database.postgres.startups_table"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return pg, nil
	case "noop", "":
		l.Info("Using No-Op run store. Run history will be discarded.")
		return store.NewNoOpStore(), nil
	default:
		return nil, fmt.Errorf("unknown database provider: %s", provider)
	}
}

func (a *App) initPublisher(ctx context.Context, l *zap.Logger) error {
	switch provider := viper.GetString("queue.provider"); provider {
	case "pubsub":
		projectID := viper.GetString("queue.gcp.project_id")
		topicID := viper.GetString("queue.gcp.topic_id")
		if projectID == "" || topicID == "" {
			return fmt.Errorf("queue provider is 'pubsub' but project_id or topic_id is not set")
		}
		l.Info("Connecting to GCP Pub/Sub", zap.String("topic", topicID))
		client, err := pubsub.NewClient(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to initialize queue: %w", err)
		}
		a.pubsubClient = client
		a.publisher = gcppub.New(client.Topic(topicID))
		return nil
	case "noop", "":
		l.Info("Using No-Op publisher. No messages will be sent.")
		a.publisher = nooppub.New()
		return nil
	default:
		return fmt.Errorf("unknown queue provider: %s", provider)
	}
}

// Close gracefully shuts down all services in the App container. It is
// called by a Cobra hook after the command finishes execution.
func (a *App) Close() {
	a.GetLogger().Info("Shutting down application services...")
	if err := a.GetStore().Close(); err != nil {
		a.GetLogger().Warn("Error closing run store", zap.Error(err))
	}
	if a.pubsubClient != nil {
		if err := a.pubsubClient.Close(); err != nil {
			a.GetLogger().Warn("Error closing pubsub client", zap.Error(err))
		}
	}
	if err := a.GetLogger().Sync(); err != nil {
		// Best effort; logging itself may be failing.
		a.GetLogger().Warn("Error syncing logger on shutdown", zap.Error(err))
	}
}
