package store

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresConfig controls the connection pool used for run history.
type PostgresConfig struct {
	DSN             string
	RunsTable       string
	StartupsTable   string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type execCloser interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Close()
}

// PostgresStore writes run summaries and startup rows into Postgres.
type PostgresStore struct {
	pool          execCloser
	runsTable     string
	startupsTable string
}

// NewPostgresStore creates a Postgres-backed RunStore using the provided
// config.
func NewPostgresStore(ctx context.Context, cfg PostgresConfig) (*PostgresStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required")
	}
	runsTable, startupsTable, err := tableNames(cfg.RunsTable, cfg.StartupsTable)
	if err != nil {
		return nil, err
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &PostgresStore{
		pool:          pool,
		runsTable:     runsTable,
		startupsTable: startupsTable,
	}, nil
}

// NewPostgresStoreWithPool constructs a store from an existing pool
// (primarily for testing).
func NewPostgresStoreWithPool(pool execCloser, runsTable, startupsTable string) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	runs, startups, err := tableNames(runsTable, startupsTable)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{pool: pool, runsTable: runs, startupsTable: startups}, nil
}

func tableNames(runs, startups string) (string, string, error) {
	if runs == "" {
		runs = "discovery_runs"
	}
	if startups == "" {
		startups = "discovered_startups"
	}
	for _, table := range []string{runs, startups} {
		if !validTableName.MatchString(table) {
			return "", "", fmt.Errorf("invalid table name %q", table)
		}
	}
	return runs, startups, nil
}

// Close releases the underlying pool resources.
func (s *PostgresStore) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}

// SaveRun inserts the run summary row, then one row per startup.
func (s *PostgresStore) SaveRun(ctx context.Context, out discovery.Output) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("run store is not configured")
	}
	meta := out.Metadata
	if meta.RunID == "" {
		return fmt.Errorf("run id is required")
	}

	runQuery := fmt.Sprintf(`
INSERT INTO %s (
	run_id,
	generated_at,
	total_count,
	target_count,
	sources_used,
	high_confidence,
	medium_confidence,
	low_confidence
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8
)`, s.runsTable)

	runArgs := []any{
		meta.RunID,
		meta.GeneratedAt,
		meta.TotalCount,
		meta.TargetCount,
		meta.SourcesUsed,
		meta.HighConfidence,
		meta.MediumConfidence,
		meta.LowConfidence,
	}
	if _, err := s.pool.Exec(ctx, runQuery, runArgs...); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	startupQuery := fmt.Sprintf(`
INSERT INTO %s (
	startup_id,
	run_id,
	company_name,
	source,
	website,
	description,
	location,
	industry,
	funding_stage,
	employee_count,
	discovered_date,
	confidence,
	validation_reason
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13
)`, s.startupsTable)

	for _, startup := range out.Startups {
		args := []any{
			startup.ID,
			meta.RunID,
			startup.Name,
			startup.Source,
			startup.Website,
			startup.Description,
			startup.Location,
			startup.Industry,
			startup.FundingStage,
			startup.EmployeeCount,
			startup.DiscoveredAt,
			string(startup.Confidence),
			startup.ValidationReason,
		}
		if _, err := s.pool.Exec(ctx, startupQuery, args...); err != nil {
			return fmt.Errorf("insert startup %s: %w", startup.ID, err)
		}
	}
	return nil
}

var _ discovery.RunStore = (*PostgresStore)(nil)
