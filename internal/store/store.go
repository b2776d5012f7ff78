// Package store persists discovery run history. The Postgres store keeps
// one row per run plus one row per discovered startup; the no-op store backs
// runs that do not need history.
package store

import (
	"context"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
)

// NoOpStore discards run history. Used when no database is configured.
type NoOpStore struct{}

// NewNoOpStore returns a RunStore that records nothing.
func NewNoOpStore() *NoOpStore {
	return &NoOpStore{}
}

// SaveRun does nothing.
func (*NoOpStore) SaveRun(context.Context, discovery.Output) error {
	return nil
}

// Close does nothing.
func (*NoOpStore) Close() error {
	return nil
}

var _ discovery.RunStore = (*NoOpStore)(nil)
