// Package noop provides a publisher that silently discards run events, used
// when no message queue is configured.
package noop

import (
	"context"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
)

// Publisher drops every run event.
type Publisher struct{}

// New returns a no-op Publisher.
func New() *Publisher {
	return &Publisher{}
}

// Publish discards the event and reports success.
func (*Publisher) Publish(context.Context, string, discovery.RunEvent) (string, error) {
	return "", nil
}

var _ discovery.Publisher = (*Publisher)(nil)
