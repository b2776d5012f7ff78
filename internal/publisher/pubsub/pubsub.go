// Package pubsub implements a Google Cloud Pub/Sub publisher for run
// completion events.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
)

// Publisher wraps a Pub/Sub topic.
type Publisher struct {
	topic *pubsub.Topic
}

// New creates a Publisher for the provided topic.
func New(topic *pubsub.Topic) *Publisher {
	return &Publisher{topic: topic}
}

// Publish marshals the run event to JSON and publishes it with the run ID as
// a message attribute, so subscribers can filter without decoding the body.
// The topic argument is informational only; the wrapped topic decides the
// destination.
func (p *Publisher) Publish(ctx context.Context, _ string, event discovery.RunEvent) (string, error) {
	if p.topic == nil {
		return "", fmt.Errorf("pubsub topic is not configured")
	}
	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal run event: %w", err)
	}

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"run_id": event.RunID},
	})
	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("publish run event: %w", err)
	}
	return id, nil
}

var _ discovery.Publisher = (*Publisher)(nil)
