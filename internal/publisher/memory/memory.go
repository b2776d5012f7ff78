// Package memory records run-completion events in memory, standing in for a
// real queue in tests and local runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
)

// Publisher keeps every published run event for later inspection.
type Publisher struct {
	mu     sync.RWMutex
	events []Event
}

// Event is one recorded publish call.
type Event struct {
	Topic string
	Run   discovery.RunEvent
}

// New returns an empty memory Publisher.
func New() *Publisher {
	return &Publisher{}
}

// Publish records the event and returns a locally generated message ID
// derived from the run.
func (p *Publisher) Publish(_ context.Context, topic string, event discovery.RunEvent) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, Event{Topic: topic, Run: event})
	return fmt.Sprintf("memory-%s-%d", event.RunID, len(p.events)), nil
}

// Events returns a copy of the recorded publishes in order.
func (p *Publisher) Events() []Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// Last returns the most recently published event, if any.
func (p *Publisher) Last() (Event, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.events) == 0 {
		return Event{}, false
	}
	return p.events[len(p.events)-1], true
}

var _ discovery.Publisher = (*Publisher)(nil)
