// Package nop provides a no-op eventstream publisher.
package nop

import (
	"context"

	"github.com/papercomputeco/recall/pkg/eventstream"
)

// Publisher is a no-op eventstream publisher used for tests and disabled mode.
type Publisher struct{}

// NewPublisher creates a new no-op eventstream publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// PublishInsight validates input and otherwise does nothing.
func (p *Publisher) PublishInsight(_ context.Context, event *eventstream.InsightStoredEvent) error {
	if event == nil {
		return eventstream.ErrNilInsightEvent
	}

	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}
