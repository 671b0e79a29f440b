// Package kafka provides a Kafka-backed eventstream publisher.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/papercomputeco/recall/pkg/eventstream"
)

const defaultWriteTimeout = 5 * time.Second

// Config holds the Kafka publisher configuration.
type Config struct {
	// Brokers is the list of bootstrap broker addresses.
	Brokers []string

	// Topic is the topic insight events are written to.
	Topic string

	// WriteTimeout bounds a single publish (defaults to 5s).
	WriteTimeout time.Duration
}

// Publisher writes insight events to a Kafka topic.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Kafka publisher for the given brokers and topic.
func NewPublisher(c Config) (*Publisher, error) {
	if len(c.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if c.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}

	timeout := c.WriteTimeout
	if timeout == 0 {
		timeout = defaultWriteTimeout
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  c.Topic,
		Balancer:               &kafka.LeastBytes{},
		WriteTimeout:           timeout,
		AllowAutoTopicCreation: true,
	}

	return &Publisher{writer: writer}, nil
}

// PublishInsight serializes the event and writes it keyed by event ID.
func (p *Publisher) PublishInsight(ctx context.Context, event *eventstream.InsightStoredEvent) error {
	if event == nil {
		return eventstream.ErrNilInsightEvent
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling insight event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EventID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("writing insight event: %w", err)
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
