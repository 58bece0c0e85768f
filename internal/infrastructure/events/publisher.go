// Package events implements the domain event publisher on Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/osworks/service-orders/internal/core/domain"
)

// KafkaPublisher writes JSON-encoded domain events to a single topic,
// keyed by aggregate ID so consumers see per-aggregate ordering.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Publish delivers one event. The event name travels as a message header
// so consumers can route without decoding the payload.
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event.Name)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
