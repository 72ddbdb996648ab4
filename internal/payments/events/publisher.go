package events

import (
	"context"
	"fmt"

	"smarthost/internal/payments/types"
	"smarthost/pkg/kafka"
)

const SchemaVersion = "1"

type Publisher interface {
	Publish(ctx context.Context, event types.Event) error
	Close() error
}

// MessageWriter is the subset of *kafka.Producer the publisher needs.
type MessageWriter interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer MessageWriter
	source string
}

func NewKafkaPublisher(writer MessageWriter, source string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		source: source,
	}
}

// Publish keys the message by booking so events for one booking stay on one
// partition in order.
func (p *KafkaPublisher) Publish(ctx context.Context, event types.Event) error {
	if event.BookingID == "" {
		return fmt.Errorf("payment event %s has no booking id", event.TransactionID)
	}

	msg := kafka.NewMessage().
		WithKey(event.BookingID).
		WithValue(event).
		WithEventID("").
		WithEventType(event.Type()).
		WithCorrelationID(event.TransactionID).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		Build()

	if err := p.writer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s for %s: %w", event.Type(), event.TransactionID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. Used when payment events are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, types.Event) error { return nil }

func (NopPublisher) Close() error { return nil }
