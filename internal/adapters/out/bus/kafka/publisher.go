// Package kafka publishes domain events to a Kafka topic.
package kafka

import (
	"context"
	"fmt"

	"farmdesk/internal/adapters/out/bus"
	"farmdesk/internal/core/domain/events"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes one message per event, keyed by the event's partition key
// so events of one entity or customer stay ordered.
type Publisher struct {
	writer messageWriter
}

// NewPublisher writes to topic on brokers, keyed by each event's partition key.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

// NewPublisherWithWriter is used by tests to substitute the writer.
func NewPublisherWithWriter(w messageWriter) *Publisher {
	return &Publisher{writer: w}
}

// Publish writes evts in a single batch. Events of one entity share a partition.
func (p *Publisher) Publish(ctx context.Context, evts ...events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(evts))
	for _, evt := range evts {
		data, err := bus.Encode(evt)
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(evt.PartitionKey()),
			Value: data,
			Headers: []kafka.Header{
				{Key: "event-name", Value: []byte(evt.EventName())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

// Close flushes pending writes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
