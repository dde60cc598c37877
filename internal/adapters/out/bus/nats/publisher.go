// Package nats publishes domain events as NATS subjects.
package nats

import (
	"context"
	"fmt"

	"farmdesk/internal/adapters/out/bus"
	"farmdesk/internal/core/domain/events"

	"github.com/nats-io/nats.go"
)

type conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Drain() error
}

// Publisher sends each event to "<prefix>.<event name>".
type Publisher struct {
	nc     conn
	prefix string
}

// Connect dials url and returns a publisher owning the connection.
func Connect(url, prefix string) (*Publisher, error) {
	nc, err := nats.Connect(url, nats.Name("farmdesk"))
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return NewPublisher(nc, prefix), nil
}

// NewPublisher publishes on subjects under prefix.
func NewPublisher(nc conn, prefix string) *Publisher {
	return &Publisher{nc: nc, prefix: prefix}
}

// Subject is prefix followed by the event name.
func (p *Publisher) Subject(evt events.Event) string {
	if p.prefix == "" {
		return evt.EventName()
	}
	return p.prefix + "." + evt.EventName()
}

// Publish flushes after the batch so a nil error means the server received it.
func (p *Publisher) Publish(ctx context.Context, evts ...events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	for _, evt := range evts {
		data, err := bus.Encode(evt)
		if err != nil {
			return err
		}
		if err := p.nc.Publish(p.Subject(evt), data); err != nil {
			return fmt.Errorf("nats publish %s: %w", evt.EventName(), err)
		}
	}

	return p.nc.FlushWithContext(ctx)
}

// Close drains the connection.
func (p *Publisher) Close() error {
	return p.nc.Drain()
}
