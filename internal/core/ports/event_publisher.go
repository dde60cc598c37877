package ports

import (
	"context"

	"farmdesk/internal/core/domain/events"
)

// EventPublisher delivers domain events to the message bus after the unit of
// work that produced them has committed.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.Event) error
	Close() error
}
