package bus

import (
	"context"
	"log/slog"

	"farmdesk/internal/core/domain/events"
)

// LogPublisher writes events to the log. It is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher tags its records with component=LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "LogPublisher")}
}

// Publish logs each event at info level.
func (p *LogPublisher) Publish(ctx context.Context, evts ...events.Event) error {
	for _, evt := range evts {
		p.logger.InfoContext(ctx, "event",
			"name", evt.EventName(),
			"key", evt.PartitionKey(),
			"id", evt.EventID().String(),
		)
	}
	return nil
}

// Close is a no-op.
func (p *LogPublisher) Close() error {
	return nil
}
