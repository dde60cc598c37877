// Package notify fans committed domain events out to the event bus and the
// debtor cache.
package notify

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"farmdesk/internal/core/domain/events"
	"farmdesk/internal/core/ports"
)

const defaultPublishTimeout = 5 * time.Second

type cacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// Dispatcher implements the command Notifier. Publishing failures are logged
// and never reach the caller.
type Dispatcher struct {
	publisher ports.EventPublisher
	debtors   cacheInvalidator
	timeout   time.Duration
	logger    *slog.Logger
}

// NewDispatcher accepts a nil debtors cache. A non-positive timeout uses the default.
func NewDispatcher(
	publisher ports.EventPublisher,
	debtors cacheInvalidator,
	timeout time.Duration,
	logger *slog.Logger,
) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &Dispatcher{
		publisher: publisher,
		debtors:   debtors,
		timeout:   timeout,
		logger:    logger.With("component", "Dispatcher"),
	}
}

func (d *Dispatcher) Notify(ctx context.Context, evts ...events.Event) {
	if len(evts) == 0 {
		return
	}

	// The command already committed; a cancelled request must not drop its events.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	if d.debtors != nil && slices.ContainsFunc(evts, events.TouchesLedger) {
		d.debtors.Invalidate(ctx)
	}

	if err := d.publisher.Publish(ctx, evts...); err != nil {
		d.logger.ErrorContext(ctx, "publish events failed",
			"count", len(evts),
			"first", evts[0].EventName(),
			"error", err,
		)
	}
}
