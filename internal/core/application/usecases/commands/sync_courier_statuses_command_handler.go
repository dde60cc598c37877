package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/lifecycle"
	"farmdesk/internal/core/ports"
	"farmdesk/internal/pkg/errs"
	"farmdesk/internal/pkg/keylock"

	"golang.org/x/sync/errgroup"
)

// SyncError is a per-order failure of a courier sync run.
type SyncError struct {
	ID     fulfillment.ID
	Reason string
}

// SyncReport counts the orders moved to Delivered and lists per-order failures.
type SyncReport struct {
	Count  int
	Errors []SyncError
}

// SyncCourierStatusesCommandHandler moves Shipping orders to Delivered once the
// carrier reports them delivered.
//
// Every carrier call runs under its own timeout, and orders are processed in
// parallel up to the configured concurrency. One unreachable carrier never
// aborts the run. Re-running is harmless: delivered orders are no longer
// selected, and an order that was cancelled in the meantime is reported as an
// error instead of being delivered.
type SyncCourierStatusesCommandHandler struct {
	courier     courierSync
	concurrency int
	logger      *slog.Logger
}

func NewSyncCourierStatusesCommandHandler(
	uowFactory UoWFactory,
	locks *keylock.Locker,
	notifier Notifier,
	clock kernel.Clock,
	tracker ports.CarrierTracker,
	callTimeout time.Duration,
	concurrency int,
	logger *slog.Logger,
) SyncCourierStatusesCommandHandler {
	if concurrency <= 0 {
		concurrency = 1
	}
	return SyncCourierStatusesCommandHandler{
		courier: courierSync{
			executor:    newTransitionExecutor(uowFactory, locks, notifier, clock),
			tracker:     tracker,
			callTimeout: callTimeout,
		},
		concurrency: concurrency,
		logger:      logger.With("component", "courier_sync"),
	}
}

// Handle tracks every shipping order with a tracking number.
func (h SyncCourierStatusesCommandHandler) Handle(ctx context.Context, cmd SyncCourierStatusesCommand) (SyncReport, error) {
	if err := cmd.Validate(); err != nil {
		return SyncReport{}, err
	}

	orders, err := h.shipping(ctx)
	if err != nil {
		return SyncReport{}, err
	}

	var (
		mu     sync.Mutex
		report SyncReport
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)

	for _, order := range orders {
		g.Go(func() error {
			_, result, syncErr := h.courier.sync(gctx, order)
			delivered := result.Changed

			mu.Lock()
			defer mu.Unlock()
			if syncErr != nil {
				report.Errors = append(report.Errors, SyncError{ID: order.ID(), Reason: syncErr.Error()})
				return nil
			}
			if delivered {
				report.Count++
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(orders) > 0 {
		h.logger.InfoContext(ctx, "Courier sync finished",
			"checked", len(orders),
			"delivered", report.Count,
			"errors", len(report.Errors),
		)
	}
	return report, nil
}

// courierSync asks the carrier about one Shipping order and moves it to
// Delivered when the carrier says so.
type courierSync struct {
	executor    transitionExecutor
	tracker     ports.CarrierTracker
	callTimeout time.Duration
}

// sync returns the carrier's answer and the transition result, which has
// Changed set only when the order was moved to Delivered.
func (c courierSync) sync(ctx context.Context, order *fulfillment.Entity) (ports.TrackingResult, TransitionResult, error) {
	callCtx := ctx
	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}

	shipment := order.Shipment()
	tracking, err := c.tracker.Track(callCtx, ports.TrackingRequest{
		Carrier:        shipment.Carrier(),
		TrackingNumber: shipment.TrackingNumber(),
		ShippingDate:   shipment.ShippingDate(),
	})
	if err != nil {
		return ports.TrackingResult{}, TransitionResult{ID: order.ID()}, errs.FromContext("track "+order.ID().String(), err)
	}
	if !tracking.Delivered {
		return tracking, TransitionResult{ID: order.ID(), From: order.Status(), To: order.Status()}, nil
	}

	result, err := c.executor.run(ctx, order.ID(), func(e *fulfillment.Entity) (fulfillment.TransitionOutcome, error) {
		return e.TransitionTo(lifecycle.Delivered, true)
	})
	if err != nil {
		return tracking, TransitionResult{ID: order.ID()}, errs.FromContext("deliver "+order.ID().String(), err)
	}
	return tracking, result, nil
}

func (h SyncCourierStatusesCommandHandler) shipping(ctx context.Context) ([]*fulfillment.Entity, error) {
	uow := h.courier.executor.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.EntityRepository().GetAllShippingWithTracking(ctx)
}
