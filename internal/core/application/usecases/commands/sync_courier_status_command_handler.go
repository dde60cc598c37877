package commands

import (
	"context"
	"time"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/lifecycle"
	"farmdesk/internal/core/ports"
	"farmdesk/internal/pkg/errs"
	"farmdesk/internal/pkg/keylock"
)

// CourierStatus is the carrier's view of one order after a sync.
type CourierStatus struct {
	Transition TransitionResult
	Status     lifecycle.Status
	Level      int
	Location   string
}

// SyncCourierStatusCommandHandler syncs a single order with the carrier feed.
//
// A Delivered order is returned as is without calling the carrier. Any other
// order that is not Shipping fails with errs.IllegalTransitionError, and a
// Shipping order without a tracking number with errs.ValueIsRequiredError.
type SyncCourierStatusCommandHandler struct {
	courier courierSync
}

func NewSyncCourierStatusCommandHandler(
	uowFactory UoWFactory,
	locks *keylock.Locker,
	notifier Notifier,
	clock kernel.Clock,
	tracker ports.CarrierTracker,
	callTimeout time.Duration,
) SyncCourierStatusCommandHandler {
	return SyncCourierStatusCommandHandler{
		courier: courierSync{
			executor:    newTransitionExecutor(uowFactory, locks, notifier, clock),
			tracker:     tracker,
			callTimeout: callTimeout,
		},
	}
}

// Handle tracks one shipping order and marks it Delivered when the carrier reports delivery.
// A Delivered order is returned as is; any other status is an illegal transition.
func (h SyncCourierStatusCommandHandler) Handle(ctx context.Context, cmd SyncCourierStatusCommand) (CourierStatus, error) {
	if err := cmd.Validate(); err != nil {
		return CourierStatus{}, err
	}

	order, err := h.load(ctx, cmd.ID())
	if err != nil {
		return CourierStatus{}, err
	}

	switch order.Status() {
	case lifecycle.Delivered:
		return CourierStatus{
			Transition: TransitionResult{
				ID:            order.ID(),
				From:          order.Status(),
				To:            order.Status(),
				PaymentStatus: order.PaymentStatus(),
			},
			Status: order.Status(),
		}, nil
	case lifecycle.Shipping:
	default:
		return CourierStatus{}, errs.NewIllegalTransitionError(
			lifecycle.Order.String(), order.Status().String(), lifecycle.Delivered.String(),
		)
	}

	if !order.Shipment().IsTrackable() {
		return CourierStatus{}, errs.NewValueIsRequiredError("trackingNumber")
	}

	tracking, result, err := h.courier.sync(ctx, order)
	if err != nil {
		return CourierStatus{}, err
	}
	if !result.Changed {
		result.PaymentStatus = order.PaymentStatus()
	}

	return CourierStatus{
		Transition: result,
		Status:     result.To,
		Level:      tracking.Level,
		Location:   tracking.Location,
	}, nil
}

func (h SyncCourierStatusCommandHandler) load(ctx context.Context, id fulfillment.ID) (*fulfillment.Entity, error) {
	uow := h.courier.executor.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.EntityRepository().Get(ctx, id)
}
