package commands

import (
	"context"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/pkg/keylock"
)

// UpdatePaymentStatusCommandHandler advances payment status. Payments only move
// forward and never change on cancelled entities.
type UpdatePaymentStatusCommandHandler struct {
	executor transitionExecutor
}

func NewUpdatePaymentStatusCommandHandler(
	uowFactory UoWFactory,
	locks *keylock.Locker,
	notifier Notifier,
	clock kernel.Clock,
) UpdatePaymentStatusCommandHandler {
	return UpdatePaymentStatusCommandHandler{
		executor: newTransitionExecutor(uowFactory, locks, notifier, clock),
	}
}

// Handle changes the payment status without touching the lifecycle status.
func (h UpdatePaymentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdatePaymentStatusCommand,
) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	return h.executor.run(ctx, cmd.ID(), func(e *fulfillment.Entity) (fulfillment.TransitionOutcome, error) {
		out := fulfillment.TransitionOutcome{From: e.Status(), To: e.Status()}
		if err := e.UpdatePayment(cmd.Status(), cmd.PaidAmount()); err != nil {
			return out, err
		}
		out.Changed = true
		return out, nil
	})
}
