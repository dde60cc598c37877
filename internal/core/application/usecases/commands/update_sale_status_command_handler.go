package commands

import (
	"context"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/pkg/keylock"
)

// UpdateSaleStatusCommandHandler applies order status transitions.
//
// Moving to the current status is a no-op. A payment gated move on an unpaid
// order fails with errs.PaymentRequiredError unless the command acknowledges
// the outstanding balance, in which case the remainder is posted to the
// customer's ledger as a Sale within the same transaction.
type UpdateSaleStatusCommandHandler struct {
	executor transitionExecutor
}

func NewUpdateSaleStatusCommandHandler(
	uowFactory UoWFactory,
	locks *keylock.Locker,
	notifier Notifier,
	clock kernel.Clock,
) UpdateSaleStatusCommandHandler {
	return UpdateSaleStatusCommandHandler{
		executor: newTransitionExecutor(uowFactory, locks, notifier, clock),
	}
}

// Handle moves an order to the requested status and posts its debt when it first becomes Delivered.
func (h UpdateSaleStatusCommandHandler) Handle(ctx context.Context, cmd UpdateSaleStatusCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	return h.executor.run(ctx, cmd.ID(), func(e *fulfillment.Entity) (fulfillment.TransitionOutcome, error) {
		return e.TransitionTo(cmd.Status(), cmd.ProceedWithOutstandingBalance())
	})
}
