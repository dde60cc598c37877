package commands

import (
	"context"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/pkg/keylock"
)

// CompleteShipmentCommandHandler records courier details and moves an order to
// Shipping. Shipping an unpaid order posts the outstanding amount as debt, once.
type CompleteShipmentCommandHandler struct {
	executor transitionExecutor
}

func NewCompleteShipmentCommandHandler(
	uowFactory UoWFactory,
	locks *keylock.Locker,
	notifier Notifier,
	clock kernel.Clock,
) CompleteShipmentCommandHandler {
	return CompleteShipmentCommandHandler{
		executor: newTransitionExecutor(uowFactory, locks, notifier, clock),
	}
}

// Handle records the shipment and moves the order to Shipping.
func (h CompleteShipmentCommandHandler) Handle(ctx context.Context, cmd CompleteShipmentCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	today := h.executor.today()
	return h.executor.run(ctx, cmd.ID(), func(e *fulfillment.Entity) (fulfillment.TransitionOutcome, error) {
		out, err := e.Ship(cmd.Shipment(), today)
		if err != nil {
			return out, err
		}
		if appendMemo(e, cmd.Memo()) {
			out.Changed = true
		}
		return out, nil
	})
}

// appendMemo adds text to the entity memo and reports whether the memo changed.
func appendMemo(e *fulfillment.Entity, text string) bool {
	before := e.Memo()
	e.AppendMemo(text)
	return e.Memo() != before
}
