package commands

import (
	"context"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/pkg/keylock"
)

// UpdateExperienceStatusCommandHandler applies reservation status transitions.
// The memo line is appended only when the transition succeeds.
type UpdateExperienceStatusCommandHandler struct {
	executor transitionExecutor
}

func NewUpdateExperienceStatusCommandHandler(
	uowFactory UoWFactory,
	locks *keylock.Locker,
	notifier Notifier,
	clock kernel.Clock,
) UpdateExperienceStatusCommandHandler {
	return UpdateExperienceStatusCommandHandler{
		executor: newTransitionExecutor(uowFactory, locks, notifier, clock),
	}
}

// Handle applies a reservation transition and appends the memo, if any.
func (h UpdateExperienceStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateExperienceStatusCommand,
) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	return h.executor.run(ctx, cmd.ID(), func(e *fulfillment.Entity) (fulfillment.TransitionOutcome, error) {
		out, err := e.TransitionTo(cmd.Status(), cmd.ProceedWithOutstandingBalance())
		if err != nil {
			return out, err
		}
		if appendMemo(e, cmd.AppendMemo()) {
			out.Changed = true
		}
		return out, nil
	})
}
