package commands

import (
	"context"

	"farmdesk/internal/core/domain/events"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/pkg/keylock"
)

// DeleteEntityCommandHandler removes an entity under its lock.
type DeleteEntityCommandHandler struct {
	uowFactory EntityUoWFactory
	locks      *keylock.Locker
	notifier   Notifier
	clock      kernel.Clock
}

func NewDeleteEntityCommandHandler(
	uowFactory EntityUoWFactory,
	locks *keylock.Locker,
	notifier Notifier,
	clock kernel.Clock,
) DeleteEntityCommandHandler {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return DeleteEntityCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle deletes an order or reservation.
func (h DeleteEntityCommandHandler) Handle(ctx context.Context, cmd DeleteEntityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock, err := h.locks.Lock(ctx, entityKey(cmd.ID()))
	if err != nil {
		return err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.EntityRepository().Delete(ctx, cmd.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, events.NewEntityDeleted(cmd.ID(), h.clock.Now()))
	return nil
}
