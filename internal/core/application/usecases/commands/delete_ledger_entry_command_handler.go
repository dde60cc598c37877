package commands

import (
	"context"

	"farmdesk/internal/core/domain/events"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/pkg/keylock"
)

// DeleteLedgerEntryCommandHandler removes an entry, recomputes every running
// balance after it and stores the new terminal balance on the customer.
type DeleteLedgerEntryCommandHandler struct {
	uowFactory LedgerUoWFactory
	locks      *keylock.Locker
	notifier   Notifier
	clock      kernel.Clock
}

func NewDeleteLedgerEntryCommandHandler(
	uowFactory LedgerUoWFactory,
	locks *keylock.Locker,
	notifier Notifier,
	clock kernel.Clock,
) DeleteLedgerEntryCommandHandler {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return DeleteLedgerEntryCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle returns the customer's balance after the deletion.
func (h DeleteLedgerEntryCommandHandler) Handle(ctx context.Context, cmd DeleteLedgerEntryCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	customerID, err := h.ownerOf(ctx, cmd.LedgerID())
	if err != nil {
		return 0, err
	}

	unlock, err := h.locks.Lock(ctx, customerKey(customerID))
	if err != nil {
		return 0, err
	}
	defer unlock()

	var result LedgerEntryResult
	err = retryOnConflict(ctx, func() error {
		var deleteErr error
		result, deleteErr = h.delete(ctx, customerID, cmd.LedgerID())
		return deleteErr
	})
	if err != nil {
		return 0, err
	}

	h.notifier.Notify(ctx, events.NewLedgerEntryDeleted(result.Entry, result.CurrentBalance, h.clock.Now()))
	return result.CurrentBalance, nil
}

func (h DeleteLedgerEntryCommandHandler) ownerOf(ctx context.Context, ledgerID int64) (string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.LedgerRepository().CustomerOf(ctx, ledgerID)
}

func (h DeleteLedgerEntryCommandHandler) delete(
	ctx context.Context,
	customerID string,
	ledgerID int64,
) (LedgerEntryResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return LedgerEntryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, balance, err := deleteLedgerEntry(ctx, uow, customerID, ledgerID)
	if err != nil {
		return LedgerEntryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return LedgerEntryResult{}, err
	}

	return LedgerEntryResult{Entry: removed, CurrentBalance: balance}, nil
}
