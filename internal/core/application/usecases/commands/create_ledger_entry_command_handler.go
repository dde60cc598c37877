package commands

import (
	"context"

	"farmdesk/internal/core/domain/events"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/ledger"
	"farmdesk/internal/pkg/keylock"
)

// LedgerEntryResult is the saved entry together with the customer's new balance.
type LedgerEntryResult struct {
	Entry          ledger.Entry
	CurrentBalance int64
}

// CreateLedgerEntryCommandHandler appends a manual entry to a customer ledger.
// Postings for one customer are serialized on the customer lock; a lost
// version check on the customer row is retried once.
type CreateLedgerEntryCommandHandler struct {
	uowFactory LedgerUoWFactory
	locks      *keylock.Locker
	notifier   Notifier
	clock      kernel.Clock
}

func NewCreateLedgerEntryCommandHandler(
	uowFactory LedgerUoWFactory,
	locks *keylock.Locker,
	notifier Notifier,
	clock kernel.Clock,
) CreateLedgerEntryCommandHandler {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return CreateLedgerEntryCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle appends an entry and returns it with its running balance.
func (h CreateLedgerEntryCommandHandler) Handle(
	ctx context.Context,
	cmd CreateLedgerEntryCommand,
) (LedgerEntryResult, error) {
	if err := cmd.Validate(); err != nil {
		return LedgerEntryResult{}, err
	}

	date := cmd.TransactionDate()
	if date.IsZero() {
		date = kernel.Today(h.clock)
	}

	entry, err := ledger.NewEntry(
		cmd.CustomerID(),
		cmd.TransactionType(),
		cmd.Amount(),
		date,
		cmd.Description(),
		cmd.ReferenceID(),
	)
	if err != nil {
		return LedgerEntryResult{}, err
	}

	unlock, err := h.locks.Lock(ctx, customerKey(cmd.CustomerID()))
	if err != nil {
		return LedgerEntryResult{}, err
	}
	defer unlock()

	var result LedgerEntryResult
	err = retryOnConflict(ctx, func() error {
		var postErr error
		result, postErr = h.post(ctx, entry)
		return postErr
	})
	if err != nil {
		return LedgerEntryResult{}, err
	}

	h.notifier.Notify(ctx, events.NewLedgerEntryPosted(result.Entry, result.CurrentBalance, h.clock.Now()))
	return result, nil
}

func (h CreateLedgerEntryCommandHandler) post(ctx context.Context, entry ledger.Entry) (LedgerEntryResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return LedgerEntryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	saved, balance, err := postLedgerEntry(ctx, uow, entry)
	if err != nil {
		return LedgerEntryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return LedgerEntryResult{}, err
	}

	return LedgerEntryResult{Entry: saved, CurrentBalance: balance}, nil
}
