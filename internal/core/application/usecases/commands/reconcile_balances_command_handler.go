package commands

import (
	"context"
	"log/slog"

	"farmdesk/internal/pkg/keylock"
)

// ReconcileReport lists the customers whose ledger or balance was repaired.
type ReconcileReport struct {
	Checked  int
	Repaired []string
}

// ReconcileBalancesCommandHandler walks every customer under its lock.
type ReconcileBalancesCommandHandler struct {
	uowFactory LedgerUoWFactory
	locks      *keylock.Locker
	logger     *slog.Logger
}

func NewReconcileBalancesCommandHandler(
	uowFactory LedgerUoWFactory,
	locks *keylock.Locker,
	logger *slog.Logger,
) ReconcileBalancesCommandHandler {
	return ReconcileBalancesCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		logger:     logger.With("component", "balance_reconciler"),
	}
}

// Handle recomputes the running balances of every customer and stops at the first failure.
func (h ReconcileBalancesCommandHandler) Handle(ctx context.Context, cmd ReconcileBalancesCommand) (ReconcileReport, error) {
	if err := cmd.Validate(); err != nil {
		return ReconcileReport{}, err
	}

	ids, err := h.customerIDs(ctx)
	if err != nil {
		return ReconcileReport{}, err
	}

	var report ReconcileReport
	for _, id := range ids {
		if err = ctx.Err(); err != nil {
			return report, err
		}

		repaired, repairErr := h.reconcile(ctx, id)
		if repairErr != nil {
			return report, repairErr
		}
		report.Checked++
		if repaired {
			report.Repaired = append(report.Repaired, id)
			h.logger.WarnContext(ctx, "Customer balance repaired", "customer_id", id)
		}
	}
	return report, nil
}

func (h ReconcileBalancesCommandHandler) customerIDs(ctx context.Context) ([]string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customers, err := uow.CustomerRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(customers))
	for _, c := range customers {
		ids = append(ids, c.ID())
	}
	return ids, nil
}

func (h ReconcileBalancesCommandHandler) reconcile(ctx context.Context, customerID string) (bool, error) {
	unlock, err := h.locks.Lock(ctx, customerKey(customerID))
	if err != nil {
		return false, err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CustomerRepository().Get(ctx, customerID)
	if err != nil {
		return false, err
	}

	book, err := uow.LedgerRepository().GetBook(ctx, customerID)
	if err != nil {
		return false, err
	}

	drifted := book.Drifted()
	if err = uow.LedgerRepository().UpdateRunningBalances(ctx, drifted); err != nil {
		return false, err
	}

	balanceChanged := c.SyncBalance(book.Balance())
	if balanceChanged {
		if err = uow.CustomerRepository().Update(ctx, c); err != nil {
			return false, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return len(drifted) > 0 || balanceChanged, nil
}
