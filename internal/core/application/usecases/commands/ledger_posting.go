package commands

import (
	"context"

	"farmdesk/internal/core/domain/model/customer"
	"farmdesk/internal/core/domain/model/ledger"
)

type ledgerRepos interface {
	CustomerRepoFactory
	LedgerRepoFactory
}

// postLedgerEntry appends entry to its customer's book inside the caller's
// transaction, persists every running balance the insert changed and stores
// the new terminal balance on the customer. The caller must hold the
// customer lock.
func postLedgerEntry(ctx context.Context, repos ledgerRepos, entry ledger.Entry) (ledger.Entry, int64, error) {
	c, err := repos.CustomerRepository().Get(ctx, entry.CustomerID())
	if err != nil {
		return ledger.Entry{}, 0, err
	}

	ledgerRepo := repos.LedgerRepository()
	book, err := ledgerRepo.GetBook(ctx, c.ID())
	if err != nil {
		return ledger.Entry{}, 0, err
	}

	posted, shifted, err := book.Post(entry)
	if err != nil {
		return ledger.Entry{}, 0, err
	}

	saved, err := ledgerRepo.Add(ctx, posted)
	if err != nil {
		return ledger.Entry{}, 0, err
	}

	if err = ledgerRepo.UpdateRunningBalances(ctx, shifted); err != nil {
		return ledger.Entry{}, 0, err
	}

	if err = syncCustomerBalance(ctx, repos, c, book.Balance()); err != nil {
		return ledger.Entry{}, 0, err
	}

	return saved, book.Balance(), nil
}

// deleteLedgerEntry removes an entry and recomputes the balances after it.
// The caller must hold the customer lock.
func deleteLedgerEntry(ctx context.Context, repos ledgerRepos, customerID string, id int64) (ledger.Entry, int64, error) {
	c, err := repos.CustomerRepository().Get(ctx, customerID)
	if err != nil {
		return ledger.Entry{}, 0, err
	}

	ledgerRepo := repos.LedgerRepository()
	book, err := ledgerRepo.GetBook(ctx, c.ID())
	if err != nil {
		return ledger.Entry{}, 0, err
	}

	removed, shifted, err := book.Delete(id)
	if err != nil {
		return ledger.Entry{}, 0, err
	}

	if err = ledgerRepo.Delete(ctx, id); err != nil {
		return ledger.Entry{}, 0, err
	}

	if err = ledgerRepo.UpdateRunningBalances(ctx, shifted); err != nil {
		return ledger.Entry{}, 0, err
	}

	if err = syncCustomerBalance(ctx, repos, c, book.Balance()); err != nil {
		return ledger.Entry{}, 0, err
	}

	return removed, book.Balance(), nil
}

func syncCustomerBalance(ctx context.Context, repos ledgerRepos, c *customer.Customer, balance int64) error {
	if !c.SyncBalance(balance) {
		return nil
	}
	return repos.CustomerRepository().Update(ctx, c)
}
