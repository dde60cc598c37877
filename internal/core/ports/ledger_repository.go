package ports

import (
	"context"

	"farmdesk/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for customer ledger entries.
type LedgerRepository interface {
	// GetBook loads every entry of the customer in ledger order.
	// A customer without entries yields an empty book.
	GetBook(ctx context.Context, customerID string) (*ledger.Book, error)

	// Add inserts an unsaved entry and returns it with its assigned id.
	Add(ctx context.Context, entry ledger.Entry) (ledger.Entry, error)

	// UpdateRunningBalances rewrites the running balance of saved entries.
	UpdateRunningBalances(ctx context.Context, entries []ledger.Entry) error

	// Delete removes an entry. Unknown ids return errs.ObjectNotFoundError.
	Delete(ctx context.Context, id int64) error

	// CustomerOf returns the owner of an entry. Unknown ids return errs.ObjectNotFoundError.
	CustomerOf(ctx context.Context, id int64) (string, error)
}
