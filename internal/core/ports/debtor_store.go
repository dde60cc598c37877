package ports

import (
	"context"

	"farmdesk/internal/core/domain/model/ledger"
)

// DebtorSnapshotStore keeps the last computed debtor listing so that
// processes share it between refreshes.
type DebtorSnapshotStore interface {
	// Load returns the stored snapshot and false when none is stored.
	Load(ctx context.Context) ([]ledger.Debtor, bool, error)
	Save(ctx context.Context, debtors []ledger.Debtor) error
	Clear(ctx context.Context) error
}
