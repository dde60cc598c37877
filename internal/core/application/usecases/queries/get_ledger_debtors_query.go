package queries

import (
	"errors"

	"farmdesk/internal/pkg/guard"
)

var ErrGetLedgerDebtorsQueryIsNotConstructed = errors.New(
	"GetLedgerDebtorsQuery must be created via NewGetLedgerDebtorsQuery constructor",
)

// GetLedgerDebtorsQuery lists customers with a non-zero balance.
type GetLedgerDebtorsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetLedgerDebtorsQuery() GetLedgerDebtorsQuery {
	return GetLedgerDebtorsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetLedgerDebtorsQuery) Validate() error {
	return q.guard.Validate(ErrGetLedgerDebtorsQueryIsNotConstructed)
}
