package queries

import (
	"context"

	"farmdesk/internal/core/domain/model/ledger"
)

// DebtorSource yields the current debtor list. Both DebtorReader and the
// debtor cache satisfy it.
type DebtorSource interface {
	Debtors(ctx context.Context) ([]ledger.Debtor, error)
}

type GetLedgerDebtorsQueryResponse struct {
	CustomerID string
	Name       string
	Balance    int64
}

type GetLedgerDebtorsQueryHandler struct {
	source DebtorSource
}

func NewGetLedgerDebtorsQueryHandler(source DebtorSource) GetLedgerDebtorsQueryHandler {
	return GetLedgerDebtorsQueryHandler{source: source}
}

// Handle returns debtors ordered by balance, largest first.
func (h GetLedgerDebtorsQueryHandler) Handle(
	ctx context.Context,
	query GetLedgerDebtorsQuery,
) ([]GetLedgerDebtorsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	debtors, err := h.source.Debtors(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]GetLedgerDebtorsQueryResponse, 0, len(debtors))
	for _, d := range debtors {
		if d.Balance == 0 {
			continue
		}
		resp = append(resp, GetLedgerDebtorsQueryResponse{
			CustomerID: d.CustomerID,
			Name:       d.Name,
			Balance:    d.Balance,
		})
	}
	return resp, nil
}
