// Package queries contains read operations over the ledger and customers.
// Queries bypass the aggregates and read straight from the database.
package queries

import (
	"errors"
	"strings"

	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/ledger"
	"farmdesk/internal/pkg/errs"
	"farmdesk/internal/pkg/guard"
)

var ErrGetLedgerQueryIsNotConstructed = errors.New(
	"GetLedgerQuery must be created via NewGetLedgerQuery constructor",
)

// GetLedgerQuery reads one customer's ledger, optionally limited to a date window.
//
// Example:
//
//	query, err := NewGetLedgerQuery("C-1", kernel.Date{}, kernel.Date{})
//	resp, err := handler.Handle(ctx, query)
//	for entry, err := range resp.Entries {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(entry.TransactionDate, entry.Amount, entry.RunningBalance)
//	}
type GetLedgerQuery struct { //nolint:recvcheck //using for validation
	customerID string
	window     ledger.Window

	guard guard.ConstructorGuard
}

// NewGetLedgerQuery accepts zero dates as open bounds.
func NewGetLedgerQuery(customerID string, from, to kernel.Date) (GetLedgerQuery, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return GetLedgerQuery{}, errs.NewValueIsRequiredError("customerId")
	}

	window, err := ledger.NewWindow(from, to)
	if err != nil {
		return GetLedgerQuery{}, err
	}

	return GetLedgerQuery{
		customerID: customerID,
		window:     window,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetLedgerQuery) Validate() error {
	return q.guard.Validate(ErrGetLedgerQueryIsNotConstructed)
}

func (q GetLedgerQuery) CustomerID() string {
	return q.customerID
}

func (q GetLedgerQuery) Window() ledger.Window {
	return q.window
}
