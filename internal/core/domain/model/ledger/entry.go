package ledger

import (
	"errors"
	"fmt"
	"strings"

	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/pkg/errs"
)

// Entry is one ledger line. Entries are values; Book hands out copies.
type Entry struct {
	id             int64
	customerID     string
	occurredAt     kernel.Date
	txType         TransactionType
	amount         int64
	runningBalance int64
	description    string
	referenceID    string
}

// NewEntry creates an unsaved entry. The amount sign is normalized by txType.
// referenceID optionally links the entry to the order or reservation that caused it.
func NewEntry(
	customerID string,
	txType TransactionType,
	amount int64,
	occurredAt kernel.Date,
	description, referenceID string,
) (Entry, error) {
	normalized, normErr := txType.Normalize(amount)

	var customerErr, dateErr error
	if strings.TrimSpace(customerID) == "" {
		customerErr = errs.NewValueIsRequiredError("customerId")
	}
	if occurredAt.IsZero() {
		dateErr = errs.NewValueIsRequiredError("transactionDate")
	}
	if err := errors.Join(customerErr, normErr, dateErr); err != nil {
		return Entry{}, err
	}

	return Entry{
		customerID:  strings.TrimSpace(customerID),
		occurredAt:  occurredAt,
		txType:      txType,
		amount:      normalized,
		description: strings.TrimSpace(description),
		referenceID: strings.TrimSpace(referenceID),
	}, nil
}

// EntryParams carries the persisted state of an Entry.
type EntryParams struct {
	ID             int64
	CustomerID     string
	OccurredAt     kernel.Date
	Type           TransactionType
	Amount         int64
	RunningBalance int64
	Description    string
	ReferenceID    string
}

// RestoreEntry rebuilds a saved entry. The stored amount must already carry the sign of its type.
func RestoreEntry(p EntryParams) (Entry, error) {
	if p.ID <= 0 {
		return Entry{}, errs.NewValueIsInvalidErrorWithCause("ledgerId", fmt.Errorf("%d is not a positive id", p.ID))
	}

	e, err := NewEntry(p.CustomerID, p.Type, p.Amount, p.OccurredAt, p.Description, p.ReferenceID)
	if err != nil {
		return Entry{}, err
	}
	if e.amount != p.Amount {
		return Entry{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%d has the wrong sign for %s", p.Amount, p.Type),
		)
	}

	e.id = p.ID
	e.runningBalance = p.RunningBalance
	return e, nil
}

// WithID returns a copy of an unsaved entry carrying the id assigned by storage.
func (e Entry) WithID(id int64) (Entry, error) {
	if e.id != 0 {
		return e, errs.NewValueIsInvalidErrorWithCause("ledgerId", fmt.Errorf("entry already has id %d", e.id))
	}
	if id <= 0 {
		return e, errs.NewValueIsInvalidErrorWithCause("ledgerId", fmt.Errorf("%d is not a positive id", id))
	}
	e.id = id
	return e, nil
}

// ID is zero until the entry is saved.
func (e Entry) ID() int64 {
	return e.id
}

func (e Entry) CustomerID() string {
	return e.customerID
}

func (e Entry) OccurredAt() kernel.Date {
	return e.occurredAt
}

func (e Entry) Type() TransactionType {
	return e.txType
}

// Amount is signed: positive increases debt.
func (e Entry) Amount() int64 {
	return e.amount
}

// RunningBalance is the customer's balance after this entry.
func (e Entry) RunningBalance() int64 {
	return e.runningBalance
}

func (e Entry) Description() string {
	return e.description
}

func (e Entry) ReferenceID() string {
	return e.referenceID
}

// less orders entries by (occurredAt, id). Unsaved entries sort after saved
// entries of the same day, matching the id storage will assign them.
func (e Entry) less(other Entry) bool {
	if c := e.occurredAt.Compare(other.occurredAt); c != 0 {
		return c < 0
	}
	switch {
	case e.id == 0:
		return false
	case other.id == 0:
		return true
	default:
		return e.id < other.id
	}
}
