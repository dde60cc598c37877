package commands

import (
	"errors"
	"strings"

	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/ledger"
	"farmdesk/internal/pkg/errs"
	"farmdesk/internal/pkg/guard"
)

var ErrCreateLedgerEntryCommandIsNotConstructed = errors.New(
	"CreateLedgerEntryCommand must be created via NewCreateLedgerEntryCommand constructor",
)

// CreateLedgerEntryCommand registers a manual ledger entry, typically a deposit.
//
// Example:
//
//	cmd, err := NewCreateLedgerEntryCommand("C1", ledger.Deposit, 10000, kernel.Date{}, "bank transfer", "")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	fmt.Println(result.Entry.RunningBalance(), result.CurrentBalance)
type CreateLedgerEntryCommand struct { //nolint:recvcheck //using for validation
	customerID      string
	transactionType ledger.TransactionType
	amount          int64
	transactionDate kernel.Date
	description     string
	referenceID     string

	guard guard.ConstructorGuard
}

// NewCreateLedgerEntryCommand validates the entry fields. A zero
// transactionDate means today. The amount sign is normalized by the type.
func NewCreateLedgerEntryCommand(
	customerID string,
	transactionType ledger.TransactionType,
	amount int64,
	transactionDate kernel.Date,
	description, referenceID string,
) (CreateLedgerEntryCommand, error) {
	var customerErr error
	if strings.TrimSpace(customerID) == "" {
		customerErr = errs.NewValueIsRequiredError("customerId")
	}
	_, amountErr := transactionType.Normalize(amount)

	if err := errors.Join(customerErr, transactionType.Validate(), amountErr); err != nil {
		return CreateLedgerEntryCommand{}, err
	}

	return CreateLedgerEntryCommand{
		customerID:      strings.TrimSpace(customerID),
		transactionType: transactionType,
		amount:          amount,
		transactionDate: transactionDate,
		description:     description,
		referenceID:     referenceID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateLedgerEntryCommand) Validate() error {
	return c.guard.Validate(ErrCreateLedgerEntryCommandIsNotConstructed)
}

func (c CreateLedgerEntryCommand) CustomerID() string {
	return c.customerID
}

func (c CreateLedgerEntryCommand) TransactionType() ledger.TransactionType {
	return c.transactionType
}

func (c CreateLedgerEntryCommand) Amount() int64 {
	return c.amount
}

func (c CreateLedgerEntryCommand) TransactionDate() kernel.Date {
	return c.transactionDate
}

func (c CreateLedgerEntryCommand) Description() string {
	return c.description
}

func (c CreateLedgerEntryCommand) ReferenceID() string {
	return c.referenceID
}
