package commands

import (
	"errors"
	"fmt"

	"farmdesk/internal/pkg/errs"
	"farmdesk/internal/pkg/guard"
)

var ErrDeleteLedgerEntryCommandIsNotConstructed = errors.New(
	"DeleteLedgerEntryCommand must be created via NewDeleteLedgerEntryCommand constructor",
)

// DeleteLedgerEntryCommand removes one ledger entry by id.
type DeleteLedgerEntryCommand struct { //nolint:recvcheck //using for validation
	ledgerID int64

	guard guard.ConstructorGuard
}

func NewDeleteLedgerEntryCommand(ledgerID int64) (DeleteLedgerEntryCommand, error) {
	if ledgerID <= 0 {
		return DeleteLedgerEntryCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"ledgerId", fmt.Errorf("%d is not positive", ledgerID),
		)
	}
	return DeleteLedgerEntryCommand{ledgerID: ledgerID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteLedgerEntryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteLedgerEntryCommandIsNotConstructed)
}

func (c DeleteLedgerEntryCommand) LedgerID() int64 {
	return c.ledgerID
}
