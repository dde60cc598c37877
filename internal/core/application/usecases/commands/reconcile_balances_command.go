package commands

import (
	"errors"

	"farmdesk/internal/pkg/guard"
)

var ErrReconcileBalancesCommandIsNotConstructed = errors.New(
	"ReconcileBalancesCommand must be created via NewReconcileBalancesCommand constructor",
)

// ReconcileBalancesCommand recomputes every ledger from its amounts and
// repairs stored running balances and customer balances that drifted.
type ReconcileBalancesCommand struct {
	guard guard.ConstructorGuard
}

func NewReconcileBalancesCommand() ReconcileBalancesCommand {
	return ReconcileBalancesCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ReconcileBalancesCommand) Validate() error {
	return c.guard.Validate(ErrReconcileBalancesCommandIsNotConstructed)
}
