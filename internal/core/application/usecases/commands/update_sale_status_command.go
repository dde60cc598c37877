package commands

import (
	"errors"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/lifecycle"
	"farmdesk/internal/pkg/guard"
)

var ErrUpdateSaleStatusCommandIsNotConstructed = errors.New(
	"UpdateSaleStatusCommand must be created via NewUpdateSaleStatusCommand constructor",
)

// UpdateSaleStatusCommand moves an order to a new lifecycle status.
//
// Example:
//
//	cmd, err := NewUpdateSaleStatusCommand("S-20260314-01", lifecycle.Delivered, true)
//	if err != nil {
//	    return fmt.Errorf("invalid status update: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type UpdateSaleStatusCommand struct { //nolint:recvcheck //using for validation
	id      fulfillment.ID
	status  lifecycle.Status
	proceed bool

	guard guard.ConstructorGuard
}

// NewUpdateSaleStatusCommand creates a status update for the order salesID.
// proceedWithOutstandingBalance accepts an unpaid remainder as customer debt
// when the target status is payment gated.
func NewUpdateSaleStatusCommand(
	salesID string,
	status lifecycle.Status,
	proceedWithOutstandingBalance bool,
) (UpdateSaleStatusCommand, error) {
	cmd := UpdateSaleStatusCommand{
		proceed: proceedWithOutstandingBalance,
		guard:   guard.NewConstructorGuard(),
	}

	id, idErr := fulfillment.NewOrderID(salesID)
	if err := errors.Join(
		idErr,
		status.ValidateFor(lifecycle.Order),
	); err != nil {
		return UpdateSaleStatusCommand{}, err
	}

	cmd.id = id
	cmd.status = status
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateSaleStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSaleStatusCommandIsNotConstructed)
}

func (c UpdateSaleStatusCommand) ID() fulfillment.ID {
	return c.id
}

func (c UpdateSaleStatusCommand) Status() lifecycle.Status {
	return c.status
}

func (c UpdateSaleStatusCommand) ProceedWithOutstandingBalance() bool {
	return c.proceed
}
