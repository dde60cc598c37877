package commands

import (
	"errors"
	"fmt"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/payment"
	"farmdesk/internal/pkg/errs"
	"farmdesk/internal/pkg/guard"
)

var ErrUpdatePaymentStatusCommandIsNotConstructed = errors.New(
	"UpdatePaymentStatusCommand must be created via NewUpdatePaymentStatusCommand constructor",
)

// UpdatePaymentStatusCommand advances the payment status of an order or a
// reservation. paidAmount is only meaningful for PartiallyPaid; zero keeps
// the amount already recorded.
type UpdatePaymentStatusCommand struct { //nolint:recvcheck //using for validation
	id         fulfillment.ID
	status     payment.Status
	paidAmount int64

	guard guard.ConstructorGuard
}

func NewUpdatePaymentStatusCommand(
	id fulfillment.ID,
	status payment.Status,
	paidAmount int64,
) (UpdatePaymentStatusCommand, error) {
	var amountErr error
	if paidAmount < 0 {
		amountErr = errs.NewValueIsInvalidErrorWithCause("paidAmount", fmt.Errorf("%d is negative", paidAmount))
	}
	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		amountErr,
	); err != nil {
		return UpdatePaymentStatusCommand{}, err
	}

	return UpdatePaymentStatusCommand{
		id:         id,
		status:     status,
		paidAmount: paidAmount,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePaymentStatusCommandIsNotConstructed)
}

func (c UpdatePaymentStatusCommand) ID() fulfillment.ID {
	return c.id
}

func (c UpdatePaymentStatusCommand) Status() payment.Status {
	return c.status
}

func (c UpdatePaymentStatusCommand) PaidAmount() int64 {
	return c.paidAmount
}
