package commands

import (
	"errors"
	"strings"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/pkg/errs"
	"farmdesk/internal/pkg/guard"
)

var ErrCompleteShipmentCommandIsNotConstructed = errors.New(
	"CompleteShipmentCommand must be created via NewCompleteShipmentCommand constructor",
)

// CompleteShipmentCommand hands an order to a carrier.
// A zero shippingDate means today.
type CompleteShipmentCommand struct { //nolint:recvcheck //using for validation
	id       fulfillment.ID
	shipment fulfillment.Shipment
	memo     string

	guard guard.ConstructorGuard
}

func NewCompleteShipmentCommand(
	salesID, carrier, trackingNumber string,
	shippingDate kernel.Date,
	memo string,
) (CompleteShipmentCommand, error) {
	cmd := CompleteShipmentCommand{
		memo:  strings.TrimSpace(memo),
		guard: guard.NewConstructorGuard(),
	}

	id, idErr := fulfillment.NewOrderID(salesID)
	var carrierErr error
	if strings.TrimSpace(carrier) == "" {
		carrierErr = errs.NewValueIsRequiredError("carrier")
	}
	if err := errors.Join(idErr, carrierErr); err != nil {
		return CompleteShipmentCommand{}, err
	}

	cmd.id = id
	cmd.shipment = fulfillment.NewShipment(carrier, trackingNumber, shippingDate)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCompleteShipmentCommandIsNotConstructed)
}

func (c CompleteShipmentCommand) ID() fulfillment.ID {
	return c.id
}

func (c CompleteShipmentCommand) Shipment() fulfillment.Shipment {
	return c.shipment
}

func (c CompleteShipmentCommand) Memo() string {
	return c.memo
}
