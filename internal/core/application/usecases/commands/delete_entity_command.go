package commands

import (
	"errors"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/pkg/guard"
)

var ErrDeleteEntityCommandIsNotConstructed = errors.New(
	"DeleteEntityCommand must be created via NewDeleteEntityCommand constructor",
)

// DeleteEntityCommand removes an order (delete_sale) or a reservation
// (delete_experience_reservation). Ledger history is kept.
type DeleteEntityCommand struct { //nolint:recvcheck //using for validation
	id fulfillment.ID

	guard guard.ConstructorGuard
}

func NewDeleteEntityCommand(id fulfillment.ID) (DeleteEntityCommand, error) {
	if err := id.Validate(); err != nil {
		return DeleteEntityCommand{}, err
	}
	return DeleteEntityCommand{id: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteEntityCommand) Validate() error {
	return c.guard.Validate(ErrDeleteEntityCommandIsNotConstructed)
}

func (c DeleteEntityCommand) ID() fulfillment.ID {
	return c.id
}
