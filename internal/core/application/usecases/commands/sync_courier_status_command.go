package commands

import (
	"errors"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/pkg/guard"
)

var ErrSyncCourierStatusCommandIsNotConstructed = errors.New(
	"SyncCourierStatusCommand must be created via NewSyncCourierStatusCommand constructor",
)

// SyncCourierStatusCommand checks one order's parcel with the carrier.
type SyncCourierStatusCommand struct { //nolint:recvcheck //using for validation
	id fulfillment.ID

	guard guard.ConstructorGuard
}

func NewSyncCourierStatusCommand(salesID string) (SyncCourierStatusCommand, error) {
	id, err := fulfillment.NewOrderID(salesID)
	if err != nil {
		return SyncCourierStatusCommand{}, err
	}
	return SyncCourierStatusCommand{id: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c SyncCourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrSyncCourierStatusCommandIsNotConstructed)
}

func (c SyncCourierStatusCommand) ID() fulfillment.ID {
	return c.id
}
