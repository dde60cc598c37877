package commands

import (
	"errors"

	"farmdesk/internal/pkg/guard"
)

var ErrSyncCourierStatusesCommandIsNotConstructed = errors.New(
	"SyncCourierStatusesCommand must be created via NewSyncCourierStatusesCommand constructor",
)

// SyncCourierStatusesCommand reconciles shipping orders with the carrier feed.
// This is a parameterless command used by batch_sync_courier_statuses and the
// scheduled sync job.
type SyncCourierStatusesCommand struct {
	guard guard.ConstructorGuard
}

func NewSyncCourierStatusesCommand() SyncCourierStatusesCommand {
	return SyncCourierStatusesCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c SyncCourierStatusesCommand) Validate() error {
	return c.guard.Validate(ErrSyncCourierStatusesCommandIsNotConstructed)
}
