package commands

import (
	"errors"
	"strings"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/lifecycle"
	"farmdesk/internal/pkg/guard"
)

var ErrUpdateExperienceStatusCommandIsNotConstructed = errors.New(
	"UpdateExperienceStatusCommand must be created via NewUpdateExperienceStatusCommand constructor",
)

// UpdateExperienceStatusCommand moves an experience reservation to a new status
// and optionally appends a line to its memo.
type UpdateExperienceStatusCommand struct { //nolint:recvcheck //using for validation
	id         fulfillment.ID
	status     lifecycle.Status
	appendMemo string
	proceed    bool

	guard guard.ConstructorGuard
}

func NewUpdateExperienceStatusCommand(
	reservationID int64,
	status lifecycle.Status,
	appendMemo string,
	proceedWithOutstandingBalance bool,
) (UpdateExperienceStatusCommand, error) {
	cmd := UpdateExperienceStatusCommand{
		appendMemo: strings.TrimSpace(appendMemo),
		proceed:    proceedWithOutstandingBalance,
		guard:      guard.NewConstructorGuard(),
	}

	id, idErr := fulfillment.NewReservationID(reservationID)
	if err := errors.Join(
		idErr,
		status.ValidateFor(lifecycle.Reservation),
	); err != nil {
		return UpdateExperienceStatusCommand{}, err
	}

	cmd.id = id
	cmd.status = status
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateExperienceStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateExperienceStatusCommandIsNotConstructed)
}

func (c UpdateExperienceStatusCommand) ID() fulfillment.ID {
	return c.id
}

func (c UpdateExperienceStatusCommand) Status() lifecycle.Status {
	return c.status
}

func (c UpdateExperienceStatusCommand) AppendMemo() string {
	return c.appendMemo
}

func (c UpdateExperienceStatusCommand) ProceedWithOutstandingBalance() bool {
	return c.proceed
}
