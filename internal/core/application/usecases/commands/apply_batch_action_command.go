package commands

import (
	"errors"
	"slices"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/services"
	"farmdesk/internal/pkg/errs"
	"farmdesk/internal/pkg/guard"
)

var ErrApplyBatchActionCommandIsNotConstructed = errors.New(
	"ApplyBatchActionCommand must be created via NewApplyBatchActionCommand constructor",
)

// ApplyBatchActionCommand applies one action to a selection of orders and
// reservations. Duplicate ids are collapsed, keeping the first occurrence.
type ApplyBatchActionCommand struct { //nolint:recvcheck //using for validation
	ids     []fulfillment.ID
	action  services.BatchAction
	options services.BatchOptions

	guard guard.ConstructorGuard
}

// NewApplyBatchActionCommand validates the selection and the action.
// options.Today is filled in by the handler.
func NewApplyBatchActionCommand(
	ids []fulfillment.ID,
	action services.BatchAction,
	options services.BatchOptions,
) (ApplyBatchActionCommand, error) {
	var selectionErr error
	if len(ids) == 0 {
		selectionErr = errs.NewValueIsRequiredError("ids")
	}

	unique := make([]fulfillment.ID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			selectionErr = errors.Join(selectionErr, err)
			continue
		}
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}

	if err := errors.Join(selectionErr, action.Validate()); err != nil {
		return ApplyBatchActionCommand{}, err
	}

	return ApplyBatchActionCommand{
		ids:     unique,
		action:  action,
		options: options,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyBatchActionCommand) Validate() error {
	return c.guard.Validate(ErrApplyBatchActionCommandIsNotConstructed)
}

func (c ApplyBatchActionCommand) IDs() []fulfillment.ID {
	return slices.Clone(c.ids)
}

func (c ApplyBatchActionCommand) Action() services.BatchAction {
	return c.action
}

func (c ApplyBatchActionCommand) Options() services.BatchOptions {
	return c.options
}
