package services

import (
	"fmt"
	"strings"

	"farmdesk/internal/core/domain/model/lifecycle"
	"farmdesk/internal/pkg/errs"
)

// BatchAction is an operation a user applies to a selection of entities.
type BatchAction int

const (
	UnknownAction BatchAction = iota
	MarkPendingPayment
	ConfirmPayment
	Ship
	CompleteDelivery
	Cancel
)

func getActionNames() map[BatchAction]string {
	return map[BatchAction]string{
		MarkPendingPayment: "mark_pending_payment",
		ConfirmPayment:     "confirm_payment",
		Ship:               "ship",
		CompleteDelivery:   "complete_delivery",
		Cancel:             "cancel",
	}
}

func (a BatchAction) String() string {
	if name, ok := getActionNames()[a]; ok {
		return name
	}
	return "unknown"
}

func (a BatchAction) Validate() error {
	if _, ok := getActionNames()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid batch action", a))
	}
	return nil
}

// Target returns the status the action moves an entity of kind to, and false
// when the action does not apply to that kind.
func (a BatchAction) Target(kind lifecycle.Kind) (lifecycle.Status, bool) {
	switch {
	case a == MarkPendingPayment && kind == lifecycle.Order:
		return lifecycle.PendingPayment, true
	case a == ConfirmPayment && kind == lifecycle.Order:
		return lifecycle.PaymentConfirmed, true
	case a == ConfirmPayment && kind == lifecycle.Reservation:
		return lifecycle.Confirmed, true
	case a == Ship && kind == lifecycle.Order:
		return lifecycle.Shipping, true
	case a == CompleteDelivery && kind == lifecycle.Order:
		return lifecycle.Delivered, true
	case a == CompleteDelivery && kind == lifecycle.Reservation:
		return lifecycle.Completed, true
	case a == Cancel && kind.Validate() == nil:
		return lifecycle.Cancelled(kind), true
	default:
		return lifecycle.Unknown, false
	}
}

// ParseBatchAction accepts snake_case ("confirm_payment") or CamelCase ("ConfirmPayment") names.
func ParseBatchAction(s string) (BatchAction, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	for action, name := range getActionNames() {
		if strings.ReplaceAll(name, "_", "") == normalized {
			return action, nil
		}
	}
	return UnknownAction, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid batch action", s))
}
