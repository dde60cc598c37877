package lifecycle

import (
	"fmt"
	"strings"

	"farmdesk/internal/pkg/errs"
)

// Kind distinguishes the two fulfillment entity types sharing one lifecycle engine.
type Kind int

const (
	UnknownKind Kind = iota
	Order
	Reservation
)

func (k Kind) String() string {
	switch k {
	case Order:
		return "order"
	case Reservation:
		return "reservation"
	default:
		return "unknown"
	}
}

// Validate rejects UnknownKind and out of range values.
func (k Kind) Validate() error {
	if k != Order && k != Reservation {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

// ParseKind accepts "order" and "reservation" in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "order":
		return Order, nil
	case "reservation":
		return Reservation, nil
	default:
		return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a valid kind", s))
	}
}
