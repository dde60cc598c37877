package fulfillment

import (
	"fmt"
	"strconv"
	"strings"

	"farmdesk/internal/core/domain/model/lifecycle"
	"farmdesk/internal/pkg/errs"
)

// ID identifies an order (by sales id) or a reservation (by reservation number).
type ID struct {
	kind lifecycle.Kind
	key  string
}

// NewOrderID wraps a sales id.
func NewOrderID(salesID string) (ID, error) {
	salesID = strings.TrimSpace(salesID)
	if salesID == "" {
		return ID{}, errs.NewValueIsRequiredError("salesId")
	}
	return ID{kind: lifecycle.Order, key: salesID}, nil
}

// NewReservationID wraps a positive reservation number.
func NewReservationID(reservationID int64) (ID, error) {
	if reservationID <= 0 {
		return ID{}, errs.NewValueIsInvalidErrorWithCause(
			"reservation_id", fmt.Errorf("%d is not a positive number", reservationID),
		)
	}
	return ID{kind: lifecycle.Reservation, key: strconv.FormatInt(reservationID, 10)}, nil
}

// NewID builds an ID from its stored parts.
func NewID(kind lifecycle.Kind, key string) (ID, error) {
	switch kind {
	case lifecycle.Order:
		return NewOrderID(key)
	case lifecycle.Reservation:
		n, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return ID{}, errs.NewValueIsInvalidErrorWithCause("reservation_id", err)
		}
		return NewReservationID(n)
	default:
		return ID{}, kind.Validate()
	}
}

// ParseID parses the "kind:key" form produced by String.
func ParseID(s string) (ID, error) {
	kindPart, key, ok := strings.Cut(s, ":")
	if !ok {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%q is not kind:key", s))
	}
	kind, err := lifecycle.ParseKind(kindPart)
	if err != nil {
		return ID{}, err
	}
	return NewID(kind, key)
}

func (id ID) Kind() lifecycle.Kind {
	return id.kind
}

// Key returns the sales id or the decimal reservation number.
func (id ID) Key() string {
	return id.key
}

// String returns "kind:key", e.g. "order:20240315-001" or "reservation:42".
func (id ID) String() string {
	return id.kind.String() + ":" + id.key
}

func (id ID) IsZero() bool {
	return id.kind == lifecycle.UnknownKind && id.key == ""
}

func (id ID) Validate() error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("id")
	}
	return id.kind.Validate()
}
