package lifecycle

import (
	"fmt"
	"strings"

	"farmdesk/internal/pkg/errs"
)

// Status is a fulfillment status. Each value belongs to exactly one Kind, so
// OrderCancelled and ReservationCancelled are distinct values even though both
// are presented as "Cancelled".
type Status int

const (
	Unknown Status = iota

	Received
	PendingPayment
	PaymentConfirmed
	PreparingShipment
	Shipping
	Delivered
	OrderCancelled

	Waiting
	Confirmed
	Completed
	ReservationCancelled
)

type statusInfo struct {
	kind  Kind
	name  string
	label string
}

// getStatusInfo maps every valid status to its kind, English name and the Korean label
// used by the storefront and by historical records.
func getStatusInfo() map[Status]statusInfo {
	return map[Status]statusInfo{
		Received:             {Order, "Received", "접수"},
		PendingPayment:       {Order, "PendingPayment", "입금대기"},
		PaymentConfirmed:     {Order, "PaymentConfirmed", "입금완료"},
		PreparingShipment:    {Order, "PreparingShipment", "배송준비"},
		Shipping:             {Order, "Shipping", "배송중"},
		Delivered:            {Order, "Delivered", "배송완료"},
		OrderCancelled:       {Order, "Cancelled", "취소"},
		Waiting:              {Reservation, "Waiting", "예약대기"},
		Confirmed:            {Reservation, "Confirmed", "예약완료"},
		Completed:            {Reservation, "Completed", "체험완료"},
		ReservationCancelled: {Reservation, "Cancelled", "예약취소"},
	}
}

// Validate checks that s is a known status.
func (s Status) Validate() error {
	if _, ok := getStatusInfo()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ValidateFor checks that s is a known status of the given kind.
func (s Status) ValidateFor(kind Kind) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.Kind() != kind {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a %s status", s, kind))
	}
	return nil
}

// Kind returns the entity kind owning s, or UnknownKind.
func (s Status) Kind() Kind {
	return getStatusInfo()[s].kind
}

// String returns the English name, "Unknown" for invalid values.
func (s Status) String() string {
	if info, ok := getStatusInfo()[s]; ok {
		return info.name
	}
	return "Unknown"
}

// Label returns the Korean label.
func (s Status) Label() string {
	return getStatusInfo()[s].label
}

// IsCancelled reports whether s is the cancelled status of its kind.
func (s Status) IsCancelled() bool {
	return s == OrderCancelled || s == ReservationCancelled
}

// Cancelled returns the cancelled status of kind.
func Cancelled(kind Kind) Status {
	if kind == Reservation {
		return ReservationCancelled
	}
	return OrderCancelled
}

// ParseStatus resolves an English name (case insensitive) or a Korean label
// within the given kind.
func ParseStatus(kind Kind, s string) (Status, error) {
	trimmed := strings.TrimSpace(s)
	for status, info := range getStatusInfo() {
		if info.kind != kind {
			continue
		}
		if strings.EqualFold(info.name, trimmed) || info.label == trimmed {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid %s status", s, kind))
}
