// Package payment tracks how much of an entity's amount has been settled.
//
// Payment status moves one way only:
//
//	Unpaid ─> PartiallyPaid ─> Paid
//	   └───────────────────────┘
package payment

import (
	"fmt"
	"strings"

	"farmdesk/internal/pkg/errs"
)

// Status is the settlement state of an order or reservation. It is orthogonal
// to the fulfillment status.
type Status int

const (
	Unknown Status = iota
	Unpaid
	PartiallyPaid
	Paid
)

func getStatusStrings() map[Status][2]string {
	return map[Status][2]string{
		Unpaid:        {"Unpaid", "미결제"},
		PartiallyPaid: {"PartiallyPaid", "부분결제"},
		Paid:          {"Paid", "결제완료"},
	}
}

// Validate rejects Unknown and out of range values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s Status) String() string {
	if names, ok := getStatusStrings()[s]; ok {
		return names[0]
	}
	return "Unknown"
}

// Label returns the Korean label.
func (s Status) Label() string {
	return getStatusStrings()[s][1]
}

// CanAdvanceTo reports whether moving to next strictly increases completeness.
func (s Status) CanAdvanceTo(next Status) bool {
	return s.Validate() == nil && next.Validate() == nil && next > s
}

// Advance returns next, or an IllegalPaymentTransitionError when next does not
// strictly increase completeness.
func (s Status) Advance(next Status) (Status, error) {
	if !s.CanAdvanceTo(next) {
		return s, errs.NewIllegalPaymentTransitionError(s.String(), next.String())
	}
	return next, nil
}

// Parse accepts the English name (case insensitive) or the Korean label.
func Parse(s string) (Status, error) {
	trimmed := strings.TrimSpace(s)
	for status, names := range getStatusStrings() {
		if strings.EqualFold(names[0], trimmed) || names[1] == trimmed {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not a valid payment status", s))
}
