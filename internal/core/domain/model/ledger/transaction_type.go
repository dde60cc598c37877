package ledger

import (
	"errors"
	"fmt"
	"strings"

	"farmdesk/internal/pkg/errs"
)

// TransactionType determines the sign of an entry's amount.
type TransactionType int

const (
	UnknownType TransactionType = iota
	// Sale increases what the customer owes.
	Sale
	// Deposit decreases what the customer owes.
	Deposit
	// Adjustment keeps the sign it was given.
	Adjustment
)

func getTypeStrings() map[TransactionType][2]string {
	return map[TransactionType][2]string{
		Sale:       {"Sale", "매출"},
		Deposit:    {"Deposit", "입금"},
		Adjustment: {"Adjustment", "조정"},
	}
}

func (t TransactionType) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("transactionType", fmt.Errorf("%d is not a valid transaction type", t))
	}
	return nil
}

func (t TransactionType) String() string {
	if names, ok := getTypeStrings()[t]; ok {
		return names[0]
	}
	return "Unknown"
}

// Label returns the Korean label.
func (t TransactionType) Label() string {
	return getTypeStrings()[t][1]
}

// Normalize returns amount with the sign implied by t: Sale is positive,
// Deposit negative, Adjustment unchanged. Zero amounts are rejected.
func (t TransactionType) Normalize(amount int64) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("amount", errors.New("amount must not be zero"))
	}

	switch t {
	case Sale:
		return abs(amount), nil
	case Deposit:
		return -abs(amount), nil
	default:
		return amount, nil
	}
}

// ParseTransactionType accepts the English name (case insensitive) or the Korean label.
// Labels with a parenthesised suffix such as "매출(미수)" match their base label.
func ParseTransactionType(s string) (TransactionType, error) {
	trimmed := strings.TrimSpace(s)
	if base, _, ok := strings.Cut(trimmed, "("); ok {
		trimmed = strings.TrimSpace(base)
	}
	for t, names := range getTypeStrings() {
		if strings.EqualFold(names[0], trimmed) || names[1] == trimmed {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("transactionType", fmt.Errorf("%q is not a valid transaction type", s))
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
