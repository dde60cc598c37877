package errs

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrIllegalTransition           = errors.New("illegal status transition")
	ErrIllegalPaymentTransition    = errors.New("illegal payment transition")
	ErrPaymentRequired             = errors.New("payment required")
	ErrNoEligibleItems             = errors.New("no eligible items")
	ErrTimeout                     = errors.New("operation timed out")
	ErrConflictingConcurrentUpdate = errors.New("conflicting concurrent update")
)

// IllegalTransitionError reports a status change the lifecycle graph does not allow.
type IllegalTransitionError struct {
	Kind string
	From string
	To   string
}

// NewIllegalTransitionError creates an IllegalTransitionError.
func NewIllegalTransitionError(kind, from, to string) *IllegalTransitionError {
	return &IllegalTransitionError{
		Kind: kind,
		From: from,
		To:   to,
	}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrIllegalTransition, e.Kind, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// IllegalPaymentTransitionError reports a payment status change that does not
// strictly increase completeness, or one attempted on a cancelled entity.
type IllegalPaymentTransitionError struct {
	From  string
	To    string
	Cause error
}

// NewIllegalPaymentTransitionError creates an IllegalPaymentTransitionError.
func NewIllegalPaymentTransitionError(from, to string) *IllegalPaymentTransitionError {
	return &IllegalPaymentTransitionError{
		From: from,
		To:   to,
	}
}

// NewIllegalPaymentTransitionErrorWithCause creates an IllegalPaymentTransitionError with a cause.
func NewIllegalPaymentTransitionErrorWithCause(from, to string, cause error) *IllegalPaymentTransitionError {
	return &IllegalPaymentTransitionError{
		From:  from,
		To:    to,
		Cause: cause,
	}
}

func (e *IllegalPaymentTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s to %s", ErrIllegalPaymentTransition, e.From, e.To)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *IllegalPaymentTransitionError) Unwrap() error {
	return ErrIllegalPaymentTransition
}

// PaymentRequiredError is returned when a gated transition is attempted on an
// entity that is not fully paid and the caller did not acknowledge the balance.
type PaymentRequiredError struct {
	ID          string
	Outstanding int64
}

// NewPaymentRequiredError creates a PaymentRequiredError.
func NewPaymentRequiredError(id string, outstanding int64) *PaymentRequiredError {
	return &PaymentRequiredError{
		ID:          id,
		Outstanding: outstanding,
	}
}

func (e *PaymentRequiredError) Error() string {
	return fmt.Sprintf("%s: %s has outstanding balance %d", ErrPaymentRequired, e.ID, e.Outstanding)
}

func (e *PaymentRequiredError) Unwrap() error {
	return ErrPaymentRequired
}

// TimeoutError is returned when a deadline expires while waiting on a lock,
// the store or the carrier feed.
type TimeoutError struct {
	Operation string
	Cause     error
}

// NewTimeoutError creates a TimeoutError for the named operation.
func NewTimeoutError(operation string, cause error) *TimeoutError {
	return &TimeoutError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *TimeoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrTimeout, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrTimeout, e.Operation)
}

func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}

// ConflictingConcurrentUpdateError is returned when a row changed between read and write.
type ConflictingConcurrentUpdateError struct {
	ParamName string
	ID        any
}

// NewConflictingConcurrentUpdateError creates a ConflictingConcurrentUpdateError.
func NewConflictingConcurrentUpdateError(paramName string, id any) *ConflictingConcurrentUpdateError {
	return &ConflictingConcurrentUpdateError{
		ParamName: paramName,
		ID:        id,
	}
}

func (e *ConflictingConcurrentUpdateError) Error() string {
	return fmt.Sprintf("%s: %s %v was modified by another writer", ErrConflictingConcurrentUpdate, e.ParamName, e.ID)
}

func (e *ConflictingConcurrentUpdateError) Unwrap() error {
	return ErrConflictingConcurrentUpdate
}

// FromContext maps a context error to the taxonomy. Deadline expiry becomes a
// TimeoutError; cancellation and any other error are returned unchanged.
func FromContext(operation string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(operation, err)
	}
	return err
}
