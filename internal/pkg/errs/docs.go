// Package errs provides standardized error types for the fulfillment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers two groups of errors:
//   - generic value errors: ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError and ObjectNotFoundError
//   - lifecycle errors raised by status and payment transitions, batch
//     processing and the ledger: IllegalTransitionError,
//     IllegalPaymentTransitionError, PaymentRequiredError, TimeoutError,
//     ConflictingConcurrentUpdateError and the ErrNoEligibleItems sentinel
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so callers classify with errors.Is
//
// Example:
//
//	_, err := registry.Check(lifecycle.Order, from, to)
//	if errors.Is(err, errs.ErrIllegalTransition) {
//	    // report the item as skipped
//	}
package errs
