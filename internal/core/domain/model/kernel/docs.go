// Package kernel provides the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifier for published events and batch runs
//   - Date: a calendar day without time of day, used for ledger transaction
//     dates, shipping dates and ledger view windows
//   - Clock: the source of "now", injected so date arithmetic is testable
//
// All values are immutable and safe for concurrent use.
package kernel
