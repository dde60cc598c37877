// Package ledger models a customer's debt ledger.
//
// A ledger is an ordered list of entries. The order is (occurredAt, id): by
// transaction date, then by insertion. Every entry carries the running balance
// up to and including itself:
//
//	balance[0] = amount[0]
//	balance[i] = balance[i-1] + amount[i]
//
// The balance is never stored independently of the amounts; Book recomputes the
// affected suffix whenever an entry is inserted (possibly back-dated) or deleted.
// A positive balance means the customer owes money.
package ledger
