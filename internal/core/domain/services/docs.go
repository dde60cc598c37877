// Package services contains domain services that operate across several
// fulfillment entities.
//
// BatchPlanner decides, for a batch action over a mixed selection of orders
// and reservations, which items are eligible and why the others are skipped,
// and applies the action to a single entity. Executing the plan item by item
// (locking, persistence, ledger postings) is the job of the application layer.
package services
