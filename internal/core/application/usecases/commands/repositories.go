// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, per-key serialization,
// transaction management, persistence and post-commit notification.
package commands

import (
	"context"

	"farmdesk/internal/core/domain/events"
	"farmdesk/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// EntityRepoFactory provides access to the order/reservation repository within a transaction.
	EntityRepoFactory interface {
		EntityRepository() ports.EntityRepository
	}

	// CustomerRepoFactory provides access to the customer repository within a transaction.
	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// LedgerRepoFactory provides access to the ledger repository within a transaction.
	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// EntityUoW manages transactions for operations that only touch orders and reservations.
	EntityUoW interface {
		TxManager
		EntityRepoFactory
	}

	// EntityUoWFactory creates new entity unit of work instances.
	EntityUoWFactory interface {
		Create() EntityUoW
	}

	// LedgerUoW manages transactions for ledger postings and balance maintenance.
	// Used when commands only modify a customer and its ledger.
	LedgerUoW interface {
		TxManager
		CustomerRepoFactory
		LedgerRepoFactory
	}

	// LedgerUoWFactory creates new ledger unit of work instances.
	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	// UoW manages transactions across entities, customers and ledgers.
	// Used for status transitions that may post debt to a customer ledger.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   entity, err := uow.EntityRepository().Get(ctx, id)
	//   // ... transition, then post the outstanding amount
	//   book, err := uow.LedgerRepository().GetBook(ctx, entity.CustomerID())
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		EntityRepoFactory
		CustomerRepoFactory
		LedgerRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// Notifier receives the events of a committed unit of work. Delivery is best
// effort: a failing notification never undoes or fails the command.
type Notifier interface {
	Notify(ctx context.Context, evts ...events.Event)
}

// NopNotifier discards every event.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, ...events.Event) {}
