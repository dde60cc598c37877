// Package ports defines the contracts between the application core and its
// adapters: persistence, the message bus, the carrier tracking feed and the
// debtor snapshot store.
package ports

import (
	"context"

	"farmdesk/internal/core/domain/model/fulfillment"
)

// EntityRepository defines the persistence contract for orders and reservations.
type EntityRepository interface {
	// Add persists a new entity. The id must not exist yet.
	Add(ctx context.Context, entity *fulfillment.Entity) error

	// Update persists changes to an existing entity using optimistic
	// concurrency: the stored version must equal entity.Version(). A mismatch
	// returns errs.ConflictingConcurrentUpdateError. On success the entity's
	// version is advanced.
	Update(ctx context.Context, entity *fulfillment.Entity) error

	// Get retrieves an entity by id. Unknown ids return errs.ObjectNotFoundError.
	Get(ctx context.Context, id fulfillment.ID) (*fulfillment.Entity, error)

	// Delete removes an entity. Ledger history is not touched.
	Delete(ctx context.Context, id fulfillment.ID) error

	// GetAllShippingWithTracking returns orders in Shipping status that carry a
	// tracking number, oldest shipping date first.
	GetAllShippingWithTracking(ctx context.Context) ([]*fulfillment.Entity, error)
}
