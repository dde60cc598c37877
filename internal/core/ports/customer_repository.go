package ports

import (
	"context"

	"farmdesk/internal/core/domain/model/customer"
)

// CustomerRepository defines the persistence contract for customers and their
// cached current balance.
type CustomerRepository interface {
	Add(ctx context.Context, c *customer.Customer) error

	// Update stores the balance with an optimistic version check and returns
	// errs.ConflictingConcurrentUpdateError when another writer got there first.
	Update(ctx context.Context, c *customer.Customer) error

	Get(ctx context.Context, id string) (*customer.Customer, error)

	GetAll(ctx context.Context) ([]*customer.Customer, error)
}
