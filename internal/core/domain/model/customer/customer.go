// Package customer holds the Customer aggregate as seen by the debt ledger.
package customer

import (
	"errors"
	"strings"

	"farmdesk/internal/pkg/errs"
)

// ErrCustomerIsNotConstructed is returned when a Customer was not created through NewCustomer or Restore.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer or Restore")

// Customer caches the terminal running balance of its ledger in currentBalance.
// The cache is derived: the ledger is the source of truth and SyncBalance is
// the only way to change it.
type Customer struct {
	id             string
	name           string
	currentBalance int64
	version        int64

	isConstructed bool
}

// NewCustomer creates a customer with an empty ledger.
func NewCustomer(id, name string) (*Customer, error) {
	c := &Customer{
		name:          strings.TrimSpace(name),
		version:       1,
		isConstructed: true,
	}
	if err := c.setID(id); err != nil {
		return nil, err
	}
	return c, nil
}

// Restore rebuilds a customer from storage.
func Restore(id, name string, currentBalance, version int64) (*Customer, error) {
	c := &Customer{
		name:           name,
		currentBalance: currentBalance,
		version:        version,
		isConstructed:  true,
	}
	if err := c.setID(id); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

func (c *Customer) ID() string {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

// CurrentBalance is what the customer owes. Positive means debt.
func (c *Customer) CurrentBalance() int64 {
	return c.currentBalance
}

func (c *Customer) Version() int64 {
	return c.version
}

// SyncBalance stores the terminal running balance of the ledger and reports
// whether the cached value changed.
func (c *Customer) SyncBalance(balance int64) bool {
	if c.currentBalance == balance {
		return false
	}
	c.currentBalance = balance
	return true
}

// MarkPersisted advances the optimistic version after a successful write.
func (c *Customer) MarkPersisted() {
	c.version++
}

func (c *Customer) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	c.id = id
	return nil
}
