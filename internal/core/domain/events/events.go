// Package events defines the domain events emitted after a unit of work commits.
package events

import (
	"time"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/ledger"
)

const (
	NameStatusChanged        = "fulfillment.status_changed"
	NamePaymentStatusChanged = "fulfillment.payment_status_changed"
	NameEntityDeleted        = "fulfillment.entity_deleted"
	NameLedgerEntryPosted    = "ledger.entry_posted"
	NameLedgerEntryDeleted   = "ledger.entry_deleted"
)

// Event is implemented by every domain event.
type Event interface {
	EventID() kernel.UUID
	// EventName is the routing name, also used as the NATS subject suffix.
	EventName() string
	// PartitionKey keeps events of one entity or customer in order on the bus.
	PartitionKey() string
}

type base struct {
	ID         kernel.UUID `json:"eventId"`
	OccurredAt time.Time   `json:"occurredAt"`
}

func newBase(at time.Time) base {
	return base{ID: kernel.NewUUID(), OccurredAt: at.UTC()}
}

func (b base) EventID() kernel.UUID {
	return b.ID
}

// StatusChanged is emitted when an order or reservation changes lifecycle status.
type StatusChanged struct {
	base
	EntityID   string `json:"entityId"`
	Kind       string `json:"kind"`
	From       string `json:"from"`
	To         string `json:"to"`
	CustomerID string `json:"customerId,omitempty"`
	DebtPosted int64  `json:"debtPosted,omitempty"`
}

func NewStatusChanged(e *fulfillment.Entity, out fulfillment.TransitionOutcome, at time.Time) StatusChanged {
	return StatusChanged{
		base:       newBase(at),
		EntityID:   e.ID().String(),
		Kind:       e.Kind().String(),
		From:       out.From.String(),
		To:         out.To.String(),
		CustomerID: e.CustomerID(),
		DebtPosted: out.PostDebt,
	}
}

func (StatusChanged) EventName() string {
	return NameStatusChanged
}

func (e StatusChanged) PartitionKey() string {
	return e.EntityID
}

// PaymentStatusChanged is emitted when an entity's payment status advances.
type PaymentStatusChanged struct {
	base
	EntityID   string `json:"entityId"`
	Status     string `json:"status"`
	PaidAmount int64  `json:"paidAmount"`
}

func NewPaymentStatusChanged(e *fulfillment.Entity, at time.Time) PaymentStatusChanged {
	return PaymentStatusChanged{
		base:       newBase(at),
		EntityID:   e.ID().String(),
		Status:     e.PaymentStatus().String(),
		PaidAmount: e.PaidAmount(),
	}
}

func (PaymentStatusChanged) EventName() string {
	return NamePaymentStatusChanged
}

func (e PaymentStatusChanged) PartitionKey() string {
	return e.EntityID
}

// EntityDeleted is emitted when an order or reservation is removed.
type EntityDeleted struct {
	base
	EntityID string `json:"entityId"`
}

func NewEntityDeleted(id fulfillment.ID, at time.Time) EntityDeleted {
	return EntityDeleted{base: newBase(at), EntityID: id.String()}
}

func (EntityDeleted) EventName() string {
	return NameEntityDeleted
}

func (e EntityDeleted) PartitionKey() string {
	return e.EntityID
}

// LedgerEntryPosted is emitted for every new ledger entry, manual or automatic.
type LedgerEntryPosted struct {
	base
	LedgerID       int64  `json:"ledgerId"`
	CustomerID     string `json:"customerId"`
	Type           string `json:"transactionType"`
	Amount         int64  `json:"amount"`
	TransactionDay string `json:"transactionDate"`
	ReferenceID    string `json:"referenceId,omitempty"`
	Balance        int64  `json:"currentBalance"`
}

func NewLedgerEntryPosted(e ledger.Entry, balance int64, at time.Time) LedgerEntryPosted {
	return LedgerEntryPosted{
		base:           newBase(at),
		LedgerID:       e.ID(),
		CustomerID:     e.CustomerID(),
		Type:           e.Type().String(),
		Amount:         e.Amount(),
		TransactionDay: e.OccurredAt().String(),
		ReferenceID:    e.ReferenceID(),
		Balance:        balance,
	}
}

func (LedgerEntryPosted) EventName() string {
	return NameLedgerEntryPosted
}

func (e LedgerEntryPosted) PartitionKey() string {
	return e.CustomerID
}

// LedgerEntryDeleted is emitted when an entry is removed from a ledger.
type LedgerEntryDeleted struct {
	base
	LedgerID   int64  `json:"ledgerId"`
	CustomerID string `json:"customerId"`
	Balance    int64  `json:"currentBalance"`
}

func NewLedgerEntryDeleted(e ledger.Entry, balance int64, at time.Time) LedgerEntryDeleted {
	return LedgerEntryDeleted{
		base:       newBase(at),
		LedgerID:   e.ID(),
		CustomerID: e.CustomerID(),
		Balance:    balance,
	}
}

func (LedgerEntryDeleted) EventName() string {
	return NameLedgerEntryDeleted
}

func (e LedgerEntryDeleted) PartitionKey() string {
	return e.CustomerID
}

// TouchesLedger reports whether evt changes a customer balance.
func TouchesLedger(evt Event) bool {
	switch evt.(type) {
	case LedgerEntryPosted, LedgerEntryDeleted:
		return true
	default:
		return false
	}
}
