package fulfillment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/lifecycle"
	"farmdesk/internal/core/domain/model/payment"
	"farmdesk/internal/pkg/errs"
)

var (
	// ErrEntityIsNotConstructed is returned when an Entity was not created through
	// NewOrder, NewReservation or Restore.
	ErrEntityIsNotConstructed = errors.New("Entity must be created via NewOrder, NewReservation or Restore")

	errEntityIsCancelled = errors.New("entity is cancelled")
)

// Entity is an order or an experience reservation moving through its lifecycle.
//
// Invariants:
//   - status belongs to the entity's kind
//   - amount is positive and 0 <= paidAmount <= amount
//   - Unpaid implies paidAmount == 0, Paid implies paidAmount == amount,
//     PartiallyPaid implies 0 < paidAmount < amount
//   - only orders carry shipment details
//   - debtPosted never reverts to false
type Entity struct {
	id            ID
	status        lifecycle.Status
	paymentStatus payment.Status
	amount        int64
	paidAmount    int64
	customerID    string
	shipment      Shipment
	memo          string
	debtPosted    bool
	version       int64
	createdAt     time.Time

	isConstructed bool
}

// TransitionOutcome describes the effect of a mutation.
type TransitionOutcome struct {
	From lifecycle.Status
	To   lifecycle.Status

	// Changed is false when the mutation left the entity untouched.
	Changed bool

	// PostDebt is the outstanding amount the caller must append to the
	// customer's ledger as a Sale entry within the same unit of work.
	PostDebt int64
}

// StatusChanged reports whether the lifecycle status moved.
func (o TransitionOutcome) StatusChanged() bool {
	return o.From != o.To
}

// NewOrder creates an order in Received status, unpaid.
// customerID may be empty for walk-in sales.
func NewOrder(id ID, amount int64, customerID string, createdAt time.Time) (*Entity, error) {
	if id.Kind() != lifecycle.Order {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%s is not an order id", id))
	}
	return newEntity(id, lifecycle.Received, amount, customerID, createdAt)
}

// NewReservation creates a reservation in Waiting status, unpaid.
func NewReservation(id ID, amount int64, customerID string, createdAt time.Time) (*Entity, error) {
	if id.Kind() != lifecycle.Reservation {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%s is not a reservation id", id))
	}
	return newEntity(id, lifecycle.Waiting, amount, customerID, createdAt)
}

func newEntity(id ID, status lifecycle.Status, amount int64, customerID string, createdAt time.Time) (*Entity, error) {
	e := &Entity{
		id:            id,
		status:        status,
		paymentStatus: payment.Unpaid,
		customerID:    strings.TrimSpace(customerID),
		version:       1,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		e.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreParams carries the persisted state of an Entity.
type RestoreParams struct {
	ID            ID
	Status        lifecycle.Status
	PaymentStatus payment.Status
	Amount        int64
	PaidAmount    int64
	CustomerID    string
	Shipment      Shipment
	Memo          string
	DebtPosted    bool
	Version       int64
	CreatedAt     time.Time
}

// Restore rebuilds an Entity from storage and checks every invariant.
func Restore(p RestoreParams) (*Entity, error) {
	e := &Entity{
		id:            p.ID,
		status:        p.Status,
		paymentStatus: p.PaymentStatus,
		paidAmount:    p.PaidAmount,
		customerID:    p.CustomerID,
		shipment:      p.Shipment,
		memo:          p.Memo,
		debtPosted:    p.DebtPosted,
		version:       p.Version,
		createdAt:     p.CreatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.ID.Validate(),
		p.Status.ValidateFor(p.ID.Kind()),
		e.setAmount(p.Amount),
		validatePaid(p.PaymentStatus, p.PaidAmount, p.Amount),
	); err != nil {
		return nil, err
	}

	if p.ID.Kind() == lifecycle.Reservation && p.Shipment != (Shipment{}) {
		return nil, errs.NewValueIsInvalidErrorWithCause("shipment", errors.New("reservations are not shipped"))
	}

	return e, nil
}

// Validate reports ErrEntityIsNotConstructed for zero or nil entities.
func (e *Entity) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntityIsNotConstructed
	}
	return nil
}

func (e *Entity) ID() ID {
	return e.id
}

func (e *Entity) Kind() lifecycle.Kind {
	return e.id.Kind()
}

func (e *Entity) Status() lifecycle.Status {
	return e.status
}

func (e *Entity) PaymentStatus() payment.Status {
	return e.paymentStatus
}

func (e *Entity) Amount() int64 {
	return e.amount
}

func (e *Entity) PaidAmount() int64 {
	return e.paidAmount
}

func (e *Entity) CustomerID() string {
	return e.customerID
}

func (e *Entity) Shipment() Shipment {
	return e.shipment
}

func (e *Entity) Memo() string {
	return e.memo
}

func (e *Entity) DebtPosted() bool {
	return e.debtPosted
}

func (e *Entity) Version() int64 {
	return e.version
}

func (e *Entity) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Entity) HasCustomer() bool {
	return e.customerID != ""
}

func (e *Entity) Outstanding() int64 {
	return e.amount - e.paidAmount
}

func (e *Entity) IsTerminal() bool {
	return lifecycle.Default.IsTerminal(e.status)
}

func (e *Entity) IsPaidOrCovered() bool {
	return e.paymentStatus == payment.Paid || e.debtPosted
}

// TransitionTo moves the entity to status to.
//
// Moving to the current status is a no-op. A move outside the lifecycle graph
// returns an IllegalTransitionError. A payment gated move on an entity that is
// neither paid in full nor already covered by posted debt returns a
// PaymentRequiredError unless proceedWithOutstanding is set; in that case the
// outcome carries the outstanding amount to post when the entity belongs to a
// customer, and the entity records the debt as posted.
func (e *Entity) TransitionTo(to lifecycle.Status, proceedWithOutstanding bool) (TransitionOutcome, error) {
	out := TransitionOutcome{From: e.status, To: e.status}
	if to == e.status {
		return out, nil
	}

	if err := lifecycle.Default.Check(e.Kind(), e.status, to); err != nil {
		return out, err
	}

	if lifecycle.Default.RequiresPayment(to) && !e.IsPaidOrCovered() {
		if !proceedWithOutstanding {
			return out, errs.NewPaymentRequiredError(e.id.String(), e.Outstanding())
		}
		if e.HasCustomer() && e.Outstanding() > 0 {
			out.PostDebt = e.Outstanding()
			e.debtPosted = true
		}
	}

	e.status = to
	out.To = to
	out.Changed = true
	return out, nil
}

// Ship records courier details and moves an order to Shipping. Shipping an
// unpaid order implicitly accepts the outstanding balance as debt. A missing
// shipping date defaults to today. Calling Ship on an order already in
// Shipping only updates its courier details.
func (e *Entity) Ship(details Shipment, today kernel.Date) (TransitionOutcome, error) {
	if e.Kind() != lifecycle.Order {
		return TransitionOutcome{From: e.status, To: e.status}, errs.NewIllegalTransitionError(
			e.Kind().String(), e.status.String(), lifecycle.Shipping.String(),
		)
	}

	out, err := e.TransitionTo(lifecycle.Shipping, true)
	if err != nil {
		return out, err
	}

	updated := e.shipment.merge(details)
	if updated.shippingDate.IsZero() {
		updated.shippingDate = today
	}
	if updated != e.shipment {
		e.shipment = updated
		out.Changed = true
	}
	return out, nil
}

// UpdatePayment advances the payment status.
//
// Paid settles the full amount. PartiallyPaid requires 0 < paidAmount < amount;
// a zero paidAmount keeps the current paid amount when that already qualifies.
// Cancelled entities reject every payment change.
func (e *Entity) UpdatePayment(to payment.Status, paidAmount int64) error {
	if e.status.IsCancelled() {
		return errs.NewIllegalPaymentTransitionErrorWithCause(e.paymentStatus.String(), to.String(), errEntityIsCancelled)
	}

	next, err := e.paymentStatus.Advance(to)
	if err != nil {
		return err
	}

	paid := paidAmount
	switch next {
	case payment.Paid:
		paid = e.amount
	case payment.PartiallyPaid:
		if paid == 0 {
			paid = e.paidAmount
		}
	}

	if err := validatePaid(next, paid, e.amount); err != nil {
		return err
	}

	e.paymentStatus = next
	e.paidAmount = paid
	return nil
}

// SettleInFull marks the entity Paid. It is a no-op on an entity that is already paid.
func (e *Entity) SettleInFull() error {
	if e.paymentStatus == payment.Paid {
		return nil
	}
	return e.UpdatePayment(payment.Paid, 0)
}

// AppendMemo adds a line to the memo. Blank text is ignored.
func (e *Entity) AppendMemo(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if e.memo == "" {
		e.memo = text
		return
	}
	e.memo = e.memo + "\n" + text
}

// MarkPersisted advances the optimistic version after a successful write.
func (e *Entity) MarkPersisted() {
	e.version++
}

func (e *Entity) setAmount(amount int64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is not positive", amount))
	}
	e.amount = amount
	return nil
}

func validatePaid(status payment.Status, paid, amount int64) error {
	if err := status.Validate(); err != nil {
		return err
	}

	ok := true
	switch status {
	case payment.Unpaid:
		ok = paid == 0
	case payment.PartiallyPaid:
		ok = paid > 0 && paid < amount
	case payment.Paid:
		ok = paid == amount
	}
	if !ok {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"paid_amount", paid, 0, amount,
			fmt.Errorf("inconsistent with payment status %s", status),
		)
	}
	return nil
}
