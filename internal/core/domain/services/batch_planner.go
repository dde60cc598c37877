package services

import (
	"errors"
	"fmt"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/lifecycle"
)

// ErrItemIneligible is returned by Apply when the entity no longer qualifies for the action.
var ErrItemIneligible = errors.New("item is not eligible")

// IneligibleError carries the reason an item was rejected at apply time.
type IneligibleError struct {
	Reason SkipReason
}

func NewIneligibleError(reason SkipReason) *IneligibleError {
	return &IneligibleError{Reason: reason}
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrItemIneligible, e.Reason)
}

func (e *IneligibleError) Unwrap() error {
	return ErrItemIneligible
}

// SkipReason explains why an item was left out of a batch.
type SkipReason string

const (
	ReasonAlreadyInTarget   SkipReason = "already in target status"
	ReasonIllegalTransition SkipReason = "illegal transition"
	ReasonPaymentRequired   SkipReason = "payment required"
	ReasonNotApplicable     SkipReason = "not applicable"
	ReasonNotFound          SkipReason = "not found"
)

// BatchOptions tune how an action is applied.
type BatchOptions struct {
	// ProceedWithOutstandingBalance accepts unpaid remainders as customer debt
	// for payment gated moves.
	ProceedWithOutstandingBalance bool

	// Shipment and Memo are used by Ship.
	Shipment fulfillment.Shipment
	Memo     string

	// Today is the default shipping date.
	Today kernel.Date
}

// SkippedItem is an entity left out of the batch.
type SkippedItem struct {
	ID     fulfillment.ID
	Reason SkipReason
}

// BatchPlan partitions a selection.
type BatchPlan struct {
	// Eligible items in selection order.
	Eligible []fulfillment.ID

	// Flagged is the subset of Eligible that will post its unpaid remainder as debt.
	Flagged []fulfillment.ID

	Skipped []SkippedItem
}

// BatchPlanner is a stateless domain service deciding batch eligibility.
//
// Example:
//
//	planner := services.NewBatchPlanner()
//	plan := planner.Plan(services.Ship, entities, opts)
//	for _, id := range plan.Eligible {
//	    // load, planner.Apply, persist
//	}
type BatchPlanner struct{}

// NewBatchPlanner creates a BatchPlanner.
func NewBatchPlanner() BatchPlanner {
	return BatchPlanner{}
}

// Plan classifies every entity of the selection.
//
// An item is eligible when the action applies to its kind, it is not already
// in the target status, the lifecycle allows the move and the payment gate is
// satisfied. Ship always accepts unpaid orders and flags them. Nil entries are
// ignored; callers report unknown ids themselves.
func (p BatchPlanner) Plan(action BatchAction, entities []*fulfillment.Entity, opts BatchOptions) BatchPlan {
	var plan BatchPlan
	for _, e := range entities {
		if e == nil {
			continue
		}
		reason, ok := p.Check(action, e, opts)
		if !ok {
			plan.Skipped = append(plan.Skipped, SkippedItem{ID: e.ID(), Reason: reason})
			continue
		}
		plan.Eligible = append(plan.Eligible, e.ID())
		if p.postsDebt(action, e, opts) {
			plan.Flagged = append(plan.Flagged, e.ID())
		}
	}
	return plan
}

// Check reports whether e is eligible for action, and the reason when it is not.
func (p BatchPlanner) Check(action BatchAction, e *fulfillment.Entity, opts BatchOptions) (SkipReason, bool) {
	target, ok := action.Target(e.Kind())
	if !ok {
		return ReasonNotApplicable, false
	}
	if e.Status() == target {
		return ReasonAlreadyInTarget, false
	}
	if !lifecycle.Default.CanTransition(e.Kind(), e.Status(), target) {
		return ReasonIllegalTransition, false
	}
	if lifecycle.Default.RequiresPayment(target) && !e.IsPaidOrCovered() && !p.acceptsDebt(action, opts) {
		return ReasonPaymentRequired, false
	}
	return "", true
}

// Apply performs action on a single freshly loaded entity. It re-checks
// eligibility first, because the entity may have changed since planning, and
// returns an IneligibleError when it no longer qualifies.
func (p BatchPlanner) Apply(
	action BatchAction,
	e *fulfillment.Entity,
	opts BatchOptions,
) (fulfillment.TransitionOutcome, error) {
	if reason, ok := p.Check(action, e, opts); !ok {
		return fulfillment.TransitionOutcome{From: e.Status(), To: e.Status()}, NewIneligibleError(reason)
	}

	target, _ := action.Target(e.Kind())
	switch action {
	case ConfirmPayment:
		if err := e.SettleInFull(); err != nil {
			return fulfillment.TransitionOutcome{From: e.Status(), To: e.Status()}, err
		}
		return e.TransitionTo(target, false)
	case Ship:
		out, err := e.Ship(opts.Shipment, opts.Today)
		if err != nil {
			return out, err
		}
		e.AppendMemo(opts.Memo)
		return out, nil
	default:
		return e.TransitionTo(target, p.acceptsDebt(action, opts))
	}
}

func (p BatchPlanner) acceptsDebt(action BatchAction, opts BatchOptions) bool {
	return action == Ship || opts.ProceedWithOutstandingBalance
}

func (p BatchPlanner) postsDebt(action BatchAction, e *fulfillment.Entity, opts BatchOptions) bool {
	target, _ := action.Target(e.Kind())
	return lifecycle.Default.RequiresPayment(target) &&
		!e.IsPaidOrCovered() &&
		p.acceptsDebt(action, opts) &&
		e.HasCustomer()
}
