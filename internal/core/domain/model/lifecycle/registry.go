package lifecycle

import (
	"farmdesk/internal/pkg/errs"
)

// AllowedTransitions lists, per status, the statuses it may move to.
// Terminal statuses have no entry.
var AllowedTransitions = map[Status][]Status{
	Received:          {PendingPayment, PaymentConfirmed, PreparingShipment, Shipping, OrderCancelled},
	PendingPayment:    {PaymentConfirmed, PreparingShipment, Shipping, OrderCancelled},
	PaymentConfirmed:  {PreparingShipment, Shipping, OrderCancelled},
	PreparingShipment: {Shipping, OrderCancelled},
	Shipping:          {Delivered, OrderCancelled},

	Waiting:   {Confirmed, ReservationCancelled},
	Confirmed: {Completed, ReservationCancelled},
}

// PaymentGated lists the statuses an entity may only enter once paid in full,
// unless the outstanding balance is accepted as debt.
var PaymentGated = []Status{PreparingShipment, Shipping, Delivered, Completed}

// Registry answers questions about the transition graph. It is immutable after
// construction and safe for concurrent use.
type Registry struct {
	edges map[Status]map[Status]struct{}
	gated map[Status]struct{}
}

// Default is the registry built from AllowedTransitions and PaymentGated.
var Default = NewRegistry(AllowedTransitions, PaymentGated)

// NewRegistry builds a registry from an adjacency list and the set of gated statuses.
func NewRegistry(transitions map[Status][]Status, gated []Status) *Registry {
	edges := make(map[Status]map[Status]struct{}, len(transitions))
	for from, tos := range transitions {
		next := make(map[Status]struct{}, len(tos))
		for _, to := range tos {
			next[to] = struct{}{}
		}
		edges[from] = next
	}

	gatedSet := make(map[Status]struct{}, len(gated))
	for _, s := range gated {
		gatedSet[s] = struct{}{}
	}

	return &Registry{edges: edges, gated: gatedSet}
}

// CanTransition reports whether an entity of kind may move from one status to
// another. Staying in place is always allowed. Statuses of another kind never are.
func (r *Registry) CanTransition(kind Kind, from, to Status) bool {
	if from.ValidateFor(kind) != nil || to.ValidateFor(kind) != nil {
		return false
	}
	if from == to {
		return true
	}
	_, ok := r.edges[from][to]
	return ok
}

// Check is CanTransition returning an IllegalTransitionError.
func (r *Registry) Check(kind Kind, from, to Status) error {
	if !r.CanTransition(kind, from, to) {
		return errs.NewIllegalTransitionError(kind.String(), from.String(), to.String())
	}
	return nil
}

// IsTerminal reports whether s has no outgoing transitions.
func (r *Registry) IsTerminal(s Status) bool {
	return s.Validate() == nil && len(r.edges[s]) == 0
}

// RequiresPayment reports whether entering to is payment gated.
func (r *Registry) RequiresPayment(to Status) bool {
	_, ok := r.gated[to]
	return ok
}
