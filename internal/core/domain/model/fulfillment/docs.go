// Package fulfillment contains the Entity aggregate shared by orders and
// experience reservations.
//
// An Entity carries two orthogonal dimensions: its lifecycle status (see
// package lifecycle) and its payment status (see package payment). Status
// changes go through TransitionTo, which consults lifecycle.Default and applies
// the payment gate. When a gated move is accepted on an entity that is not paid
// in full, the returned TransitionOutcome tells the caller how much to post as
// customer debt; the entity remembers that the debt was posted so the same
// remainder is never posted twice.
//
// Example:
//
//	out, err := entity.TransitionTo(lifecycle.Delivered, true)
//	if err != nil {
//	    return err
//	}
//	if out.PostDebt > 0 {
//	    // append a Sale entry of out.PostDebt to the customer's ledger
//	}
package fulfillment
