package commands

import (
	"context"
	"fmt"

	"farmdesk/internal/core/domain/events"
	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/ledger"
	"farmdesk/internal/core/domain/model/lifecycle"
	"farmdesk/internal/core/domain/model/payment"
	"farmdesk/internal/pkg/keylock"
)

// TransitionResult describes what a status or payment command did to one entity.
type TransitionResult struct {
	ID            fulfillment.ID
	From          lifecycle.Status
	To            lifecycle.Status
	PaymentStatus payment.Status
	Changed       bool

	// DebtPosted is the amount appended to the customer ledger, zero when nothing was posted.
	DebtPosted    int64
	LedgerEntryID int64
}

// mutation changes a loaded entity and reports the outcome.
type mutation func(e *fulfillment.Entity) (fulfillment.TransitionOutcome, error)

// transitionExecutor runs a mutation against one entity under the entity lock,
// in its own unit of work, posting the outstanding balance to the customer
// ledger when the outcome asks for it. Lock order is entity, then customer.
type transitionExecutor struct {
	uowFactory UoWFactory
	locks      *keylock.Locker
	notifier   Notifier
	clock      kernel.Clock
}

func newTransitionExecutor(
	uowFactory UoWFactory,
	locks *keylock.Locker,
	notifier Notifier,
	clock kernel.Clock,
) transitionExecutor {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return transitionExecutor{
		uowFactory: uowFactory,
		locks:      locks,
		notifier:   notifier,
		clock:      clock,
	}
}

func (x transitionExecutor) today() kernel.Date {
	return kernel.Today(x.clock)
}

// run applies mutate to the entity with the given id. A lost optimistic
// version check reloads the entity and applies mutate once more.
func (x transitionExecutor) run(ctx context.Context, id fulfillment.ID, mutate mutation) (TransitionResult, error) {
	unlock, err := x.locks.Lock(ctx, entityKey(id))
	if err != nil {
		return TransitionResult{ID: id}, err
	}
	defer unlock()

	var (
		result TransitionResult
		evts   []events.Event
	)
	err = retryOnConflict(ctx, func() error {
		var attemptErr error
		result, evts, attemptErr = x.attempt(ctx, id, mutate)
		return attemptErr
	})
	if err != nil {
		return TransitionResult{ID: id}, err
	}

	if len(evts) > 0 {
		x.notifier.Notify(ctx, evts...)
	}
	return result, nil
}

func (x transitionExecutor) attempt(
	ctx context.Context,
	id fulfillment.ID,
	mutate mutation,
) (TransitionResult, []events.Event, error) {
	uow := x.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	entity, err := uow.EntityRepository().Get(ctx, id)
	if err != nil {
		return TransitionResult{}, nil, err
	}

	paymentBefore := entity.PaymentStatus()
	out, err := mutate(entity)
	if err != nil {
		return TransitionResult{}, nil, err
	}

	result := TransitionResult{
		ID:            id,
		From:          out.From,
		To:            out.To,
		PaymentStatus: entity.PaymentStatus(),
		Changed:       out.Changed,
	}
	if !out.Changed {
		return result, nil, nil
	}

	now := x.clock.Now()
	var evts []events.Event

	if out.PostDebt > 0 {
		unlockCustomer, lockErr := x.locks.Lock(ctx, customerKey(entity.CustomerID()))
		if lockErr != nil {
			return TransitionResult{}, nil, lockErr
		}
		defer unlockCustomer()

		entry, entryErr := ledger.NewEntry(
			entity.CustomerID(),
			ledger.Sale,
			out.PostDebt,
			x.today(),
			fmt.Sprintf("outstanding balance of %s", id),
			id.String(),
		)
		if entryErr != nil {
			return TransitionResult{}, nil, entryErr
		}

		posted, balance, postErr := postLedgerEntry(ctx, uow, entry)
		if postErr != nil {
			return TransitionResult{}, nil, postErr
		}

		result.DebtPosted = posted.Amount()
		result.LedgerEntryID = posted.ID()
		evts = append(evts, events.NewLedgerEntryPosted(posted, balance, now))
	}

	if err = uow.EntityRepository().Update(ctx, entity); err != nil {
		return TransitionResult{}, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, nil, err
	}

	if out.StatusChanged() {
		evts = append([]events.Event{events.NewStatusChanged(entity, out, now)}, evts...)
	}
	if entity.PaymentStatus() != paymentBefore {
		evts = append(evts, events.NewPaymentStatusChanged(entity, now))
	}

	return result, evts, nil
}
