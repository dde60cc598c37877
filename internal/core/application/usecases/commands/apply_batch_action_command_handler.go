package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/services"
	"farmdesk/internal/pkg/errs"
	"farmdesk/internal/pkg/keylock"
)

// ItemFailure is an eligible item whose transition failed.
type ItemFailure struct {
	ID     fulfillment.ID
	Reason string
	Err    error
}

// BatchReport is the partial-success outcome of a batch action.
type BatchReport struct {
	RunID  kernel.UUID
	Action services.BatchAction

	Succeeded []TransitionResult
	Failed    []ItemFailure
	Skipped   []services.SkippedItem

	// NotAttempted lists eligible items left untouched because the batch was cancelled.
	NotAttempted []fulfillment.ID

	// Flagged lists eligible items planned to post their unpaid remainder as debt.
	Flagged []fulfillment.ID
}

// NoEligibleItems reports whether nothing in the selection qualified.
func (r BatchReport) NoEligibleItems() bool {
	return len(r.Succeeded) == 0 && len(r.Failed) == 0 && len(r.NotAttempted) == 0
}

// Err returns errs.ErrNoEligibleItems for an empty plan and nil otherwise.
// Per-item failures are part of the report, not of Err.
func (r BatchReport) Err() error {
	if r.NoEligibleItems() {
		return errs.ErrNoEligibleItems
	}
	return nil
}

// ApplyBatchActionCommandHandler executes a batch action item by item.
//
// The selection is planned first: unknown ids and ineligible items are
// reported as skipped with a reason. Eligible items are then applied
// sequentially, each under its own entity lock, unit of work and timeout. A
// failing item never stops the others. Cancelling ctx stops issuing items;
// already applied items stay applied and the rest are reported as not
// attempted.
type ApplyBatchActionCommandHandler struct {
	executor    transitionExecutor
	planner     services.BatchPlanner
	itemTimeout time.Duration
	logger      *slog.Logger
}

func NewApplyBatchActionCommandHandler(
	uowFactory UoWFactory,
	locks *keylock.Locker,
	notifier Notifier,
	clock kernel.Clock,
	itemTimeout time.Duration,
	logger *slog.Logger,
) ApplyBatchActionCommandHandler {
	return ApplyBatchActionCommandHandler{
		executor:    newTransitionExecutor(uowFactory, locks, notifier, clock),
		planner:     services.NewBatchPlanner(),
		itemTimeout: itemTimeout,
		logger:      logger.With("component", "batch_action"),
	}
}

// Handle applies the action to each eligible id. Per-item failures land in the
// report; an error means nothing was attempted.
func (h ApplyBatchActionCommandHandler) Handle(ctx context.Context, cmd ApplyBatchActionCommand) (BatchReport, error) {
	if err := cmd.Validate(); err != nil {
		return BatchReport{}, err
	}

	report := BatchReport{RunID: kernel.NewUUID(), Action: cmd.Action()}
	opts := cmd.Options()
	opts.Today = h.executor.today()

	selection, missing, err := h.load(ctx, cmd.IDs())
	if err != nil {
		return BatchReport{}, err
	}
	plan := h.planner.Plan(cmd.Action(), selection, opts)

	report.Skipped = append(report.Skipped, missing...)
	report.Skipped = append(report.Skipped, plan.Skipped...)
	report.Flagged = plan.Flagged

	for i, id := range plan.Eligible {
		if ctx.Err() != nil {
			report.NotAttempted = append(report.NotAttempted, plan.Eligible[i:]...)
			break
		}
		h.applyOne(ctx, &report, id, opts)
	}

	h.logger.InfoContext(ctx, "Batch action finished",
		"run_id", report.RunID.String(),
		"action", cmd.Action().String(),
		"succeeded", len(report.Succeeded),
		"failed", len(report.Failed),
		"skipped", len(report.Skipped),
		"not_attempted", len(report.NotAttempted),
	)
	return report, nil
}

func (h ApplyBatchActionCommandHandler) applyOne(
	ctx context.Context,
	report *BatchReport,
	id fulfillment.ID,
	opts services.BatchOptions,
) {
	itemCtx := ctx
	if h.itemTimeout > 0 {
		var cancel context.CancelFunc
		itemCtx, cancel = context.WithTimeout(ctx, h.itemTimeout)
		defer cancel()
	}

	result, err := h.executor.run(itemCtx, id, func(e *fulfillment.Entity) (fulfillment.TransitionOutcome, error) {
		return h.planner.Apply(report.Action, e, opts)
	})

	var ineligible *services.IneligibleError
	switch {
	case err == nil:
		report.Succeeded = append(report.Succeeded, result)
	case errors.As(err, &ineligible):
		report.Skipped = append(report.Skipped, services.SkippedItem{ID: id, Reason: ineligible.Reason})
	case errors.Is(err, errs.ErrObjectNotFound):
		report.Skipped = append(report.Skipped, services.SkippedItem{ID: id, Reason: services.ReasonNotFound})
	default:
		err = errs.FromContext("apply "+id.String(), err)
		h.logger.WarnContext(ctx, "Batch item failed", "run_id", report.RunID.String(), "id", id.String(), "error", err)
		report.Failed = append(report.Failed, ItemFailure{ID: id, Reason: err.Error(), Err: err})
	}
}

// load reads the selection in one unit of work. Unknown ids come back as
// skipped items.
func (h ApplyBatchActionCommandHandler) load(
	ctx context.Context,
	ids []fulfillment.ID,
) ([]*fulfillment.Entity, []services.SkippedItem, error) {
	uow := h.executor.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.EntityRepository()
	entities := make([]*fulfillment.Entity, 0, len(ids))
	var missing []services.SkippedItem
	for _, id := range ids {
		e, err := repo.Get(ctx, id)
		if errors.Is(err, errs.ErrObjectNotFound) {
			missing = append(missing, services.SkippedItem{ID: id, Reason: services.ReasonNotFound})
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		entities = append(entities, e)
	}
	return entities, missing, nil
}
