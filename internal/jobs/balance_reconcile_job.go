package jobs

import (
	"context"
	"log/slog"
	"time"

	"farmdesk/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSpec repairs drifted balances nightly at 03:00.
const DefaultReconcileSpec = "0 0 3 * * *"

type balanceReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileBalancesCommand) (commands.ReconcileReport, error)
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// BalanceReconcileJob recomputes every customer's balance from the ledger and
// drops the debtor cache when anything was repaired.
type BalanceReconcileJob struct {
	handler balanceReconciler
	debtors cacheInvalidator
	spec    string
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewBalanceReconcileJob accepts a nil debtors cache.
func NewBalanceReconcileJob(
	handler balanceReconciler,
	debtors cacheInvalidator,
	spec string,
	timeout time.Duration,
	logger *slog.Logger,
) *BalanceReconcileJob {
	if spec == "" {
		spec = DefaultReconcileSpec
	}
	return &BalanceReconcileJob{
		handler: handler,
		debtors: debtors,
		spec:    spec,
		timeout: timeout,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "balance_reconcile_job"),
	}
}

func (j *BalanceReconcileJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Balance reconcile job started", "spec", j.spec)
	return nil
}

func (j *BalanceReconcileJob) RunOnce(ctx context.Context) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	report, err := j.handler.Handle(ctx, commands.NewReconcileBalancesCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Balance reconcile failed", "error", err)
		return
	}
	if len(report.Repaired) > 0 {
		j.logger.WarnContext(ctx, "Repaired drifted balances", "customers", report.Repaired)
		if j.debtors != nil {
			j.debtors.Invalidate(ctx)
		}
	}
}

func (j *BalanceReconcileJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Balance reconcile job stopped")
}
