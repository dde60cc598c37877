package jobs

import (
	"context"
	"log/slog"
	"time"

	"farmdesk/internal/core/domain/model/ledger"

	"github.com/robfig/cron/v3"
)

// DefaultDebtorRefreshSpec rebuilds the debtor list every minute.
const DefaultDebtorRefreshSpec = "30 * * * * *"

type debtorRefresher interface {
	Refresh(ctx context.Context) ([]ledger.Debtor, error)
}

// DebtorCacheRefreshJob keeps the debtor cache warm between ledger changes.
type DebtorCacheRefreshJob struct {
	cache   debtorRefresher
	spec    string
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewDebtorCacheRefreshJob(cache debtorRefresher, spec string, timeout time.Duration, logger *slog.Logger) *DebtorCacheRefreshJob {
	if spec == "" {
		spec = DefaultDebtorRefreshSpec
	}
	return &DebtorCacheRefreshJob{
		cache:   cache,
		spec:    spec,
		timeout: timeout,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "debtor_cache_refresh_job"),
	}
}

func (j *DebtorCacheRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Debtor cache refresh job started", "spec", j.spec)
	return nil
}

func (j *DebtorCacheRefreshJob) RunOnce(ctx context.Context) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	debtors, err := j.cache.Refresh(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Debtor cache refresh failed", "error", err)
		return
	}
	j.logger.DebugContext(ctx, "Debtor cache refreshed", "debtors", len(debtors))
}

func (j *DebtorCacheRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Debtor cache refresh job stopped")
}
