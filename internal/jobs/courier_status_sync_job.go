package jobs

import (
	"context"
	"log/slog"
	"time"

	"farmdesk/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultCourierSyncSpec runs the sync every five minutes, on the minute.
const DefaultCourierSyncSpec = "0 */5 * * * *"

type courierSyncer interface {
	Handle(ctx context.Context, cmd commands.SyncCourierStatusesCommand) (commands.SyncReport, error)
}

// CourierStatusSyncJob periodically moves delivered Shipping orders to Delivered.
type CourierStatusSyncJob struct {
	handler courierSyncer
	spec    string
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewCourierStatusSyncJob(handler courierSyncer, spec string, timeout time.Duration, logger *slog.Logger) *CourierStatusSyncJob {
	if spec == "" {
		spec = DefaultCourierSyncSpec
	}
	return &CourierStatusSyncJob{
		handler: handler,
		spec:    spec,
		timeout: timeout,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "courier_status_sync_job"),
	}
}

func (j *CourierStatusSyncJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Courier status sync job started", "spec", j.spec)
	return nil
}

// RunOnce performs one sync. Per-order failures are logged as warnings.
func (j *CourierStatusSyncJob) RunOnce(ctx context.Context) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	report, err := j.handler.Handle(ctx, commands.NewSyncCourierStatusesCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Courier status sync failed", "error", err)
		return
	}

	for _, e := range report.Errors {
		j.logger.WarnContext(ctx, "Courier status sync skipped order", "id", e.ID.String(), "reason", e.Reason)
	}
}

// Stop waits for a running sync to finish.
func (j *CourierStatusSyncJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Courier status sync job stopped")
}
