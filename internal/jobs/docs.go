// Package jobs provides the scheduled background tasks of the fulfillment service.
//
// Jobs are cron schedules (github.com/robfig/cron/v3, six-field specs with
// seconds) that each call one application operation:
//
//   - CourierStatusSyncJob moves Shipping orders the carrier reports as
//     delivered to Delivered. Default every five minutes.
//   - DebtorCacheRefreshJob rebuilds the debtor list. Default every minute.
//   - BalanceReconcileJob recomputes customer balances from their ledgers.
//     Default nightly at 03:00.
//
// A run that is still going when its next tick fires is skipped. Every job
// exposes RunOnce so the same code path can be triggered on demand.
//
//	jm := jobs.NewJobManager()
//	jm.Register("courier status sync", jobs.NewCourierStatusSyncJob(handler, spec, time.Minute, logger))
//	if err := jm.StartAll(); err != nil {
//		return err
//	}
//	defer jm.StopAll()
package jobs
