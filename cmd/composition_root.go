package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "farmdesk/internal/adapters/in/http"
	"farmdesk/internal/adapters/out/bus"
	"farmdesk/internal/adapters/out/bus/kafka"
	"farmdesk/internal/adapters/out/bus/nats"
	"farmdesk/internal/adapters/out/carrier"
	"farmdesk/internal/adapters/out/postgres"
	"farmdesk/internal/adapters/out/redis"
	"farmdesk/internal/core/application/cache"
	"farmdesk/internal/core/application/notify"
	"farmdesk/internal/core/application/usecases/commands"
	"farmdesk/internal/core/application/usecases/queries"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/ports"
	"farmdesk/internal/jobs"
	"farmdesk/internal/pkg/keylock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	locks      *keylock.Locker
	clock      kernel.Clock
	publisher  ports.EventPublisher
	tracker    ports.CarrierTracker
	debtors    *cache.DebtorCache
	notifier   commands.Notifier
	closers    []func() error
}

// NewCompositionRoot connects the event bus and, when configured, redis.
// Close releases them.
func NewCompositionRoot(ctx context.Context, config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:     config,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		locks:      keylock.New(),
		clock:      kernel.SystemClock{},
	}

	publisher, err := c.newPublisher()
	if err != nil {
		return nil, err
	}
	c.publisher = publisher
	c.closers = append(c.closers, publisher.Close)

	var store ports.DebtorSnapshotStore
	if config.RedisAddr != "" {
		client, connErr := redis.Connect(ctx, config.RedisAddr)
		if connErr != nil {
			_ = c.Close()
			return nil, connErr
		}
		c.closers = append(c.closers, client.Close)
		store = redis.NewDebtorStore(client, redis.DefaultDebtorKey, config.DebtorCacheTTL)
	}

	c.debtors = cache.NewDebtorCache(queries.NewDebtorReader(gormDB), store, logger).WithLoadTimeout(config.JobTimeout)
	c.notifier = notify.NewDispatcher(c.publisher, c.debtors, config.PublishTimeout, logger)

	tracker, err := carrier.NewTracker(config.CarrierAPIKey, config.CarrierBaseURL, carrier.NewSimulator(c.clock), logger)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("carrier tracker: %w", err)
	}
	c.tracker = tracker

	return c, nil
}

func (c *CompositionRoot) newPublisher() (ports.EventPublisher, error) {
	switch c.config.BusProvider {
	case BusKafka:
		return kafka.NewPublisher(c.config.KafkaBrokers, c.config.KafkaTopic), nil
	case BusNATS:
		return nats.Connect(c.config.NatsURL, c.config.NatsSubjectPrefix)
	default:
		return bus.NewLogPublisher(c.logger), nil
	}
}

// Close releases the connections in reverse order of creation.
func (c *CompositionRoot) Close() error {
	var closeErrs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		closeErrs = append(closeErrs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(closeErrs...)
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) entityUoW() commands.EntityUoWFactory {
	return FuncEntityUoWFactory(func() commands.EntityUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) ledgerUoW() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateUpdateSaleStatusCommandHandler() commands.UpdateSaleStatusCommandHandler {
	return commands.NewUpdateSaleStatusCommandHandler(c.uow(), c.locks, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateCompleteShipmentCommandHandler() commands.CompleteShipmentCommandHandler {
	return commands.NewCompleteShipmentCommandHandler(c.uow(), c.locks, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateUpdateExperienceStatusCommandHandler() commands.UpdateExperienceStatusCommandHandler {
	return commands.NewUpdateExperienceStatusCommandHandler(c.uow(), c.locks, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateUpdatePaymentStatusCommandHandler() commands.UpdatePaymentStatusCommandHandler {
	return commands.NewUpdatePaymentStatusCommandHandler(c.uow(), c.locks, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateDeleteEntityCommandHandler() commands.DeleteEntityCommandHandler {
	return commands.NewDeleteEntityCommandHandler(c.entityUoW(), c.locks, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateCreateLedgerEntryCommandHandler() commands.CreateLedgerEntryCommandHandler {
	return commands.NewCreateLedgerEntryCommandHandler(c.ledgerUoW(), c.locks, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateDeleteLedgerEntryCommandHandler() commands.DeleteLedgerEntryCommandHandler {
	return commands.NewDeleteLedgerEntryCommandHandler(c.ledgerUoW(), c.locks, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateApplyBatchActionCommandHandler() commands.ApplyBatchActionCommandHandler {
	return commands.NewApplyBatchActionCommandHandler(
		c.uow(), c.locks, c.notifier, c.clock, c.config.BatchItemTimeout, c.logger,
	)
}

func (c *CompositionRoot) CreateSyncCourierStatusCommandHandler() commands.SyncCourierStatusCommandHandler {
	return commands.NewSyncCourierStatusCommandHandler(
		c.uow(), c.locks, c.notifier, c.clock, c.tracker, c.config.CarrierTimeout,
	)
}

func (c *CompositionRoot) CreateSyncCourierStatusesCommandHandler() commands.SyncCourierStatusesCommandHandler {
	return commands.NewSyncCourierStatusesCommandHandler(
		c.uow(), c.locks, c.notifier, c.clock, c.tracker,
		c.config.CarrierTimeout, c.config.SyncConcurrency, c.logger,
	)
}

func (c *CompositionRoot) CreateReconcileBalancesCommandHandler() commands.ReconcileBalancesCommandHandler {
	return commands.NewReconcileBalancesCommandHandler(c.ledgerUoW(), c.locks, c.logger)
}

func (c *CompositionRoot) CreateGetLedgerQueryHandler() queries.GetLedgerQueryHandler {
	return queries.NewGetLedgerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLedgerDebtorsQueryHandler() queries.GetLedgerDebtorsQueryHandler {
	return queries.NewGetLedgerDebtorsQueryHandler(c.debtors)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		UpdateSaleStatus:       c.CreateUpdateSaleStatusCommandHandler(),
		CompleteShipment:       c.CreateCompleteShipmentCommandHandler(),
		UpdateExperienceStatus: c.CreateUpdateExperienceStatusCommandHandler(),
		UpdatePaymentStatus:    c.CreateUpdatePaymentStatusCommandHandler(),
		DeleteEntity:           c.CreateDeleteEntityCommandHandler(),
		CreateLedgerEntry:      c.CreateCreateLedgerEntryCommandHandler(),
		DeleteLedgerEntry:      c.CreateDeleteLedgerEntryCommandHandler(),
		ApplyBatchAction:       c.CreateApplyBatchActionCommandHandler(),
		SyncCourierStatus:      c.CreateSyncCourierStatusCommandHandler(),
		SyncCourierStatuses:    c.CreateSyncCourierStatusesCommandHandler(),
		GetLedger:              c.CreateGetLedgerQueryHandler(),
		GetLedgerDebtors:       c.CreateGetLedgerDebtorsQueryHandler(),
	}, c.logger)
}

// CreateJobManager registers the courier sync, debtor refresh and balance reconcile jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	jm := jobs.NewJobManager()
	jm.Register("courier-status-sync", jobs.NewCourierStatusSyncJob(
		c.CreateSyncCourierStatusesCommandHandler(), c.config.CourierSyncSpec, c.config.JobTimeout, c.logger,
	))
	jm.Register("debtor-cache-refresh", jobs.NewDebtorCacheRefreshJob(
		c.debtors, c.config.DebtorRefreshSpec, c.config.JobTimeout, c.logger,
	))
	jm.Register("balance-reconcile", jobs.NewBalanceReconcileJob(
		c.CreateReconcileBalancesCommandHandler(), c.debtors, c.config.ReconcileSpec, c.config.JobTimeout, c.logger,
	))
	return jm
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncEntityUoWFactory func() commands.EntityUoW

func (f FuncEntityUoWFactory) Create() commands.EntityUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}
