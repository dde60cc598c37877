package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"farmdesk/internal/core/application/usecases/commands"
	"farmdesk/internal/core/domain/events"
	"farmdesk/internal/core/domain/model/customer"
	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/ledger"
	"farmdesk/internal/core/domain/model/lifecycle"
	"farmdesk/internal/core/domain/model/payment"
	"farmdesk/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	now   = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	clock = kernel.FixedClock(now)
	today = kernel.DateOf(now)
)

type MockEntityRepository struct{ mock.Mock }

func (m *MockEntityRepository) Add(ctx context.Context, e *fulfillment.Entity) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEntityRepository) Update(ctx context.Context, e *fulfillment.Entity) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEntityRepository) Get(ctx context.Context, id fulfillment.ID) (*fulfillment.Entity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.Entity), args.Error(1)
}

func (m *MockEntityRepository) Delete(ctx context.Context, id fulfillment.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEntityRepository) GetAllShippingWithTracking(ctx context.Context) ([]*fulfillment.Entity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fulfillment.Entity), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetAll(ctx context.Context) ([]*customer.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*customer.Customer), args.Error(1)
}

type MockLedgerRepository struct{ mock.Mock }

func (m *MockLedgerRepository) GetBook(ctx context.Context, customerID string) (*ledger.Book, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Book), args.Error(1)
}

// Add returns the entry produced by a func(ledger.Entry) ledger.Entry return
// value, so tests can assign ids the way the database does.
func (m *MockLedgerRepository) Add(ctx context.Context, entry ledger.Entry) (ledger.Entry, error) {
	args := m.Called(ctx, entry)
	if fn, ok := args.Get(0).(func(ledger.Entry) ledger.Entry); ok {
		return fn(entry), args.Error(1)
	}
	return args.Get(0).(ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) UpdateRunningBalances(ctx context.Context, entries []ledger.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLedgerRepository) CustomerOf(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) EntityRepository() ports.EntityRepository {
	args := m.Called()
	return args.Get(0).(ports.EntityRepository)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockLedgerUoWFactory struct{ mock.Mock }

func (m *MockLedgerUoWFactory) Create() commands.LedgerUoW {
	args := m.Called()
	return args.Get(0).(commands.LedgerUoW)
}

type MockEntityUoWFactory struct{ mock.Mock }

func (m *MockEntityUoWFactory) Create() commands.EntityUoW {
	args := m.Called()
	return args.Get(0).(commands.EntityUoW)
}

type MockCarrierTracker struct{ mock.Mock }

func (m *MockCarrierTracker) Track(ctx context.Context, req ports.TrackingRequest) (ports.TrackingResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.TrackingResult), args.Error(1)
}

// recordingNotifier collects notified events.
type recordingNotifier struct {
	mu   sync.Mutex
	evts []events.Event
}

func (n *recordingNotifier) Notify(_ context.Context, evts ...events.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.evts = append(n.evts, evts...)
}

func (n *recordingNotifier) names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	names := make([]string, 0, len(n.evts))
	for _, evt := range n.evts {
		names = append(names, evt.EventName())
	}
	return names
}

// stubUoW wires one set of repositories into a unit of work whose
// transaction calls always succeed.
func stubUoW(entities ports.EntityRepository, customers ports.CustomerRepository, entries ports.LedgerRepository) *MockUoW {
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	if entities != nil {
		uow.On("EntityRepository").Return(entities)
	}
	if customers != nil {
		uow.On("CustomerRepository").Return(customers)
	}
	if entries != nil {
		uow.On("LedgerRepository").Return(entries)
	}
	return uow
}

func orderID(t *testing.T, key string) fulfillment.ID {
	t.Helper()
	id, err := fulfillment.NewOrderID(key)
	require.NoError(t, err)
	return id
}

func reservationID(t *testing.T, key int64) fulfillment.ID {
	t.Helper()
	id, err := fulfillment.NewReservationID(key)
	require.NoError(t, err)
	return id
}

// restoreEntity builds an entity of amount 30000 for customer C1. Paid
// entities are paid in full; orders in Shipping or later carry a shipment.
func restoreEntity(t *testing.T, id fulfillment.ID, status lifecycle.Status, paid payment.Status) *fulfillment.Entity {
	t.Helper()

	var paidAmount int64
	switch paid {
	case payment.Paid:
		paidAmount = 30000
	case payment.PartiallyPaid:
		paidAmount = 10000
	}

	var shipment fulfillment.Shipment
	if id.Kind() == lifecycle.Order && (status == lifecycle.Shipping || status == lifecycle.Delivered) {
		shipment = fulfillment.NewShipment("CJ대한통운", "T-"+id.Key(), today.AddDays(-3))
	}

	e, err := fulfillment.Restore(fulfillment.RestoreParams{
		ID:            id,
		Status:        status,
		PaymentStatus: paid,
		Amount:        30000,
		PaidAmount:    paidAmount,
		CustomerID:    "C1",
		Shipment:      shipment,
		Version:       1,
		CreatedAt:     now.Add(-72 * time.Hour),
	})
	require.NoError(t, err)
	return e
}

func savedEntry(t *testing.T, id int64, txType ledger.TransactionType, amount int64, day kernel.Date) ledger.Entry {
	t.Helper()
	e, err := ledger.RestoreEntry(ledger.EntryParams{
		ID:         id,
		CustomerID: "C1",
		OccurredAt: day,
		Type:       txType,
		Amount:     amount,
	})
	require.NoError(t, err)
	return e
}

func book(t *testing.T, entries ...ledger.Entry) *ledger.Book {
	t.Helper()
	b, err := ledger.NewBook("C1", entries)
	require.NoError(t, err)
	return b
}

func customerWithBalance(t *testing.T, balance int64) *customer.Customer {
	t.Helper()
	c, err := customer.Restore("C1", "Green Farm Cafe", balance, 1)
	require.NoError(t, err)
	return c
}

func assignID(id int64) func(ledger.Entry) ledger.Entry {
	return func(e ledger.Entry) ledger.Entry {
		saved, err := e.WithID(id)
		if err != nil {
			panic(err)
		}
		return saved
	}
}
