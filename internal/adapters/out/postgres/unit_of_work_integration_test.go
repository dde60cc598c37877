package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "farmdesk/internal/adapters/out/postgres"
	"farmdesk/internal/adapters/out/postgres/pgtest"
	"farmdesk/internal/core/domain/model/customer"
	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/ledger"
	"farmdesk/internal/core/domain/model/lifecycle"
	"farmdesk/internal/core/ports"
	"farmdesk/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work against a migrated PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(pg.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesSeparateInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.EntityRepository())
	suite.NotNil(uow1.CustomerRepository())
	suite.NotNil(uow1.LedgerRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "a second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().Error(uow.Commit(ctx), "commit without an open transaction")
	suite.Require().Error(uow.Rollback(ctx), "rollback without an open transaction")
}

// Shipping an unpaid order posts the outstanding amount as a sale, the way the
// status commands do, and all three writes land together.
func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_ShipWithDebt_WritesAllRepositories() {
	ctx := context.Background()

	// Given
	order := suite.seedCustomerAndOrder("S-1", 30000)

	// When
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	out, err := order.Ship(fulfillment.NewShipment("우체국택배", "600000000001", kernel.Date{}), suite.today())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.EntityRepository().Update(ctx, order))
	suite.postSale(ctx, uow, out.PostDebt, order.ID().String())
	suite.Require().NoError(uow.Commit(ctx))

	// Then
	fresh := suite.factory.Create()
	got, err := fresh.EntityRepository().Get(ctx, order.ID())
	suite.Require().NoError(err)
	suite.Equal(lifecycle.Shipping, got.Status())
	suite.True(got.DebtPosted())

	c, err := fresh.CustomerRepository().Get(ctx, "C-1")
	suite.Require().NoError(err)
	suite.Equal(int64(30000), c.CurrentBalance())

	book, err := fresh.LedgerRepository().GetBook(ctx, "C-1")
	suite.Require().NoError(err)
	suite.Equal(1, book.Len())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllRepositories() {
	ctx := context.Background()

	// Given
	order := suite.seedCustomerAndOrder("S-2", 10000)

	// When
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	out, err := order.Ship(fulfillment.NewShipment("한진택배", "T-2", kernel.Date{}), suite.today())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.EntityRepository().Update(ctx, order))
	suite.postSale(ctx, uow, out.PostDebt, order.ID().String())
	suite.Require().NoError(uow.Rollback(ctx))

	// Then
	fresh := suite.factory.Create()
	got, err := fresh.EntityRepository().Get(ctx, order.ID())
	suite.Require().NoError(err)
	suite.Equal(lifecycle.Received, got.Status())
	suite.False(got.DebtPosted())

	book, err := fresh.LedgerRepository().GetBook(ctx, "C-1")
	suite.Require().NoError(err)
	suite.Equal(0, book.Len())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestIsolation_UncommittedWritesAreInvisible() {
	ctx := context.Background()

	// Given
	order := suite.seedCustomerAndOrder("S-3", 10000)

	uow1 := suite.factory.Create()
	suite.Require().NoError(uow1.Begin(ctx))
	defer func() { _ = uow1.Rollback(ctx) }()

	// When
	suite.Require().NoError(uow1.EntityRepository().Delete(ctx, order.ID()))

	// Then
	_, err := suite.factory.Create().EntityRepository().Get(ctx, order.ID())
	suite.Require().NoError(err, "other units of work still see the row")

	_, err = uow1.EntityRepository().Get(ctx, order.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) seedCustomerAndOrder(salesID string, amount int64) *fulfillment.Entity {
	ctx := context.Background()
	uow := suite.factory.Create()

	c, err := customer.NewCustomer("C-1", "Green Farm")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.CustomerRepository().Add(ctx, c))

	id, err := fulfillment.NewOrderID(salesID)
	suite.Require().NoError(err)
	order, err := fulfillment.NewOrder(id, amount, "C-1", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.EntityRepository().Add(ctx, order))
	return order
}

func (suite *UnitOfWorkIntegrationTestSuite) postSale(ctx context.Context, uow ports.UnitOfWork, amount int64, ref string) {
	book, err := uow.LedgerRepository().GetBook(ctx, "C-1")
	suite.Require().NoError(err)

	entry, err := ledger.NewEntry("C-1", ledger.Sale, amount, suite.today(), "shipped unpaid", ref)
	suite.Require().NoError(err)
	posted, shifted, err := book.Post(entry)
	suite.Require().NoError(err)
	_, err = uow.LedgerRepository().Add(ctx, posted)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.LedgerRepository().UpdateRunningBalances(ctx, shifted))

	c, err := uow.CustomerRepository().Get(ctx, "C-1")
	suite.Require().NoError(err)
	c.SyncBalance(book.Balance())
	suite.Require().NoError(uow.CustomerRepository().Update(ctx, c))
}

func (suite *UnitOfWorkIntegrationTestSuite) today() kernel.Date {
	return kernel.Today(kernel.SystemClock{})
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
