package entityrepo_test

import (
	"context"
	"testing"
	"time"

	"farmdesk/internal/adapters/out/postgres/entityrepo"
	"farmdesk/internal/adapters/out/postgres/pgtest"
	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/lifecycle"
	"farmdesk/internal/core/domain/model/payment"
	"farmdesk/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type EntityRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *entityrepo.GormEntityRepository
}

func (suite *EntityRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *EntityRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.pg.Truncate(ctx))
	suite.Require().NoError(suite.pg.InsertCustomer(ctx, "C-1", "Green Farm"))

	suite.repository = entityrepo.NewGormEntityRepository(suite.pg.DB)
}

func (suite *EntityRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *EntityRepositoryIntegrationTestSuite) newOrder(salesID string, amount int64) *fulfillment.Entity {
	id, err := fulfillment.NewOrderID(salesID)
	suite.Require().NoError(err)
	e, err := fulfillment.NewOrder(id, amount, "C-1", time.Now())
	suite.Require().NoError(err)
	return e
}

func (suite *EntityRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsOrder() {
	ctx := context.Background()

	// Given
	order := suite.newOrder("S-100", 30000)

	// When
	suite.Require().NoError(suite.repository.Add(ctx, order))
	got, err := suite.repository.Get(ctx, order.ID())

	// Then
	suite.Require().NoError(err)
	suite.Equal(order.ID(), got.ID())
	suite.Equal(lifecycle.Received, got.Status())
	suite.Equal(payment.Unpaid, got.PaymentStatus())
	suite.Equal(int64(30000), got.Amount())
	suite.Equal("C-1", got.CustomerID())
	suite.Equal(int64(1), got.Version())
}

func (suite *EntityRepositoryIntegrationTestSuite) TestAdd_ReservationWithoutCustomer() {
	ctx := context.Background()

	// Given
	id, err := fulfillment.NewReservationID(42)
	suite.Require().NoError(err)
	reservation, err := fulfillment.NewReservation(id, 15000, "", time.Now())
	suite.Require().NoError(err)

	// When
	suite.Require().NoError(suite.repository.Add(ctx, reservation))
	got, err := suite.repository.Get(ctx, id)

	// Then
	suite.Require().NoError(err)
	suite.Equal(lifecycle.Waiting, got.Status())
	suite.False(got.HasCustomer())
}

func (suite *EntityRepositoryIntegrationTestSuite) TestGet_Unknown_ReturnsNotFound() {
	id, err := fulfillment.NewOrderID("missing")
	suite.Require().NoError(err)

	got, err := suite.repository.Get(context.Background(), id)

	suite.Nil(got)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *EntityRepositoryIntegrationTestSuite) TestUpdate_PersistsShipmentAndAdvancesVersion() {
	ctx := context.Background()

	// Given
	order := suite.newOrder("S-200", 30000)
	suite.Require().NoError(suite.repository.Add(ctx, order))
	shippedOn := kernel.NewDate(2026, time.March, 2)

	// When
	out, err := order.Ship(fulfillment.NewShipment("CJ대한통운", "123456789", shippedOn), kernel.Today(kernel.SystemClock{}))
	suite.Require().NoError(err)
	suite.Equal(int64(30000), out.PostDebt)
	suite.Require().NoError(suite.repository.Update(ctx, order))

	// Then
	suite.Equal(int64(2), order.Version())
	got, err := suite.repository.Get(ctx, order.ID())
	suite.Require().NoError(err)
	suite.Equal(lifecycle.Shipping, got.Status())
	suite.Equal("123456789", got.Shipment().TrackingNumber())
	suite.True(got.Shipment().ShippingDate().Equal(shippedOn))
	suite.True(got.DebtPosted())
	suite.Equal(int64(2), got.Version())
}

func (suite *EntityRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflict() {
	ctx := context.Background()

	// Given two copies of the same order
	order := suite.newOrder("S-300", 10000)
	suite.Require().NoError(suite.repository.Add(ctx, order))
	first, err := suite.repository.Get(ctx, order.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, order.ID())
	suite.Require().NoError(err)

	// When both are written
	_, err = first.TransitionTo(lifecycle.PendingPayment, false)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	_, err = second.TransitionTo(lifecycle.OrderCancelled, false)
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, second)

	// Then the second write loses
	suite.Require().ErrorIs(err, errs.ErrConflictingConcurrentUpdate)
	got, err := suite.repository.Get(ctx, order.ID())
	suite.Require().NoError(err)
	suite.Equal(lifecycle.PendingPayment, got.Status())
}

func (suite *EntityRepositoryIntegrationTestSuite) TestUpdate_DeletedRow_ReturnsNotFound() {
	ctx := context.Background()

	order := suite.newOrder("S-400", 10000)
	suite.Require().NoError(suite.repository.Add(ctx, order))
	suite.Require().NoError(suite.repository.Delete(ctx, order.ID()))

	err := suite.repository.Update(ctx, order)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *EntityRepositoryIntegrationTestSuite) TestDelete_Unknown_ReturnsNotFound() {
	id, err := fulfillment.NewReservationID(7)
	suite.Require().NoError(err)

	err = suite.repository.Delete(context.Background(), id)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *EntityRepositoryIntegrationTestSuite) TestGetAllShippingWithTracking_FiltersAndOrders() {
	ctx := context.Background()

	// Given
	tracked := []string{"S-2", "S-1"}
	for _, salesID := range tracked {
		o := suite.newOrder(salesID, 10000)
		suite.Require().NoError(suite.repository.Add(ctx, o))
		_, err := o.Ship(fulfillment.NewShipment("한진택배", "T-"+salesID, kernel.Date{}), kernel.Today(kernel.SystemClock{}))
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Update(ctx, o))
	}

	untracked := suite.newOrder("S-3", 10000)
	suite.Require().NoError(suite.repository.Add(ctx, untracked))
	_, err := untracked.Ship(fulfillment.NewShipment("한진택배", "", kernel.Date{}), kernel.Today(kernel.SystemClock{}))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, untracked))

	received := suite.newOrder("S-4", 10000)
	suite.Require().NoError(suite.repository.Add(ctx, received))

	// When
	got, err := suite.repository.GetAllShippingWithTracking(ctx)

	// Then
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal("S-1", got[0].ID().Key())
	suite.Equal("S-2", got[1].ID().Key())
	suite.True(got[0].Shipment().ShippingDate().Equal(kernel.Today(kernel.SystemClock{})))
}

func TestEntityRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(EntityRepositoryIntegrationTestSuite))
}
