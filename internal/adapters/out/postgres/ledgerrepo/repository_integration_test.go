package ledgerrepo_test

import (
	"context"
	"testing"
	"time"

	"farmdesk/internal/adapters/out/postgres/ledgerrepo"
	"farmdesk/internal/adapters/out/postgres/pgtest"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/ledger"
	"farmdesk/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type LedgerRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *ledgerrepo.GormLedgerRepository
}

func (suite *LedgerRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.repository = ledgerrepo.NewGormLedgerRepository(pg.DB)
}

func (suite *LedgerRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.pg.Truncate(ctx))
	suite.Require().NoError(suite.pg.InsertCustomer(ctx, "C-1", "Green Farm"))
}

func (suite *LedgerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

// post runs the same sequence a command does: load, post, insert, rewrite shifted balances.
func (suite *LedgerRepositoryIntegrationTestSuite) post(txType ledger.TransactionType, amount int64, on kernel.Date) ledger.Entry {
	ctx := context.Background()

	book, err := suite.repository.GetBook(ctx, "C-1")
	suite.Require().NoError(err)

	entry, err := ledger.NewEntry("C-1", txType, amount, on, "", "")
	suite.Require().NoError(err)

	posted, shifted, err := book.Post(entry)
	suite.Require().NoError(err)

	saved, err := suite.repository.Add(ctx, posted)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.UpdateRunningBalances(ctx, shifted))
	return saved
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestGetBook_EmptyCustomer() {
	book, err := suite.repository.GetBook(context.Background(), "C-1")

	suite.Require().NoError(err)
	suite.Equal(0, book.Len())
	suite.Equal(int64(0), book.Balance())
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestAdd_AssignsIncreasingIDs() {
	day := kernel.NewDate(2026, time.May, 1)

	first := suite.post(ledger.Sale, 30000, day)
	second := suite.post(ledger.Deposit, 10000, day)

	suite.Equal(int64(1), first.ID())
	suite.Equal(int64(2), second.ID())
	suite.Equal(int64(20000), second.RunningBalance())
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestBackdatedEntry_ShiftsStoredBalances() {
	ctx := context.Background()

	// Given
	suite.post(ledger.Sale, 30000, kernel.NewDate(2026, time.May, 1))
	suite.post(ledger.Deposit, 10000, kernel.NewDate(2026, time.May, 10))

	// When an earlier sale arrives
	suite.post(ledger.Sale, 5000, kernel.NewDate(2026, time.May, 5))

	// Then the stored order is by date and every running balance is consistent
	book, err := suite.repository.GetBook(ctx, "C-1")
	suite.Require().NoError(err)

	var ids, balances []int64
	for e := range book.Entries() {
		ids = append(ids, e.ID())
		balances = append(balances, e.RunningBalance())
	}
	suite.Equal([]int64{1, 3, 2}, ids)
	suite.Equal([]int64{30000, 35000, 25000}, balances)
	suite.Empty(book.Drifted())
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestDelete_And_CustomerOf() {
	ctx := context.Background()

	// Given
	saved := suite.post(ledger.Adjustment, -2000, kernel.NewDate(2026, time.May, 1))

	// When
	owner, err := suite.repository.CustomerOf(ctx, saved.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Delete(ctx, saved.ID()))

	// Then
	suite.Equal("C-1", owner)
	_, err = suite.repository.CustomerOf(ctx, saved.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().ErrorIs(suite.repository.Delete(ctx, saved.ID()), errs.ErrObjectNotFound)
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestUpdateRunningBalances_UnknownEntry() {
	ctx := context.Background()
	ghost, err := ledger.RestoreEntry(ledger.EntryParams{
		ID:         99,
		CustomerID: "C-1",
		OccurredAt: kernel.NewDate(2026, time.May, 1),
		Type:       ledger.Sale,
		Amount:     100,
	})
	suite.Require().NoError(err)

	err = suite.repository.UpdateRunningBalances(ctx, []ledger.Entry{ghost})

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestLedgerRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(LedgerRepositoryIntegrationTestSuite))
}
