package queries

import (
	"context"
	"database/sql"
	"errors"
	"iter"
	"time"

	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/ledger"
	"farmdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

// LedgerEntryView is one ledger line with the running balance of the full ledger.
type LedgerEntryView struct {
	LedgerID        int64
	TransactionDate kernel.Date
	TransactionType ledger.TransactionType
	Amount          int64
	RunningBalance  int64
	Description     string
	ReferenceID     string
}

type GetLedgerQueryResponse struct {
	CustomerID     string
	Name           string
	CurrentBalance int64
	// OpeningBalance is the running balance of the last entry before the
	// window starts, 0 for an open window or when nothing precedes it.
	OpeningBalance int64

	// Entries runs the entry query each time it is ranged over, so it can be
	// consumed more than once. Iteration stops after the first error.
	Entries iter.Seq2[LedgerEntryView, error]
}

type GetLedgerQueryHandler struct {
	db *gorm.DB
}

func NewGetLedgerQueryHandler(db *gorm.DB) GetLedgerQueryHandler {
	return GetLedgerQueryHandler{db: db}
}

// Handle returns the customer header eagerly and the entries lazily, ordered
// by (transaction_date, ledger_id). Unknown customers return ObjectNotFoundError.
func (h GetLedgerQueryHandler) Handle(ctx context.Context, query GetLedgerQuery) (GetLedgerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLedgerQueryResponse{}, err
	}

	resp := GetLedgerQueryResponse{CustomerID: query.CustomerID()}

	row := h.db.WithContext(ctx).Raw(`
		SELECT name, current_balance
		FROM customers
		WHERE customer_id = ?
	`, query.CustomerID()).Row()
	if err := row.Scan(&resp.Name, &resp.CurrentBalance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetLedgerQueryResponse{}, errs.NewObjectNotFoundError("customerId", query.CustomerID())
		}
		return GetLedgerQueryResponse{}, err
	}

	opening, err := h.openingBalance(ctx, query.CustomerID(), query.Window())
	if err != nil {
		return GetLedgerQueryResponse{}, err
	}
	resp.OpeningBalance = opening

	resp.Entries = h.entries(ctx, query.CustomerID(), query.Window())
	return resp, nil
}

func (h GetLedgerQueryHandler) openingBalance(ctx context.Context, customerID string, window ledger.Window) (int64, error) {
	if window.From.IsZero() {
		return 0, nil
	}

	var opening int64
	row := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE((
			SELECT running_balance
			FROM customer_ledger
			WHERE customer_id = ? AND transaction_date < ?
			ORDER BY transaction_date DESC, ledger_id DESC
			LIMIT 1
		), 0)
	`, customerID, window.From.Time()).Row()
	if err := row.Scan(&opening); err != nil {
		return 0, err
	}
	return opening, nil
}

func (h GetLedgerQueryHandler) entries(
	ctx context.Context,
	customerID string,
	window ledger.Window,
) iter.Seq2[LedgerEntryView, error] {
	return func(yield func(LedgerEntryView, error) bool) {
		tx := h.db.WithContext(ctx).
			Table("customer_ledger").
			Select("ledger_id, transaction_date, transaction_type, amount, running_balance, description, reference_id").
			Where("customer_id = ?", customerID)
		if !window.From.IsZero() {
			tx = tx.Where("transaction_date >= ?", window.From.Time())
		}
		if !window.To.IsZero() {
			tx = tx.Where("transaction_date <= ?", window.To.Time())
		}

		rows, err := tx.Order("transaction_date, ledger_id").Rows()
		if err != nil {
			yield(LedgerEntryView{}, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			var (
				v      LedgerEntryView
				date   time.Time
				txType string
			)
			if err := rows.Scan(
				&v.LedgerID,
				&date,
				&txType,
				&v.Amount,
				&v.RunningBalance,
				&v.Description,
				&v.ReferenceID,
			); err != nil {
				yield(LedgerEntryView{}, err)
				return
			}

			v.TransactionDate = kernel.DateOf(date)
			v.TransactionType, err = ledger.ParseTransactionType(txType)
			if err != nil {
				yield(LedgerEntryView{}, err)
				return
			}

			if !yield(v, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(LedgerEntryView{}, err)
		}
	}
}
