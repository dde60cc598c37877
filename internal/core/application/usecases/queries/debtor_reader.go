package queries

import (
	"context"

	"farmdesk/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// DebtorReader reads debtors straight from the customers table.
type DebtorReader struct {
	db *gorm.DB
}

func NewDebtorReader(db *gorm.DB) DebtorReader {
	return DebtorReader{db: db}
}

// Debtors returns customers whose balance is not zero, largest balance first.
func (r DebtorReader) Debtors(ctx context.Context) ([]ledger.Debtor, error) {
	debtors := make([]ledger.Debtor, 0)

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			customer_id,
			name,
			current_balance
		FROM customers
		WHERE current_balance <> 0
		ORDER BY current_balance DESC, customer_id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d ledger.Debtor
		if err = rows.Scan(&d.CustomerID, &d.Name, &d.Balance); err != nil {
			return nil, err
		}
		debtors = append(debtors, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return debtors, nil
}
