// Package ledgerrepo persists customer ledger entries.
package ledgerrepo

import (
	"context"
	"errors"
	"time"

	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/ledger"
	"farmdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

// EntryDTO is the row of customer_ledger.
type EntryDTO struct {
	LedgerID        int64     `gorm:"column:ledger_id;primaryKey;autoIncrement"`
	CustomerID      string    `gorm:"column:customer_id;not null"`
	TransactionDate time.Time `gorm:"type:date;not null"`
	TransactionType string    `gorm:"not null"`
	Amount          int64     `gorm:"not null"`
	RunningBalance  int64     `gorm:"not null"`
	Description     string    `gorm:"not null"`
	ReferenceID     string    `gorm:"column:reference_id;not null"`
	CreatedAt       time.Time
}

func (EntryDTO) TableName() string {
	return "customer_ledger"
}

func fromDomain(e ledger.Entry) EntryDTO {
	return EntryDTO{
		LedgerID:        e.ID(),
		CustomerID:      e.CustomerID(),
		TransactionDate: e.OccurredAt().Time(),
		TransactionType: e.Type().String(),
		Amount:          e.Amount(),
		RunningBalance:  e.RunningBalance(),
		Description:     e.Description(),
		ReferenceID:     e.ReferenceID(),
	}
}

func toDomain(dto EntryDTO) (ledger.Entry, error) {
	txType, err := ledger.ParseTransactionType(dto.TransactionType)
	if err != nil {
		return ledger.Entry{}, err
	}

	return ledger.RestoreEntry(ledger.EntryParams{
		ID:             dto.LedgerID,
		CustomerID:     dto.CustomerID,
		OccurredAt:     kernel.DateOf(dto.TransactionDate),
		Type:           txType,
		Amount:         dto.Amount,
		RunningBalance: dto.RunningBalance,
		Description:    dto.Description,
		ReferenceID:    dto.ReferenceID,
	})
}

// GormLedgerRepository implements ports.LedgerRepository using GORM.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository expects db to be the unit of work connection.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// GetBook loads the whole ledger of a customer in (transaction_date, ledger_id) order.
func (r *GormLedgerRepository) GetBook(ctx context.Context, customerID string) (*ledger.Book, error) {
	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("transaction_date, ledger_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]ledger.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, e)
	}

	return ledger.NewBook(customerID, entries)
}

// Add inserts an unsaved entry and returns it with the id assigned by the database.
func (r *GormLedgerRepository) Add(ctx context.Context, entry ledger.Entry) (ledger.Entry, error) {
	dto := fromDomain(entry)
	dto.LedgerID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return ledger.Entry{}, err
	}

	return entry.WithID(dto.LedgerID)
}

// UpdateRunningBalances stores the balance of each given saved entry.
func (r *GormLedgerRepository) UpdateRunningBalances(ctx context.Context, entries []ledger.Entry) error {
	for _, e := range entries {
		result := r.db.WithContext(ctx).
			Model(&EntryDTO{}).
			Where("ledger_id = ?", e.ID()).
			Update("running_balance", e.RunningBalance())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("ledgerId", e.ID())
		}
	}
	return nil
}

// Delete removes one entry. Callers recompute the running balances afterwards.
func (r *GormLedgerRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("ledger_id = ?", id).Delete(&EntryDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("ledgerId", id)
	}
	return nil
}

// CustomerOf returns the owner of a ledger entry.
func (r *GormLedgerRepository) CustomerOf(ctx context.Context, id int64) (string, error) {
	var dto EntryDTO
	err := r.db.WithContext(ctx).Select("customer_id").First(&dto, "ledger_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewObjectNotFoundError("ledgerId", id)
		}
		return "", err
	}
	return dto.CustomerID, nil
}
