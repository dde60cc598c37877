// Package customerrepo persists customers and their cached balance.
package customerrepo

import (
	"context"
	"errors"

	"farmdesk/internal/core/domain/model/customer"
	"farmdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

// CustomerDTO is the row of customers.
type CustomerDTO struct {
	CustomerID     string `gorm:"column:customer_id;primaryKey"`
	Name           string `gorm:"not null"`
	CurrentBalance int64  `gorm:"not null"`
	Version        int64  `gorm:"not null"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		CustomerID:     c.ID(),
		Name:           c.Name(),
		CurrentBalance: c.CurrentBalance(),
		Version:        c.Version(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	return customer.Restore(dto.CustomerID, dto.Name, dto.CurrentBalance, dto.Version)
}

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository expects db to be the unit of work connection.
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Add validates and inserts a new customer.
func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return nil
}

// Update stores name and balance under the optimistic version check.
func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CustomerDTO{}).
		Where("customer_id = ? AND version = ?", dto.CustomerID, dto.Version).
		Updates(map[string]any{
			"name":            dto.Name,
			"current_balance": dto.CurrentBalance,
			"version":         gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&CustomerDTO{}).Where("customer_id = ?", dto.CustomerID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("customerId", dto.CustomerID)
		}
		return errs.NewConflictingConcurrentUpdateError("customer", dto.CustomerID)
	}

	aggregate.MarkPersisted()
	return nil
}

// Get returns errs.ObjectNotFoundError for an unknown id.
func (r *GormCustomerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "customer_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customerId", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll returns every customer ordered by id.
func (r *GormCustomerRepository) GetAll(ctx context.Context) ([]*customer.Customer, error) {
	var dtos []CustomerDTO
	if err := r.db.WithContext(ctx).Order("customer_id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	customers := make([]*customer.Customer, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}
