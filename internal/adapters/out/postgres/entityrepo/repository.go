package entityrepo

import (
	"context"
	"errors"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/lifecycle"
	"farmdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormEntityRepository implements ports.EntityRepository using GORM.
type GormEntityRepository struct {
	db *gorm.DB
}

// NewGormEntityRepository creates a new GORM entity repository.
func NewGormEntityRepository(db *gorm.DB) *GormEntityRepository {
	return &GormEntityRepository{db: db}
}

// Add saves a new order or reservation.
func (r *GormEntityRepository) Add(ctx context.Context, aggregate *fulfillment.Entity) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return nil
}

// Update writes the entity when the stored version still matches and advances
// the version on both sides. A stale version yields a
// ConflictingConcurrentUpdateError, a missing row an ObjectNotFoundError.
func (r *GormEntityRepository) Update(ctx context.Context, aggregate *fulfillment.Entity) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&EntityDTO{}).
		Where("kind = ? AND entity_key = ? AND version = ?", dto.Kind, dto.EntityKey, dto.Version).
		Updates(map[string]any{
			"status":          dto.Status,
			"payment_status":  dto.PaymentStatus,
			"amount":          dto.Amount,
			"paid_amount":     dto.PaidAmount,
			"customer_id":     dto.CustomerID,
			"carrier":         dto.Carrier,
			"tracking_number": dto.TrackingNumber,
			"shipping_date":   dto.ShippingDate,
			"memo":            dto.Memo,
			"debt_posted":     dto.DebtPosted,
			"version":         gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID())
	}

	aggregate.MarkPersisted()
	return nil
}

// Get retrieves an order or reservation by id.
func (r *GormEntityRepository) Get(ctx context.Context, id fulfillment.ID) (*fulfillment.Entity, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EntityDTO
	err := r.db.WithContext(ctx).First(&dto, "kind = ? AND entity_key = ?", id.Kind().String(), id.Key()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("entity", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the entity row. Ledger history is not touched.
func (r *GormEntityRepository) Delete(ctx context.Context, id fulfillment.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("kind = ? AND entity_key = ?", id.Kind().String(), id.Key()).
		Delete(&EntityDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("entity", id.String())
	}
	return nil
}

// GetAllShippingWithTracking returns the orders in Shipping that carry a
// tracking number, ordered by sales id.
func (r *GormEntityRepository) GetAllShippingWithTracking(ctx context.Context) ([]*fulfillment.Entity, error) {
	var dtos []EntityDTO
	err := r.db.WithContext(ctx).
		Where("kind = ? AND status = ? AND tracking_number <> ''", lifecycle.Order.String(), lifecycle.Shipping.String()).
		Order("entity_key").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entities := make([]*fulfillment.Entity, 0, len(dtos))
	for _, dto := range dtos {
		e, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		entities = append(entities, e)
	}

	return entities, nil
}

func (r *GormEntityRepository) missingOrStale(ctx context.Context, id fulfillment.ID) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EntityDTO{}).
		Where("kind = ? AND entity_key = ?", id.Kind().String(), id.Key()).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("entity", id.String())
	}
	return errs.NewConflictingConcurrentUpdateError("entity", id.String())
}
