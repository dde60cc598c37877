// Package entityrepo persists orders and experience reservations in one table
// keyed by (kind, entity_key).
package entityrepo

import (
	"time"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/lifecycle"
	"farmdesk/internal/core/domain/model/payment"
)

// EntityDTO is the row of fulfillment_entities. Statuses are stored by their
// English name and read back relative to the kind.
type EntityDTO struct {
	Kind           string     `gorm:"primaryKey"`
	EntityKey      string     `gorm:"column:entity_key;primaryKey"`
	Status         string     `gorm:"not null"`
	PaymentStatus  string     `gorm:"not null"`
	Amount         int64      `gorm:"not null"`
	PaidAmount     int64      `gorm:"not null"`
	CustomerID     *string    `gorm:"column:customer_id"`
	Carrier        string     `gorm:"not null"`
	TrackingNumber string     `gorm:"not null"`
	ShippingDate   *time.Time `gorm:"type:date"`
	Memo           string     `gorm:"not null"`
	DebtPosted     bool       `gorm:"not null"`
	Version        int64      `gorm:"not null"`
	CreatedAt      time.Time
}

func (EntityDTO) TableName() string {
	return "fulfillment_entities"
}

func fromDomain(e *fulfillment.Entity) EntityDTO {
	var customerID *string
	if e.HasCustomer() {
		id := e.CustomerID()
		customerID = &id
	}

	shipment := e.Shipment()
	var shippingDate *time.Time
	if d := shipment.ShippingDate(); !d.IsZero() {
		t := d.Time()
		shippingDate = &t
	}

	return EntityDTO{
		Kind:           e.Kind().String(),
		EntityKey:      e.ID().Key(),
		Status:         e.Status().String(),
		PaymentStatus:  e.PaymentStatus().String(),
		Amount:         e.Amount(),
		PaidAmount:     e.PaidAmount(),
		CustomerID:     customerID,
		Carrier:        shipment.Carrier(),
		TrackingNumber: shipment.TrackingNumber(),
		ShippingDate:   shippingDate,
		Memo:           e.Memo(),
		DebtPosted:     e.DebtPosted(),
		Version:        e.Version(),
		CreatedAt:      e.CreatedAt(),
	}
}

func toDomain(dto EntityDTO) (*fulfillment.Entity, error) {
	kind, err := lifecycle.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}

	id, err := fulfillment.NewID(kind, dto.EntityKey)
	if err != nil {
		return nil, err
	}

	status, err := lifecycle.ParseStatus(kind, dto.Status)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := payment.Parse(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var customerID string
	if dto.CustomerID != nil {
		customerID = *dto.CustomerID
	}

	var shipment fulfillment.Shipment
	if kind == lifecycle.Order {
		var shippingDate kernel.Date
		if dto.ShippingDate != nil {
			shippingDate = kernel.DateOf(*dto.ShippingDate)
		}
		shipment = fulfillment.NewShipment(dto.Carrier, dto.TrackingNumber, shippingDate)
	}

	return fulfillment.Restore(fulfillment.RestoreParams{
		ID:            id,
		Status:        status,
		PaymentStatus: paymentStatus,
		Amount:        dto.Amount,
		PaidAmount:    dto.PaidAmount,
		CustomerID:    customerID,
		Shipment:      shipment,
		Memo:          dto.Memo,
		DebtPosted:    dto.DebtPosted,
		Version:       dto.Version,
		CreatedAt:     dto.CreatedAt,
	})
}
