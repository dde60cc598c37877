package fulfillment

import (
	"strings"

	"farmdesk/internal/core/domain/model/kernel"
)

// Shipment holds the courier details of an order. Every field is optional.
type Shipment struct {
	carrier        string
	trackingNumber string
	shippingDate   kernel.Date
}

// NewShipment trims the text fields and returns the shipment.
func NewShipment(carrier, trackingNumber string, shippingDate kernel.Date) Shipment {
	return Shipment{
		carrier:        strings.TrimSpace(carrier),
		trackingNumber: strings.TrimSpace(trackingNumber),
		shippingDate:   shippingDate,
	}
}

func (s Shipment) Carrier() string {
	return s.carrier
}

func (s Shipment) TrackingNumber() string {
	return s.trackingNumber
}

func (s Shipment) ShippingDate() kernel.Date {
	return s.shippingDate
}

// IsTrackable reports whether the carrier feed can be queried for this shipment.
func (s Shipment) IsTrackable() bool {
	return s.trackingNumber != ""
}

// merge overlays the non-empty fields of update on s.
func (s Shipment) merge(update Shipment) Shipment {
	if update.carrier != "" {
		s.carrier = update.carrier
	}
	if update.trackingNumber != "" {
		s.trackingNumber = update.trackingNumber
	}
	if !update.shippingDate.IsZero() {
		s.shippingDate = update.shippingDate
	}
	return s
}
