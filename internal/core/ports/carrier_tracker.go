package ports

import (
	"context"

	"farmdesk/internal/core/domain/model/kernel"
)

// TrackingRequest identifies a parcel at a carrier.
type TrackingRequest struct {
	Carrier        string
	TrackingNumber string
	ShippingDate   kernel.Date
}

// TrackingResult is the carrier's view of a parcel.
type TrackingResult struct {
	Delivered bool

	// Level is the carrier progress level when the feed reports one, zero otherwise.
	Level int
	// Location is the last hub or place the carrier reported, if any.
	Location string
}

// CarrierTracker queries an external carrier status feed.
// Implementations must honour ctx deadlines.
type CarrierTracker interface {
	Track(ctx context.Context, req TrackingRequest) (TrackingResult, error)
}
