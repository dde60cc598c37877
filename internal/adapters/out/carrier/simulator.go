package carrier

import (
	"context"

	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/ports"
)

// DeliveredAfterDays is how long the simulation keeps a parcel in transit.
const DeliveredAfterDays = 2

// Simulator reports delivery purely from the shipping date. It stands in for
// the carrier feed when no API key is configured.
type Simulator struct {
	clock kernel.Clock
}

// NewSimulator derives progress from the days since shipping.
func NewSimulator(clock kernel.Clock) *Simulator {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return &Simulator{clock: clock}
}

// Track treats a missing shipping date as today.
func (s *Simulator) Track(ctx context.Context, req ports.TrackingRequest) (ports.TrackingResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.TrackingResult{}, err
	}

	today := kernel.Today(s.clock)
	shipped := req.ShippingDate
	if shipped.IsZero() {
		shipped = today
	}

	days := today.DaysSince(shipped)
	return ports.TrackingResult{
		Delivered: days >= DeliveredAfterDays,
		Location:  simulatedLocation(days),
	}, nil
}

func simulatedLocation(days int) string {
	switch {
	case days >= DeliveredAfterDays:
		return "배송완료"
	case days >= 1:
		return "지역 허브"
	default:
		return "집하"
	}
}
