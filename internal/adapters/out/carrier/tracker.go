package carrier

import (
	"context"
	"errors"
	"log/slog"

	"farmdesk/internal/core/ports"
)

// FallbackTracker asks the primary feed first and falls back to the
// simulation when the feed has no answer for the parcel. Transport errors and
// timeouts are returned as they are.
type FallbackTracker struct {
	primary  ports.CarrierTracker
	fallback ports.CarrierTracker
	logger   *slog.Logger
}

// NewFallbackTracker asks primary first.
func NewFallbackTracker(primary, fallback ports.CarrierTracker, logger *slog.Logger) *FallbackTracker {
	return &FallbackTracker{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With("component", "FallbackTracker"),
	}
}

// Track falls back only when the primary feed has no delivery level; other
// primary errors are returned as is.
func (t *FallbackTracker) Track(ctx context.Context, req ports.TrackingRequest) (ports.TrackingResult, error) {
	res, err := t.primary.Track(ctx, req)
	if errors.Is(err, errNoLevel) {
		t.logger.DebugContext(ctx, "feed has no level, simulating", "tracking_number", req.TrackingNumber)
		return t.fallback.Track(ctx, req)
	}
	return res, err
}

// NewTracker picks SweetTracker with simulation fallback when apiKey is set,
// the simulation alone otherwise.
func NewTracker(apiKey, baseURL string, sim *Simulator, logger *slog.Logger) (ports.CarrierTracker, error) {
	if apiKey == "" {
		return sim, nil
	}

	codes, err := DefaultCodeTable()
	if err != nil {
		return nil, err
	}
	return NewFallbackTracker(NewSweetTracker(nil, baseURL, apiKey, codes), sim, logger), nil
}
