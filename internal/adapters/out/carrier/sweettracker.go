// Package carrier answers "has this parcel been delivered" for the courier sync.
package carrier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"farmdesk/internal/core/ports"
)

const DefaultSweetTrackerURL = "http://info.sweettracker.co.kr/api/v1/trackingInfo"

// errNoLevel means the feed answered without a progress level, which it does
// for unknown invoices and key errors.
var errNoLevel = errors.New("sweettracker: response carries no level")

// SweetTracker queries the SweetTracker tracking API.
type SweetTracker struct {
	client  *http.Client
	baseURL string
	apiKey  string
	codes   CodeTable
}

// NewSweetTracker resolves carrier names through codes before calling the API.
func NewSweetTracker(client *http.Client, baseURL, apiKey string, codes CodeTable) *SweetTracker {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultSweetTrackerURL
	}
	return &SweetTracker{client: client, baseURL: baseURL, apiKey: apiKey, codes: codes}
}

type trackingInfo struct {
	Level *int   `json:"level"`
	Where string `json:"where"`
}

// Track maps level 1-4 to in transit and 5-6 to delivered.
func (s *SweetTracker) Track(ctx context.Context, req ports.TrackingRequest) (ports.TrackingResult, error) {
	q := url.Values{}
	q.Set("t_key", s.apiKey)
	q.Set("t_code", s.codes.Code(req.Carrier))
	q.Set("t_invoice", req.TrackingNumber)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return ports.TrackingResult{}, err
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return ports.TrackingResult{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusInternalServerError {
		return ports.TrackingResult{}, fmt.Errorf("sweettracker: status %d", resp.StatusCode)
	}

	var info trackingInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.Level == nil {
		return ports.TrackingResult{}, errNoLevel
	}

	level := *info.Level
	return ports.TrackingResult{
		Delivered: level == 5 || level == 6,
		Level:     level,
		Location:  info.Where,
	}, nil
}
