// Package bus holds what the event publishers share: the wire envelope and a
// publisher that only logs.
package bus

import (
	"encoding/json"
	"fmt"

	"farmdesk/internal/core/domain/events"
)

// Envelope is the JSON message put on the bus for every event.
type Envelope struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Key     string          `json:"key"`
	Payload json.RawMessage `json:"payload"`
}

// Encode wraps evt in an Envelope and marshals it.
func Encode(evt events.Event) ([]byte, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", evt.EventName(), err)
	}

	return json.Marshal(Envelope{
		ID:      evt.EventID().String(),
		Name:    evt.EventName(),
		Key:     evt.PartitionKey(),
		Payload: payload,
	})
}
