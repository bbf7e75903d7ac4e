package events

import (
	"encoding/json"
	"time"
)

// Event type codes carried on the bus.
const (
	CouncilTurnCompleted = "COUNCIL_TURN_COMPLETED"
)

// Envelope wraps every published event with its type and timestamp so
// consumers can dispatch before decoding the payload.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

func NewEnvelope(eventType string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: time.Now(),
		Payload:    raw,
	})
}

// Decode unmarshals the payload into v.
func (e Envelope) Decode(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}
