package websocket

import "encoding/json"

const (
	EventMessageNew = "message.new"
	EventError      = "error"
)

// Event is the envelope pushed to connected clients.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewEvent(eventType string, payload any) (*Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{Type: eventType, Payload: raw}, nil
}
