package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventResumeRated = "rating.resume.rated"
)

// Exchange names
const (
	ExchangeRatingEvents = "rating.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// ResumeRatedEvent is published after a resume was scored.
// It carries no document content.
type ResumeRatedEvent struct {
	RatingID   string `json:"rating_id"`
	Filename   string `json:"filename"`
	Score      int    `json:"score"`
	MaxScore   int    `json:"max_score"`
	Model      string `json:"model"`
	PageCount  int    `json:"page_count"`
	DurationMs int64  `json:"duration_ms"`
}
