package draft

import (
	"context"
	"time"
)

type EventType string

const (
	EventStarted      EventType = "started"
	EventPickRecorded EventType = "pick_recorded"
	EventTurn         EventType = "turn"
	EventExplanation  EventType = "explanation"
	EventComplete     EventType = "complete"
	EventSimulate     EventType = "simulate"
)

// Event is pushed to draft subscribers after a state change.
type Event struct {
	Type       EventType `json:"type"`
	DraftID    string    `json:"draft_id"`
	Generation uint64    `json:"generation"`
	PickIndex  int       `json:"pick_index"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}

// EventPublisher fans events out to subscribers. Publish must not block on
// slow consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}
