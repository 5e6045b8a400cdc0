package event

import (
	"time"

	"github.com/goccy/go-json"
)

// Event is a fact emitted by an aggregate for external consumers
// (notifications, analytics). Delivery happens through the outbox.
type Event interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// Envelope is an event as stored in the outbox, already encoded.
type Envelope struct {
	ID          int64
	Name        string
	AggregateID string
	Payload     []byte
	OccurredAt  time.Time
}

func Encode(e Event) (Envelope, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		Name:        e.EventName(),
		AggregateID: e.AggregateID(),
		Payload:     payload,
		OccurredAt:  e.OccurredAt(),
	}, nil
}
