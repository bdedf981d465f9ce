// Package queue defines message payloads exchanged over the message broker
// and the consumer that turns them into the activity log.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Actions and entities carried by ActivityEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"

	EntityVenue  = "venue"
	EntityArtist = "artist"
	EntityShow   = "show"
)

// ActivityEvent is published after a write to the directory commits.  It
// carries enough for downstream consumers to log or notify without querying
// the primary database.
type ActivityEvent struct {
	ID         string `json:"id"`
	Action     string `json:"action"`
	Entity     string `json:"entity"`
	EntityID   uint64 `json:"entity_id"`
	Name       string `json:"name"`
	OccurredAt string `json:"occurred_at"`
}

// NewActivityEvent stamps an event with a fresh id and the current UTC time.
func NewActivityEvent(action, entity string, id uint64, name string) ActivityEvent {
	return ActivityEvent{
		ID:         uuid.NewString(),
		Action:     action,
		Entity:     entity,
		EntityID:   id,
		Name:       name,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
