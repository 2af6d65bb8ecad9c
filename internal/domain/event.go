package domain

import "time"

// Event actions published on the signal channel.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// SignalChannel is the pub/sub channel carrying entry events.
const SignalChannel = "ornidex:events"

// Event is the realtime notification emitted when an entry changes.
type Event struct {
	Action    string     `json:"action"`
	Kind      EntityKind `json:"kind"`
	ID        int64      `json:"id,string"`
	ActorID   string     `json:"actorId"`
	Timestamp time.Time  `json:"timestamp"`
}
