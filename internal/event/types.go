package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g. "store.changed:<key>", "day.rollover").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Store Events
// -----------------------------------------------------------------------------

// keyChangedPrefix prefixes the per-key event type.
const keyChangedPrefix = "store.changed:"

// KeyTopic returns the event type published when key is written.
// Subscribing to KeyTopic(k) observes writes to k only.
func KeyTopic(key string) string {
	return keyChangedPrefix + key
}

// KeyChangedEvent is published after a value has been written to the store.
type KeyChangedEvent struct {
	baseEvent
	Key    string
	Value  string
	Source string // "local" for in-process writes, "reload" for external file changes
}

// NewKeyChangedEvent creates a KeyChangedEvent for an in-process write.
func NewKeyChangedEvent(key, value string) KeyChangedEvent {
	return KeyChangedEvent{
		baseEvent: newBaseEvent(KeyTopic(key)),
		Key:       key,
		Value:     value,
		Source:    "local",
	}
}

// NewKeyReloadedEvent creates a KeyChangedEvent for a value picked up from
// another process writing the same medium.
func NewKeyReloadedEvent(key, value string) KeyChangedEvent {
	e := NewKeyChangedEvent(key, value)
	e.Source = "reload"
	return e
}

// -----------------------------------------------------------------------------
// Day-Boundary Events
// -----------------------------------------------------------------------------

// DayRolloverTopic is the event type of DayRolloverEvent.
const DayRolloverTopic = "day.rollover"

// DayRolloverEvent is published when a tracked fact is reset because the
// calendar day changed since it was last stamped.
type DayRolloverEvent struct {
	baseEvent
	Fact     string
	Previous string // previous day key, empty if never stamped
	Today    string
}

// NewDayRolloverEvent creates a DayRolloverEvent.
func NewDayRolloverEvent(fact, previous, today string) DayRolloverEvent {
	return DayRolloverEvent{
		baseEvent: newBaseEvent(DayRolloverTopic),
		Fact:      fact,
		Previous:  previous,
		Today:     today,
	}
}
