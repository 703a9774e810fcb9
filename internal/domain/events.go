package domain

import "screenvoyeur/internal/geometry"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventWaypointAdded   EventType = "WaypointAdded"
	EventWaypointEntered EventType = "WaypointEntered"
	EventWaypointLeft    EventType = "WaypointLeft"
	EventBandUpdated     EventType = "BandUpdated"
	EventEngineStarted   EventType = "EngineStarted"
	EventEngineStopped   EventType = "EngineStopped"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// WaypointAddedEvent is emitted when a waypoint is registered
type WaypointAddedEvent struct {
	ID       string
	Position geometry.Bound
}

func (e WaypointAddedEvent) Type() EventType { return EventWaypointAdded }

// WaypointEnteredEvent is emitted after the enter callbacks of a waypoint ran
type WaypointEnteredEvent struct {
	ID      string
	Index   int
	Element Element
	Forced  bool // entered through the force-active fallback
}

func (e WaypointEnteredEvent) Type() EventType { return EventWaypointEntered }

// WaypointLeftEvent is emitted after the leave callbacks of a waypoint ran
type WaypointLeftEvent struct {
	ID      string
	Index   int
	Element Element
}

func (e WaypointLeftEvent) Type() EventType { return EventWaypointLeft }

// BandUpdatedEvent is emitted once per scheduled frame
type BandUpdatedEvent struct {
	Band      geometry.Band
	Direction Direction
}

func (e BandUpdatedEvent) Type() EventType { return EventBandUpdated }

// EngineStartedEvent is emitted when the engine subscribes to its context
type EngineStartedEvent struct{}

func (e EngineStartedEvent) Type() EventType { return EventEngineStarted }

// EngineStoppedEvent is emitted when the engine releases its subscriptions
type EngineStoppedEvent struct{}

func (e EngineStoppedEvent) Type() EventType { return EventEngineStopped }
