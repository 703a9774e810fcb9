package ui

import (
	"screenvoyeur/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// frameMsg delivers a scheduled engine frame
type frameMsg struct {
	gen uint64
}

// animMsg advances the smooth scroll animation
type animMsg struct {
	gen uint64
}

// activityPagerMsg contains the result of the activity pager command
type activityPagerMsg struct {
	err error
}
