package trigger

import (
	"screenvoyeur/internal/domain"
	"screenvoyeur/internal/geometry"
)

// Tracker owns the current trigger band and scroll direction
type Tracker struct {
	band      geometry.Band
	direction domain.Direction
}

// NewTracker measures the initial band. Direction starts as down.
func NewTracker(v geometry.Viewport, offset geometry.Offset) *Tracker {
	return &Tracker{
		band:      geometry.TriggerBand(v, offset),
		direction: domain.DirectionDown,
	}
}

// Update re-measures the band and derives the direction from the change
// in top edge. An unchanged top counts as up.
func (t *Tracker) Update(v geometry.Viewport, offset geometry.Offset) (geometry.Band, domain.Direction) {
	next := geometry.TriggerBand(v, offset)
	if next.Top > t.band.Top {
		t.direction = domain.DirectionDown
	} else {
		t.direction = domain.DirectionUp
	}
	t.band = next
	return t.band, t.direction
}

// Reset re-measures the band without deriving a direction from the old
// one. Direction returns to down, as for a new tracker.
func (t *Tracker) Reset(v geometry.Viewport, offset geometry.Offset) geometry.Band {
	t.band = geometry.TriggerBand(v, offset)
	t.direction = domain.DirectionDown
	return t.band
}

// Band returns the current band
func (t *Tracker) Band() geometry.Band {
	return t.band
}

// Direction returns the current scroll direction
func (t *Tracker) Direction() domain.Direction {
	return t.direction
}
