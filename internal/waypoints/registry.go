package waypoints

import (
	"sort"

	"github.com/google/uuid"

	"screenvoyeur/internal/domain"
	"screenvoyeur/internal/geometry"
)

// Registry owns the waypoint collection, kept sorted ascending by top
// bound after every insertion. It is not safe for concurrent use.
type Registry struct {
	waypoints []*domain.Waypoint
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Add measures each element against the current scroll offset, registers
// it as an invisible waypoint and re-sorts the collection. Waypoints with
// equal tops keep registration order.
func (r *Registry) Add(elements []domain.Element, scroll float64, offset geometry.Offset) []*domain.Waypoint {
	added := make([]*domain.Waypoint, 0, len(elements))
	for _, el := range elements {
		if el == nil {
			continue
		}
		wp := &domain.Waypoint{
			ID:       uuid.New().String(),
			Element:  el,
			Position: geometry.WaypointBound(el.BoundingBox(), scroll, offset),
			Offset:   offset,
		}
		r.waypoints = append(r.waypoints, wp)
		added = append(added, wp)
	}

	if len(r.waypoints) > 1 {
		sort.SliceStable(r.waypoints, func(i, j int) bool {
			return r.waypoints[i].Position.Top < r.waypoints[j].Position.Top
		})
	}
	return added
}

// Refresh re-measures every waypoint from its live bounding box.
// Order is left untouched even if the new positions disagree with it.
func (r *Registry) Refresh(scroll float64) {
	for _, wp := range r.waypoints {
		wp.Position = geometry.WaypointBound(wp.Element.BoundingBox(), scroll, wp.Offset)
	}
}

// Len returns the number of registered waypoints
func (r *Registry) Len() int {
	return len(r.waypoints)
}

// At returns the waypoint at index i, or nil when out of range
func (r *Registry) At(i int) *domain.Waypoint {
	if i < 0 || i >= len(r.waypoints) {
		return nil
	}
	return r.waypoints[i]
}

// All returns the ordered collection. The slice is a copy; the waypoints
// are shared.
func (r *Registry) All() []*domain.Waypoint {
	result := make([]*domain.Waypoint, len(r.waypoints))
	copy(result, r.waypoints)
	return result
}

// IndexOf returns the index of the waypoint with the given ID, or -1
func (r *Registry) IndexOf(id string) int {
	for i, wp := range r.waypoints {
		if wp.ID == id {
			return i
		}
	}
	return -1
}
