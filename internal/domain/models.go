package domain

import "screenvoyeur/internal/geometry"

// Element is the external handle a waypoint tracks. The engine never
// creates or destroys elements; it only reads their bounding box.
type Element interface {
	BoundingBox() geometry.Rect
}

// Waypoint represents one registered region
type Waypoint struct {
	ID       string
	Element  Element
	Position geometry.Bound
	Offset   geometry.Offset
	Visible  bool // last known collision state
	Forced   bool // visible only because of the force-active fallback
}

// Direction is the scroll direction derived from consecutive bands
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// EventKind selects a callback table
type EventKind int

const (
	Enter EventKind = iota
	Leave

	NumEventKinds // number of kinds, sizes dispatch tables
)

// EventKinds lists every kind in dispatch-table order
func EventKinds() []EventKind {
	return []EventKind{Enter, Leave}
}

// Valid reports whether k names a known kind
func (k EventKind) Valid() bool {
	return k >= 0 && k < NumEventKinds
}

func (k EventKind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Leave:
		return "leave"
	default:
		return "unknown"
	}
}

// ParseEventKind maps "enter"/"leave" to a kind
func ParseEventKind(s string) (EventKind, bool) {
	switch s {
	case "enter":
		return Enter, true
	case "leave":
		return Leave, true
	}
	return 0, false
}
