package collision

import (
	"screenvoyeur/internal/callbacks"
	"screenvoyeur/internal/domain"
	"screenvoyeur/internal/geometry"
	"screenvoyeur/internal/waypoints"
)

// Transition records one enter or leave that fired during a pass
type Transition struct {
	Kind     domain.EventKind
	Index    int
	Waypoint *domain.Waypoint
	Forced   bool
}

// Result is the outcome of one pass
type Result struct {
	Active      []*domain.Waypoint // geometrically colliding, in registry order
	Inactive    []*domain.Waypoint
	Forced      *domain.Waypoint // held visible by the force-active fallback, or nil
	Transitions []Transition
}

// Observer is told about every transition after its callbacks ran
type Observer func(Transition)

// Engine evaluates the registry against a trigger band and drives
// enter/leave transitions
type Engine struct {
	registry    *waypoints.Registry
	callbacks   *callbacks.Registry
	forceActive bool
	observer    Observer

	lastVisible int
	forced      *domain.Waypoint

	active      []*domain.Waypoint
	inactive    []*domain.Waypoint
	transitions []Transition
}

// NewEngine creates a collision engine over the given registries
func NewEngine(registry *waypoints.Registry, cbs *callbacks.Registry, forceActive bool) *Engine {
	return &Engine{
		registry:    registry,
		callbacks:   cbs,
		forceActive: forceActive,
	}
}

// SetObserver installs fn as the transition observer
func (e *Engine) SetObserver(fn Observer) {
	e.observer = fn
}

// LastVisibleIndex returns the index of the last waypoint found colliding
func (e *Engine) LastVisibleIndex() int {
	return e.lastVisible
}

// Forced returns the waypoint currently held by the fallback, or nil
func (e *Engine) Forced() *domain.Waypoint {
	return e.forced
}

// Active returns the colliding waypoints of the last pass
func (e *Engine) Active() []*domain.Waypoint {
	out := make([]*domain.Waypoint, len(e.active))
	copy(out, e.active)
	return out
}

// Evaluate runs one pass. Callbacks fire synchronously, each kind's
// callbacks before the waypoint's flag flips.
func (e *Engine) Evaluate(band geometry.Band, dir domain.Direction) Result {
	e.active = e.active[:0]
	e.inactive = e.inactive[:0]
	e.transitions = nil

	n := e.registry.Len()
	colliding := make([]bool, n)
	hits := 0
	for i := 0; i < n; i++ {
		if e.registry.At(i).Position.Overlaps(band) {
			colliding[i] = true
			hits++
		}
	}

	// With nothing colliding, lastVisible cannot move during this pass,
	// so the fallback target is known before any leave fires.
	var target *domain.Waypoint
	targetIndex := -1
	if e.forceActive && hits == 0 && n > 0 {
		targetIndex = e.fallbackIndex(n, dir)
		target = e.registry.At(targetIndex)
	}

	for i := 0; i < n; i++ {
		wp := e.registry.At(i)

		switch {
		case colliding[i] && !wp.Visible:
			e.transition(wp, i, domain.Enter, false)
		case !colliding[i] && wp.Visible && wp != target:
			e.transition(wp, i, domain.Leave, false)
		}

		if colliding[i] {
			e.active = append(e.active, wp)
			e.lastVisible = i
		} else {
			e.inactive = append(e.inactive, wp)
		}
	}

	if e.forced != nil && e.forced != target {
		e.forced.Forced = false
	}
	e.forced = nil
	if target != nil {
		if !target.Visible {
			e.transition(target, targetIndex, domain.Enter, true)
		}
		target.Forced = true
		e.forced = target
	}

	return Result{
		Active:      e.Active(),
		Inactive:    append([]*domain.Waypoint(nil), e.inactive...),
		Forced:      e.forced,
		Transitions: e.transitions,
	}
}

// fallbackIndex steps from the last colliding waypoint towards the scroll
// direction. Boundary indices never move.
func (e *Engine) fallbackIndex(n int, dir domain.Direction) int {
	i := e.lastVisible
	if i > n-1 {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	if i > 0 && i < n-1 {
		if dir == domain.DirectionDown {
			i++
		} else {
			i--
		}
	}
	return i
}

func (e *Engine) transition(wp *domain.Waypoint, index int, kind domain.EventKind, forced bool) {
	e.callbacks.Dispatch(kind, wp.Element)
	wp.Visible = kind == domain.Enter

	t := Transition{Kind: kind, Index: index, Waypoint: wp, Forced: forced}
	e.transitions = append(e.transitions, t)
	if e.observer != nil {
		e.observer(t)
	}
}
