package voyeur

import (
	"fmt"
	"log"

	"screenvoyeur/internal/callbacks"
	"screenvoyeur/internal/collision"
	"screenvoyeur/internal/domain"
	"screenvoyeur/internal/eventbus"
	"screenvoyeur/internal/geometry"
	"screenvoyeur/internal/scheduler"
	"screenvoyeur/internal/trigger"
	"screenvoyeur/internal/waypoints"
)

// Re-export the types callers need to use the engine
type Element = domain.Element
type Waypoint = domain.Waypoint
type EventKind = domain.EventKind
type Callback = callbacks.Callback
type Handle = callbacks.Handle
type Result = collision.Result

const (
	Enter = domain.Enter
	Leave = domain.Leave
)

// Engine detects when registered waypoints enter or leave the trigger
// band. All methods must be called from the goroutine that delivers the
// context's notifications and frames.
type Engine struct {
	opts      Options
	tracker   *trigger.Tracker
	registry  *waypoints.Registry
	callbacks *callbacks.Registry
	collision *collision.Engine
	scheduler *scheduler.Scheduler

	unsubscribe []func()
	running     bool
	started     bool
}

// New validates opts, measures the initial band and starts listening
func New(opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid engine options: %w", err)
	}

	e := &Engine{
		opts:      opts,
		tracker:   trigger.NewTracker(opts.Context, opts.TriggerOffset),
		registry:  waypoints.NewRegistry(),
		callbacks: callbacks.NewRegistry(),
	}
	e.collision = collision.NewEngine(e.registry, e.callbacks, opts.ForceActive)
	e.collision.SetObserver(e.publishTransition)
	e.scheduler = scheduler.New(opts.Frames, e.frame)

	e.reportOverlay()
	e.Start()
	return e, nil
}

// Start subscribes to the context's scroll event and the resize source.
// A restart re-measures the band, since scrolls and resizes made while
// stopped were not observed. Calling Start on a running engine does
// nothing.
func (e *Engine) Start() {
	if e.running {
		return
	}
	if e.started {
		e.tracker.Reset(e.opts.Context, e.opts.TriggerOffset)
	}
	e.started = true
	e.running = true
	e.unsubscribe = append(e.unsubscribe, e.opts.Context.Subscribe(e.opts.ScrollEvent, e.onScroll))
	if e.opts.Window != nil {
		e.unsubscribe = append(e.unsubscribe, e.opts.Window.OnResize(e.onResize))
	}
	log.Printf("Engine: started on %q (force active: %v)", e.opts.ScrollEvent, e.opts.ForceActive)
	e.publish(domain.EngineStartedEvent{})
}

// Stop releases the scroll and resize subscriptions and cancels the
// pending recomputation
func (e *Engine) Stop() {
	if !e.running {
		return
	}
	e.running = false
	for _, unsubscribe := range e.unsubscribe {
		if unsubscribe != nil {
			unsubscribe()
		}
	}
	e.unsubscribe = nil
	e.scheduler.Cancel()
	log.Printf("Engine: stopped")
	e.publish(domain.EngineStoppedEvent{})
}

// Running reports whether the engine is subscribed to its context
func (e *Engine) Running() bool {
	return e.running
}

// AddWaypoint registers elements measured at the current scroll offset.
// Only the first offset is used; omitted means zero.
func (e *Engine) AddWaypoint(elements []Element, offset ...geometry.Offset) {
	var off geometry.Offset
	if len(offset) > 0 {
		off = offset[0]
	}
	added := e.registry.Add(elements, geometry.ScrollOffset(e.opts.Context, geometry.AxisY), off)
	for _, wp := range added {
		e.publish(domain.WaypointAddedEvent{ID: wp.ID, Position: wp.Position})
	}
}

// UpdateWaypointPositions re-measures every waypoint and immediately runs
// a collision pass
func (e *Engine) UpdateWaypointPositions() Result {
	e.registry.Refresh(geometry.ScrollOffset(e.opts.Context, geometry.AxisY))
	return e.UpdateVisibility()
}

// UpdateVisibility runs one collision pass against the current band
func (e *Engine) UpdateVisibility() Result {
	return e.collision.Evaluate(e.tracker.Band(), e.tracker.Direction())
}

// On subscribes fn to kind and returns the handle to pass to Off
func (e *Engine) On(kind EventKind, fn Callback) Handle {
	return e.callbacks.On(kind, fn)
}

// Off removes the registration identified by h
func (e *Engine) Off(kind EventKind, h Handle) {
	e.callbacks.Off(kind, h)
}

// Band returns the current trigger band
func (e *Engine) Band() geometry.Band {
	return e.tracker.Band()
}

// Direction returns the current scroll direction
func (e *Engine) Direction() domain.Direction {
	return e.tracker.Direction()
}

// Waypoints returns the registered waypoints in order
func (e *Engine) Waypoints() []*Waypoint {
	return e.registry.All()
}

// Active returns the waypoints that collided in the last pass
func (e *Engine) Active() []*Waypoint {
	return e.collision.Active()
}

// Forced returns the waypoint held by the force-active fallback, or nil
func (e *Engine) Forced() *Waypoint {
	return e.collision.Forced()
}

// Pending reports whether a recomputation is waiting for a frame
func (e *Engine) Pending() bool {
	return e.scheduler.Pending()
}

func (e *Engine) onScroll() {
	e.tracker.Update(e.opts.Context, e.opts.TriggerOffset)
	e.scheduler.Notify()
}

func (e *Engine) onResize() {
	e.tracker.Update(e.opts.Context, e.opts.TriggerOffset)
	e.scheduler.Notify()
}

// frame is the scheduled recomputation
func (e *Engine) frame() {
	e.reportOverlay()
	e.publish(domain.BandUpdatedEvent{Band: e.tracker.Band(), Direction: e.tracker.Direction()})
	e.UpdateVisibility()
}

func (e *Engine) reportOverlay() {
	if !e.opts.Debug || e.opts.Overlay == nil {
		return
	}
	band := e.tracker.Band()
	e.opts.Overlay.Update(band.Top, band.Height)
}

func (e *Engine) publishTransition(t collision.Transition) {
	switch t.Kind {
	case domain.Enter:
		e.publish(domain.WaypointEnteredEvent{ID: t.Waypoint.ID, Index: t.Index, Element: t.Waypoint.Element, Forced: t.Forced})
	case domain.Leave:
		e.publish(domain.WaypointLeftEvent{ID: t.Waypoint.ID, Index: t.Index, Element: t.Waypoint.Element})
	}
}

func (e *Engine) publish(event eventbus.DomainEvent) {
	if e.opts.Bus != nil {
		e.opts.Bus.Publish(event)
	}
}
