package voyeur

import (
	"errors"
	"fmt"

	"screenvoyeur/internal/eventbus"
	"screenvoyeur/internal/geometry"
	"screenvoyeur/internal/scheduler"
)

// TriggerType selects how the trigger band is derived
type TriggerType string

const (
	TriggerViewport    TriggerType = "viewport"
	TriggerDirectional TriggerType = "directional"
	TriggerAdaptive    TriggerType = "adaptive"
)

// DefaultScrollEvent is the event name subscribed on the context
const DefaultScrollEvent = "scroll"

var (
	ErrNoContext              = errors.New("no scroll context")
	ErrNoFrames               = errors.New("no frame requester")
	ErrUnsupportedTriggerType = errors.New("trigger type not supported")
	ErrUnknownTriggerType     = errors.New("unknown trigger type")
)

// Context is the scroll container the engine observes
type Context interface {
	geometry.Viewport
	// Subscribe registers fn for the named event and returns a func that
	// removes it
	Subscribe(event string, fn func()) (unsubscribe func())
}

// ResizeSource notifies about viewport size changes
type ResizeSource interface {
	OnResize(fn func()) (unsubscribe func())
}

// DebugOverlay is told the band geometry on every frame
type DebugOverlay interface {
	Update(top, height float64)
}

// Options configures an Engine
type Options struct {
	Debug         bool
	Overlay       DebugOverlay
	Context       Context
	Window        ResizeSource // defaults to Context when it implements ResizeSource
	ScrollEvent   string
	TriggerOffset geometry.Offset
	TriggerType   TriggerType
	ForceActive   bool
	Frames        scheduler.FrameRequester
	Bus           eventbus.EventBus // optional
}

// ValidateTriggerType accepts "viewport" and the empty string
func ValidateTriggerType(t TriggerType) error {
	switch t {
	case "", TriggerViewport:
		return nil
	case TriggerDirectional, TriggerAdaptive:
		return fmt.Errorf("%w: %q", ErrUnsupportedTriggerType, t)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTriggerType, t)
	}
}

func (o Options) withDefaults() Options {
	if o.ScrollEvent == "" {
		o.ScrollEvent = DefaultScrollEvent
	}
	if o.TriggerType == "" {
		o.TriggerType = TriggerViewport
	}
	if o.Window == nil {
		if rs, ok := o.Context.(ResizeSource); ok {
			o.Window = rs
		}
	}
	return o
}

func (o Options) validate() error {
	if o.Context == nil {
		return ErrNoContext
	}
	if o.Frames == nil {
		return ErrNoFrames
	}
	return ValidateTriggerType(o.TriggerType)
}
