package geometry

// Axis selects the scroll direction to measure
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Offset is an inward inset applied when measuring a band or a waypoint
type Offset struct {
	Top    float64 `toml:"top"`
	Bottom float64 `toml:"bottom"`
}

// Band is the active detection zone in document coordinates
type Band struct {
	Top    float64
	Bottom float64
	Height float64
}

// Bound is a waypoint's vertical extent in document coordinates
type Bound struct {
	Top    float64
	Bottom float64
}

// Rect is a bounding box in viewport coordinates
type Rect struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// Viewport is the scroll container the band is measured against
type Viewport interface {
	ScrollPosition(axis Axis) float64
	InnerHeight() float64
}

// ScrollOffset returns the container's scroll distance along axis.
// An empty axis means AxisY.
func ScrollOffset(v Viewport, axis Axis) float64 {
	if axis == "" {
		axis = AxisY
	}
	return v.ScrollPosition(axis)
}

// TriggerBand measures the band for the container's current scroll position
func TriggerBand(v Viewport, offset Offset) Band {
	scroll := ScrollOffset(v, AxisY)
	inner := v.InnerHeight()
	return Band{
		Top:    scroll + offset.Top,
		Bottom: scroll + inner - offset.Bottom,
		Height: inner - offset.Top - offset.Bottom,
	}
}

// WaypointBound converts a viewport-relative box into a document bound.
// The waypoint offset grows the bound outward on both edges.
func WaypointBound(r Rect, scroll float64, offset Offset) Bound {
	return Bound{
		Top:    r.Top + scroll - offset.Top,
		Bottom: r.Bottom + scroll + offset.Bottom,
	}
}

// Overlaps reports whether [aStart, aStop] and [bStart, bStop] intersect.
// Touching edges do not count.
func Overlaps(aStart, aStop, bStart, bStop float64) bool {
	return aStart < bStop && aStop > bStart
}

// Overlaps reports whether the bound collides with band b
func (w Bound) Overlaps(b Band) bool {
	return Overlaps(w.Top, w.Bottom, b.Top, b.Bottom)
}
