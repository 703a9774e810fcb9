package document

import (
	"math"

	"screenvoyeur/internal/domain"
	"screenvoyeur/internal/geometry"
)

// ScrollEvent is the event name the page emits when its offset changes
const ScrollEvent = "scroll"

type listener struct {
	id uint64
	fn func()
}

// Page is a vertical stack of sections viewed through a fixed-height
// viewport. Coordinates are terminal rows. It implements the scroll
// context, resize source and element contracts the engine needs.
type Page struct {
	sections  []*Section
	gap       int
	scroll    float64
	width     int
	height    int
	listeners map[string][]listener
	resize    []listener
	nextID    uint64
}

// NewPage creates an empty page with the given gap between sections
func NewPage(gap int) *Page {
	if gap < 0 {
		gap = 0
	}
	return &Page{
		gap:       gap,
		width:     80,
		height:    24,
		listeners: make(map[string][]listener),
	}
}

// AddSection appends a section below the existing ones
func (p *Page) AddSection(title string, height int, body []string, offset geometry.Offset) *Section {
	if height < 1 {
		height = 1
	}
	top := 0
	if n := len(p.sections); n > 0 {
		top = p.sections[n-1].Bottom() + p.gap
	}
	s := &Section{
		Title:  title,
		Body:   body,
		Height: height,
		Offset: offset,
		top:    top,
		page:   p,
	}
	p.sections = append(p.sections, s)
	return s
}

// Sections returns the sections in layout order
func (p *Page) Sections() []*Section {
	out := make([]*Section, len(p.sections))
	copy(out, p.sections)
	return out
}

// Elements returns the sections as engine elements
func (p *Page) Elements() []domain.Element {
	out := make([]domain.Element, len(p.sections))
	for i, s := range p.sections {
		out[i] = s
	}
	return out
}

// ContentHeight is the total number of rows occupied by sections
func (p *Page) ContentHeight() int {
	if len(p.sections) == 0 {
		return 0
	}
	return p.sections[len(p.sections)-1].Bottom()
}

// MaxScroll is the largest valid scroll offset
func (p *Page) MaxScroll() float64 {
	return math.Max(0, float64(p.ContentHeight()-p.height))
}

// ScrollPosition implements geometry.Viewport. The page never scrolls
// horizontally.
func (p *Page) ScrollPosition(axis geometry.Axis) float64 {
	if axis == geometry.AxisX {
		return 0
	}
	return p.scroll
}

// InnerHeight implements geometry.Viewport
func (p *Page) InnerHeight() float64 {
	return float64(p.height)
}

// Width returns the viewport width in columns
func (p *Page) Width() int {
	return p.width
}

// Height returns the viewport height in rows
func (p *Page) Height() int {
	return p.height
}

// Scroll returns the current offset
func (p *Page) Scroll() float64 {
	return p.scroll
}

// ScrollTo moves the viewport, clamped to the content. It emits a scroll
// event and returns true only when the offset changed.
func (p *Page) ScrollTo(y float64) bool {
	y = p.clamp(y)
	if y == p.scroll {
		return false
	}
	p.scroll = y
	p.Emit(ScrollEvent)
	return true
}

// ScrollBy moves the viewport by dy rows
func (p *Page) ScrollBy(dy float64) bool {
	return p.ScrollTo(p.scroll + dy)
}

// PageTarget returns the offset one page away in the given direction,
// keeping one row of overlap
func (p *Page) PageTarget(dir domain.Direction) float64 {
	step := float64(p.height - 1)
	if step < 1 {
		step = 1
	}
	if dir == domain.DirectionUp {
		return p.clamp(p.scroll - step)
	}
	return p.clamp(p.scroll + step)
}

// Resize changes the viewport size and emits a resize notification.
// The scroll offset is re-clamped silently.
func (p *Page) Resize(width, height int) {
	if height < 1 {
		height = 1
	}
	p.width = width
	p.height = height
	p.scroll = p.clamp(p.scroll)
	for _, l := range snapshot(p.resize) {
		l.fn()
	}
}

// Subscribe registers fn for event and returns its unsubscribe func
func (p *Page) Subscribe(event string, fn func()) func() {
	p.nextID++
	id := p.nextID
	p.listeners[event] = append(p.listeners[event], listener{id: id, fn: fn})
	return func() {
		p.listeners[event] = without(p.listeners[event], id)
	}
}

// OnResize registers fn for viewport size changes
func (p *Page) OnResize(fn func()) func() {
	p.nextID++
	id := p.nextID
	p.resize = append(p.resize, listener{id: id, fn: fn})
	return func() {
		p.resize = without(p.resize, id)
	}
}

// Emit notifies every listener of event
func (p *Page) Emit(event string) {
	for _, l := range snapshot(p.listeners[event]) {
		l.fn()
	}
}

// ListenerCount returns the number of subscribers of event
func (p *Page) ListenerCount(event string) int {
	return len(p.listeners[event])
}

// ResizeListenerCount returns the number of resize subscribers
func (p *Page) ResizeListenerCount() int {
	return len(p.resize)
}

func (p *Page) clamp(y float64) float64 {
	return math.Min(math.Max(y, 0), p.MaxScroll())
}

func snapshot(ls []listener) []listener {
	out := make([]listener, len(ls))
	copy(out, ls)
	return out
}

func without(ls []listener, id uint64) []listener {
	for i, l := range ls {
		if l.id == id {
			return append(ls[:i:i], ls[i+1:]...)
		}
	}
	return ls
}
