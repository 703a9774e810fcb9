package callbacks

import "screenvoyeur/internal/domain"

// Callback receives the element whose waypoint changed state
type Callback func(el domain.Element)

// Handle identifies one registration. The zero Handle is never issued.
type Handle uint64

type entry struct {
	handle Handle
	fn     Callback
}

// Registry holds one ordered callback list per event kind
type Registry struct {
	tables [domain.NumEventKinds][]entry
	next   Handle
}

// NewRegistry creates an empty callback registry
func NewRegistry() *Registry {
	return &Registry{}
}

// On appends fn to the list for kind. Registering the same function
// twice makes it fire twice; each registration gets its own Handle.
func (r *Registry) On(kind domain.EventKind, fn Callback) Handle {
	if !kind.Valid() || fn == nil {
		return 0
	}
	r.next++
	r.tables[kind] = append(r.tables[kind], entry{handle: r.next, fn: fn})
	return r.next
}

// Off removes the first registration matching h. Unknown handles are ignored.
func (r *Registry) Off(kind domain.EventKind, h Handle) {
	if !kind.Valid() || h == 0 {
		return
	}
	list := r.tables[kind]
	for i, e := range list {
		if e.handle == h {
			r.tables[kind] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Dispatch calls every callback for kind in registration order.
// A panicking callback aborts the rest of the dispatch.
func (r *Registry) Dispatch(kind domain.EventKind, el domain.Element) {
	if !kind.Valid() {
		return
	}
	// Snapshot so callbacks may subscribe or unsubscribe while dispatching
	list := r.tables[kind]
	snapshot := make([]entry, len(list))
	copy(snapshot, list)
	for _, e := range snapshot {
		e.fn(el)
	}
}

// Len returns the number of callbacks registered for kind
func (r *Registry) Len(kind domain.EventKind) int {
	if !kind.Valid() {
		return 0
	}
	return len(r.tables[kind])
}
