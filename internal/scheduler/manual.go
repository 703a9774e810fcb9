package scheduler

type manualFrame struct {
	fn        func()
	cancelled bool
}

// Manual queues frame requests until Flush is called. It drives the
// scheduler deterministically from tests and the replay driver.
type Manual struct {
	queue []*manualFrame
}

// NewManual creates an empty manual frame source
func NewManual() *Manual {
	return &Manual{}
}

// RequestFrame queues fn for the next Flush
func (m *Manual) RequestFrame(fn func()) func() {
	f := &manualFrame{fn: fn}
	m.queue = append(m.queue, f)
	return func() { f.cancelled = true }
}

// Flush runs every queued, non-cancelled request and returns how many ran.
// Requests made while flushing wait for the following Flush.
func (m *Manual) Flush() int {
	batch := m.queue
	m.queue = nil
	ran := 0
	for _, f := range batch {
		if f.cancelled {
			continue
		}
		f.fn()
		ran++
	}
	return ran
}

// Pending returns the number of live queued requests
func (m *Manual) Pending() int {
	n := 0
	for _, f := range m.queue {
		if !f.cancelled {
			n++
		}
	}
	return n
}
