package scheduler

// FrameRequester runs fn once at the next rendering-frame boundary.
// The returned cancel func drops the request if it has not run yet.
type FrameRequester interface {
	RequestFrame(fn func()) (cancel func())
}

// Scheduler coalesces notifications into at most one pending
// recomputation. It is not safe for concurrent use; notifications and
// frames must arrive on the same goroutine.
type Scheduler struct {
	frames  FrameRequester
	run     func()
	pending bool
	cancel  func()
}

// New creates a scheduler that calls run on each granted frame
func New(frames FrameRequester, run func()) *Scheduler {
	return &Scheduler{frames: frames, run: run}
}

// Notify requests a recomputation. It returns false when one is already
// pending, in which case the notification is absorbed by it.
func (s *Scheduler) Notify() bool {
	if s.pending {
		return false
	}
	s.pending = true
	s.cancel = s.frames.RequestFrame(s.frame)
	return true
}

// Pending reports whether a recomputation is scheduled
func (s *Scheduler) Pending() bool {
	return s.pending
}

// Cancel drops the pending recomputation, if any
func (s *Scheduler) Cancel() {
	if !s.pending {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.pending = false
	s.cancel = nil
}

func (s *Scheduler) frame() {
	if !s.pending {
		return
	}
	// Cleared even if run panics so later notifications still schedule
	defer func() {
		s.pending = false
		s.cancel = nil
	}()
	s.run()
}
