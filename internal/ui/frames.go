package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// teaFrames delivers engine frames through the Bubble Tea update loop so
// the engine only ever runs on the program's goroutine. At most one frame
// is outstanding; a newer request supersedes an older one.
type teaFrames struct {
	fn        func()
	gen       uint64
	scheduled bool
}

func newTeaFrames() *teaFrames {
	return &teaFrames{}
}

// RequestFrame implements scheduler.FrameRequester
func (f *teaFrames) RequestFrame(fn func()) func() {
	f.gen++
	gen := f.gen
	f.fn = fn
	f.scheduled = false
	return func() {
		if f.gen == gen {
			f.fn = nil
		}
	}
}

// cmd returns a tick for a request that has not been scheduled yet
func (f *teaFrames) cmd(interval time.Duration) tea.Cmd {
	if f.fn == nil || f.scheduled {
		return nil
	}
	f.scheduled = true
	gen := f.gen
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

// run executes the frame msg belongs to. Stale and cancelled frames are
// ignored.
func (f *teaFrames) run(msg frameMsg) bool {
	if msg.gen != f.gen || f.fn == nil {
		return false
	}
	fn := f.fn
	f.fn = nil
	fn()
	return true
}

func (f *teaFrames) pending() bool {
	return f.fn != nil
}
