package replay

import (
	"fmt"
	"io"
	"log"
	"strings"

	"screenvoyeur/internal/config"
	"screenvoyeur/internal/document"
	"screenvoyeur/internal/eventbus"
	"screenvoyeur/internal/scheduler"
	"screenvoyeur/internal/voyeur"
)

// Summary describes a finished replay
type Summary struct {
	Frames  int
	Enters  int
	Leaves  int
	Visible []string
}

// Run plays script against the configured page and writes one line per
// transition to out. Pending frames are flushed after the last step.
func Run(cfg *config.Config, script *Script, bus eventbus.EventBus, out io.Writer) (*Summary, error) {
	page := cfg.Page()
	page.Resize(script.Width, script.Height)

	frames := scheduler.NewManual()
	opts := cfg.EngineOptions()
	opts.Context = page
	opts.Frames = frames
	opts.Bus = bus

	engine, err := voyeur.New(opts)
	if err != nil {
		return nil, err
	}
	defer engine.Stop()

	summary := &Summary{}
	var writeErr error
	write := func(format string, args ...interface{}) {
		if writeErr == nil {
			_, writeErr = fmt.Fprintf(out, format+"\n", args...)
		}
	}

	engine.On(voyeur.Enter, func(el voyeur.Element) {
		summary.Enters++
		write("enter %s", title(el))
	})
	engine.On(voyeur.Leave, func(el voyeur.Element) {
		summary.Leaves++
		write("leave %s", title(el))
	})

	for _, s := range page.Sections() {
		engine.AddWaypoint([]voyeur.Element{s}, s.Offset)
	}
	engine.UpdateVisibility()

	for i, step := range script.Steps {
		log.Printf("Replay: step %d: %s", i+1, step)
		switch {
		case step.Scroll != nil:
			page.ScrollTo(*step.Scroll)
		case step.ScrollBy != nil:
			page.ScrollBy(*step.ScrollBy)
		case step.Resize != nil:
			page.Resize(page.Width(), *step.Resize)
		case step.Frame:
			summary.Frames += frames.Flush()
		case step.Refresh:
			engine.UpdateWaypointPositions()
		case step.Stop:
			engine.Stop()
		case step.Start:
			engine.Start()
		}
		if writeErr != nil {
			return nil, fmt.Errorf("failed to write output: %w", writeErr)
		}
	}
	summary.Frames += frames.Flush()

	for _, wp := range engine.Waypoints() {
		if wp.Visible {
			summary.Visible = append(summary.Visible, title(wp.Element))
		}
	}
	write("visible: %s", strings.Join(summary.Visible, ", "))
	if writeErr != nil {
		return nil, fmt.Errorf("failed to write output: %w", writeErr)
	}
	return summary, nil
}

func title(el voyeur.Element) string {
	if s, ok := el.(*document.Section); ok {
		return s.Title
	}
	return fmt.Sprintf("%v", el)
}
