package replay

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrEmptyStep is returned for a step that sets no action
var ErrEmptyStep = errors.New("step has no action")

// Script is a scripted scroll session
type Script struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Steps  []Step `toml:"steps"`
}

// Step is one action. Exactly one field should be set.
type Step struct {
	Scroll   *float64 `toml:"scroll"`
	ScrollBy *float64 `toml:"scroll_by"`
	Resize   *int     `toml:"resize"`
	Frame    bool     `toml:"frame"`
	Refresh  bool     `toml:"refresh"`
	Stop     bool     `toml:"stop"`
	Start    bool     `toml:"start"`
}

// LoadScript reads a TOML script file
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScript decodes and validates a script
func ParseScript(data []byte) (*Script, error) {
	s := &Script{Width: 80, Height: 24}
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if s.Height < 1 {
		return nil, fmt.Errorf("invalid height %d: must be at least 1", s.Height)
	}
	for i, step := range s.Steps {
		if step.actions() == 0 {
			return nil, fmt.Errorf("step %d: %w", i+1, ErrEmptyStep)
		}
		if step.actions() > 1 {
			return nil, fmt.Errorf("step %d: more than one action", i+1)
		}
	}
	return s, nil
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{s.Scroll != nil, s.ScrollBy != nil, s.Resize != nil, s.Frame, s.Refresh, s.Stop, s.Start} {
		if set {
			n++
		}
	}
	return n
}

func (s Step) String() string {
	switch {
	case s.Scroll != nil:
		return fmt.Sprintf("scroll %g", *s.Scroll)
	case s.ScrollBy != nil:
		return fmt.Sprintf("scroll_by %g", *s.ScrollBy)
	case s.Resize != nil:
		return fmt.Sprintf("resize %d", *s.Resize)
	case s.Frame:
		return "frame"
	case s.Refresh:
		return "refresh"
	case s.Stop:
		return "stop"
	case s.Start:
		return "start"
	}
	return "noop"
}
