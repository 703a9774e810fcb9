package ui

import (
	"fmt"
	"strings"
	"time"

	"screenvoyeur/internal/document"
	"screenvoyeur/internal/domain"
	"screenvoyeur/internal/eventbus"
)

// ActivityLog keeps the most recent engine events as text lines
type ActivityLog struct {
	entries []string
	limit   int
	now     func() time.Time
}

// NewActivityLog creates a log holding at most limit entries
func NewActivityLog(limit int) *ActivityLog {
	if limit < 1 {
		limit = 1
	}
	return &ActivityLog{limit: limit, now: time.Now}
}

// Record formats event and appends it. Events with no text form are
// ignored and return false.
func (a *ActivityLog) Record(event eventbus.DomainEvent) bool {
	text := describe(event)
	if text == "" {
		return false
	}
	a.entries = append(a.entries, a.now().Format("15:04:05")+"  "+text)
	if len(a.entries) > a.limit {
		a.entries = a.entries[len(a.entries)-a.limit:]
	}
	return true
}

// Entries returns a copy of the log, oldest first
func (a *ActivityLog) Entries() []string {
	out := make([]string, len(a.entries))
	copy(out, a.entries)
	return out
}

// Last returns the newest entry or ""
func (a *ActivityLog) Last() string {
	if len(a.entries) == 0 {
		return ""
	}
	return a.entries[len(a.entries)-1]
}

// String renders the whole log for the pager
func (a *ActivityLog) String() string {
	if len(a.entries) == 0 {
		return "no activity yet\n"
	}
	return strings.Join(a.entries, "\n") + "\n"
}

func describe(event eventbus.DomainEvent) string {
	switch e := event.(type) {
	case eventbus.WaypointAddedEvent:
		return fmt.Sprintf("added    %s  rows %.0f-%.0f", shortID(e.ID), e.Position.Top, e.Position.Bottom)
	case eventbus.WaypointEnteredEvent:
		text := fmt.Sprintf("enter    #%d %s", e.Index, elementTitle(e.Element))
		if e.Forced {
			text += " (forced)"
		}
		return text
	case eventbus.WaypointLeftEvent:
		return fmt.Sprintf("leave    #%d %s", e.Index, elementTitle(e.Element))
	case eventbus.EngineStartedEvent:
		return "engine started"
	case eventbus.EngineStoppedEvent:
		return "engine stopped"
	}
	return ""
}

func elementTitle(el domain.Element) string {
	if s, ok := el.(*document.Section); ok {
		return s.Title
	}
	return "?"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
