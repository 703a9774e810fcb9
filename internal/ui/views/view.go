package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"

	"screenvoyeur/internal/document"
	"screenvoyeur/internal/domain"
	"screenvoyeur/internal/geometry"
)

// ChromeHeight is the number of rows used by the header and footer
const ChromeHeight = 3

// Overlay is the band highlight in document rows
type Overlay struct {
	Top    float64
	Height float64
}

// Covers reports whether document row falls inside the overlay
func (o *Overlay) Covers(row int) bool {
	if o == nil {
		return false
	}
	r := float64(row)
	return r >= o.Top && r < o.Top+o.Height
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Page      *document.Page
	Active    map[*document.Section]bool
	Forced    *document.Section
	Overlay   *Overlay // nil hides the band
	Band      geometry.Band
	Direction domain.Direction
	Running   bool
	LastEvent string
	HelpModel help.Model
	KeyMap    help.KeyMap
	Ready     bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderHeader(state))
	content.WriteString("\n")
	content.WriteString(r.renderStatus(state))
	content.WriteString("\n")
	content.WriteString(r.RenderPage(state))
	content.WriteString("\n")

	footer := state.HelpModel.View(state.KeyMap)
	if state.Ready {
		footer += " __READY__"
	}
	content.WriteString(footer)

	return content.String()
}

func (r *Renderer) renderHeader(state ViewState) string {
	logo := r.styles.Title.Render("screenvoyeur")
	engine := r.styles.StatusRunning.Render("● watching")
	if !state.Running {
		engine = r.styles.StatusStopped.Render("○ stopped")
	}
	header := logo + "  " + engine
	if state.LastEvent != "" {
		header += "  " + r.styles.Dim.Render(state.LastEvent)
	}
	return header
}

func (r *Renderer) renderStatus(state ViewState) string {
	p := state.Page
	var active []string
	for _, s := range p.Sections() {
		if !state.Active[s] {
			continue
		}
		name := s.Title
		if s == state.Forced {
			name += " (forced)"
		}
		active = append(active, name)
	}
	if len(active) == 0 {
		active = []string{"none"}
	}

	return r.styles.Status.Render(fmt.Sprintf("row %d/%d  band %.0f-%.0f  %s  active: %s",
		int(p.Scroll()), int(p.MaxScroll()),
		state.Band.Top, state.Band.Bottom,
		directionArrow(state.Direction),
		strings.Join(active, ", ")))
}

// RenderPage renders the rows currently inside the viewport
func (r *Renderer) RenderPage(state ViewState) string {
	p := state.Page
	start := int(math.Floor(p.Scroll()))
	rows := make([]string, 0, p.Height())

	for i := 0; i < p.Height(); i++ {
		docRow := start + i
		inBand := state.Overlay.Covers(docRow)

		gutter := "  "
		if inBand {
			gutter = r.styles.BandGutter.Render("┃ ")
		}

		line := r.renderRow(state, docRow)
		if inBand {
			line = r.styles.Band.Render(line)
		}
		rows = append(rows, gutter+line)
	}

	return strings.Join(rows, "\n")
}

func (r *Renderer) renderRow(state ViewState, docRow int) string {
	s, row := state.Page.SectionAt(docRow)
	if s == nil {
		return ""
	}

	active := state.Active[s]
	if row == 0 {
		marker := "□ "
		style := r.styles.SectionTitle
		switch {
		case s == state.Forced:
			marker = "■ "
			style = r.styles.ForcedTitle
		case active:
			marker = "■ "
			style = r.styles.ActiveTitle
		}
		return style.Render(marker + s.Title)
	}

	text := "│ " + s.Line(row-1)
	if active {
		return r.styles.ActiveBody.Render(text)
	}
	return r.styles.Body.Render(text)
}

func directionArrow(d domain.Direction) string {
	if d == domain.DirectionUp {
		return "↑"
	}
	return "↓"
}
