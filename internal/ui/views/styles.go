package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Status        lipgloss.Style
	Dim           lipgloss.Style
	SectionTitle  lipgloss.Style
	ActiveTitle   lipgloss.Style
	ForcedTitle   lipgloss.Style
	Body          lipgloss.Style
	ActiveBody    lipgloss.Style
	Band          lipgloss.Style
	BandGutter    lipgloss.Style
	StatusStopped lipgloss.Style
	StatusRunning lipgloss.Style
	Help          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Dim:           lipgloss.NewStyle().Faint(true),
		SectionTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		ActiveTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		ForcedTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")), // yellow
		Body:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ActiveBody:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Band:          lipgloss.NewStyle().Background(lipgloss.Color("238")),
		BandGutter:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		StatusStopped: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusRunning: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Help:          lipgloss.NewStyle().Faint(true),
	}
}
