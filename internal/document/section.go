package document

import "screenvoyeur/internal/geometry"

// Section is one block of rows on a page
type Section struct {
	Title  string
	Body   []string
	Height int
	Offset geometry.Offset // waypoint offset used when registering

	top  int
	page *Page
}

// Top returns the first document row of the section
func (s *Section) Top() int {
	return s.top
}

// Bottom returns the row just past the section
func (s *Section) Bottom() int {
	return s.top + s.Height
}

// BoundingBox reports the section relative to the viewport, like a
// browser's getBoundingClientRect
func (s *Section) BoundingBox() geometry.Rect {
	top := float64(s.top) - s.page.scroll
	return geometry.Rect{
		Top:    top,
		Bottom: top + float64(s.Height),
		Left:   0,
		Right:  float64(s.page.width),
	}
}

// Line returns the text for row within the section, or "" past the body
func (s *Section) Line(row int) string {
	if row < 0 || row >= len(s.Body) {
		return ""
	}
	return s.Body[row]
}

// SectionSpec describes a section in configuration and script files
type SectionSpec struct {
	Title  string          `toml:"title"`
	Height int             `toml:"height"`
	Body   []string        `toml:"body"`
	Offset geometry.Offset `toml:"offset"`
}

// Build lays out specs top to bottom
func Build(gap int, specs []SectionSpec) *Page {
	p := NewPage(gap)
	for _, spec := range specs {
		p.AddSection(spec.Title, spec.Height, spec.Body, spec.Offset)
	}
	return p
}

// SectionAt returns the section covering document row and the row
// relative to the section's top. Gap rows return nil.
func (p *Page) SectionAt(row int) (*Section, int) {
	for _, s := range p.sections {
		if row >= s.top && row < s.Bottom() {
			return s, row - s.top
		}
		if row < s.top {
			break
		}
	}
	return nil, 0
}
