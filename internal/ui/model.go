package ui

import (
	"log"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"screenvoyeur/internal/config"
	"screenvoyeur/internal/document"
	"screenvoyeur/internal/domain"
	"screenvoyeur/internal/eventbus"
	"screenvoyeur/internal/ui/views"
	"screenvoyeur/internal/voyeur"
)

// activityLimit bounds the in-memory activity log
const activityLimit = 500

// bandOverlay receives the engine's debug reports
type bandOverlay struct {
	top     float64
	height  float64
	visible bool
}

// Update implements voyeur.DebugOverlay
func (o *bandOverlay) Update(top, height float64) {
	o.top = top
	o.height = height
}

// Model represents the UI state
type Model struct {
	config *config.Config
	bus    eventbus.EventBus

	page     *document.Page
	engine   *voyeur.Engine
	frames   *teaFrames
	overlay  *bandOverlay
	activity *ActivityLog
	pager    *PagerOps

	keys     keyMap
	help     help.Model
	renderer *views.Renderer

	anim    *gween.Tween
	animGen uint64

	width  int
	height int
	e2e    bool
}

// NewModel builds the page from cfg and attaches an engine to it
func NewModel(cfg *config.Config, bus eventbus.EventBus) (*Model, error) {
	m := &Model{
		config:   cfg,
		bus:      bus,
		page:     cfg.Page(),
		frames:   newTeaFrames(),
		overlay:  &bandOverlay{visible: cfg.Debug},
		activity: NewActivityLog(activityLimit),
		pager:    NewPagerOps(nil),
		keys:     newKeyMap(),
		help:     help.New(),
		renderer: views.NewRenderer(),
		e2e:      os.Getenv("SCREENVOYEUR_E2E_TEST") == "1",
	}

	opts := cfg.EngineOptions()
	// The overlay is always fed; d only toggles whether it is drawn
	opts.Debug = true
	opts.Overlay = m.overlay
	opts.Context = m.page
	opts.Frames = m.frames
	opts.Bus = bus

	engine, err := voyeur.New(opts)
	if err != nil {
		return nil, err
	}
	m.engine = engine

	for _, s := range m.page.Sections() {
		m.engine.AddWaypoint([]voyeur.Element{s}, s.Offset)
	}
	m.engine.UpdateVisibility()

	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// Engine returns the engine driving the page
func (m *Model) Engine() *voyeur.Engine {
	return m.engine
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.frames.cmd(m.frameInterval())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.page.Resize(msg.Width, m.viewportHeight())

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case frameMsg:
		m.frames.run(msg)

	case animMsg:
		if msg.gen == m.animGen {
			cmd = m.stepAnimation()
		}

	case EventMsg:
		m.activity.Record(msg.Event)

	case activityPagerMsg:
		if msg.err != nil {
			log.Printf("Activity pager error: %v", msg.err)
		}
	}

	return m, tea.Batch(cmd, m.frames.cmd(m.frameInterval()))
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	step := float64(m.config.UISettings.ScrollStep)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.anim = nil
		m.engine.Stop()
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.anim = nil
		m.page.ScrollBy(-step)

	case key.Matches(msg, m.keys.Down):
		m.anim = nil
		m.page.ScrollBy(step)

	case key.Matches(msg, m.keys.PageUp):
		return m.scrollTo(m.page.PageTarget(domain.DirectionUp))

	case key.Matches(msg, m.keys.PageDown):
		return m.scrollTo(m.page.PageTarget(domain.DirectionDown))

	case key.Matches(msg, m.keys.Top):
		return m.scrollTo(0)

	case key.Matches(msg, m.keys.Bottom):
		return m.scrollTo(m.page.MaxScroll())

	case key.Matches(msg, m.keys.Refresh):
		m.engine.UpdateWaypointPositions()

	case key.Matches(msg, m.keys.Engine):
		if m.engine.Running() {
			m.engine.Stop()
		} else {
			m.engine.Start()
		}

	case key.Matches(msg, m.keys.Overlay):
		m.overlay.visible = !m.overlay.visible

	case key.Matches(msg, m.keys.Activity):
		content := m.activity.String()
		pager := m.pager
		return func() tea.Msg {
			return activityPagerMsg{err: pager.Show(content)}
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.page.Resize(m.width, m.viewportHeight())
	}

	return nil
}

// scrollTo jumps or animates to target depending on the UI settings
func (m *Model) scrollTo(target float64) tea.Cmd {
	m.anim = nil
	ms := m.config.UISettings.ScrollAnimMs
	if !m.config.UISettings.SmoothScroll || ms <= 0 || target == m.page.Scroll() {
		m.page.ScrollTo(target)
		return nil
	}

	m.animGen++
	m.anim = gween.New(float32(m.page.Scroll()), float32(target), float32(ms)/1000, ease.OutQuad)
	return m.animTick()
}

func (m *Model) animTick() tea.Cmd {
	gen := m.animGen
	return tea.Tick(m.frameInterval(), func(time.Time) tea.Msg {
		return animMsg{gen: gen}
	})
}

func (m *Model) stepAnimation() tea.Cmd {
	if m.anim == nil {
		return nil
	}
	value, done := m.anim.Update(float32(m.frameInterval().Seconds()))
	m.page.ScrollTo(math.Round(float64(value)))
	if done {
		m.anim = nil
		return nil
	}
	return m.animTick()
}

func (m *Model) frameInterval() time.Duration {
	return time.Duration(m.config.UISettings.FrameIntervalMs) * time.Millisecond
}

func (m *Model) viewportHeight() int {
	h := m.height - views.ChromeHeight
	if m.help.ShowAll {
		// full help takes one row per binding in the longest column
		h -= len(m.keys.FullHelp()[0]) - 1
	}
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	active := make(map[*document.Section]bool)
	for _, wp := range m.engine.Waypoints() {
		if s, ok := wp.Element.(*document.Section); ok && wp.Visible {
			active[s] = true
		}
	}

	var forced *document.Section
	if wp := m.engine.Forced(); wp != nil {
		forced, _ = wp.Element.(*document.Section)
	}

	var overlay *views.Overlay
	if m.overlay.visible {
		overlay = &views.Overlay{Top: m.overlay.top, Height: m.overlay.height}
	}

	return m.renderer.Render(views.ViewState{
		Page:      m.page,
		Active:    active,
		Forced:    forced,
		Overlay:   overlay,
		Band:      m.engine.Band(),
		Direction: m.engine.Direction(),
		Running:   m.engine.Running(),
		LastEvent: m.activity.Last(),
		HelpModel: m.help,
		KeyMap:    m.keys,
		Ready:     m.e2e,
	})
}
