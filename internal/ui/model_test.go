package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenvoyeur/internal/config"
	"screenvoyeur/internal/document"
	"screenvoyeur/internal/domain"
	"screenvoyeur/internal/eventbus"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.UISettings.SmoothScroll = false
	cfg.SectionGap = 0
	cfg.Sections = []document.SectionSpec{
		{Title: "a", Height: 10},
		{Title: "b", Height: 10},
		{Title: "c", Height: 10},
	}
	return cfg
}

// newTestModel returns a model sized to a ten-row viewport with the
// resize frame already delivered
func newTestModel(t *testing.T, cfg *config.Config) *Model {
	t.Helper()
	m, err := NewModel(cfg, nil)
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 10 + 3})
	flushFrame(m)
	return m
}

func flushFrame(m *Model) {
	m.Update(frameMsg{gen: m.frames.gen})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func visibleTitles(m *Model) []string {
	var out []string
	for _, wp := range m.engine.Waypoints() {
		if wp.Visible {
			out = append(out, wp.Element.(*document.Section).Title)
		}
	}
	return out
}

func TestNewModelRegistersSections(t *testing.T) {
	m := newTestModel(t, testConfig())

	assert.Len(t, m.engine.Waypoints(), 3)
	assert.Equal(t, []string{"a"}, visibleTitles(m))
	assert.Equal(t, 10, m.page.Height())
}

func TestNewModelRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.TriggerType = "directional"
	_, err := NewModel(cfg, nil)
	assert.Error(t, err)
}

func TestBottomKeyScrollsAndEntersLastSection(t *testing.T) {
	m := newTestModel(t, testConfig())

	m.Update(runes("G"))
	assert.Equal(t, 20.0, m.page.Scroll())
	assert.True(t, m.frames.pending(), "scroll schedules a frame")

	flushFrame(m)
	assert.Equal(t, []string{"c"}, visibleTitles(m))
	assert.Equal(t, domain.DirectionDown, m.engine.Direction())

	m.Update(runes("g"))
	flushFrame(m)
	assert.Equal(t, []string{"a"}, visibleTitles(m))
	assert.Equal(t, domain.DirectionUp, m.engine.Direction())
}

func TestKeyBurstCoalescesIntoOneFrame(t *testing.T) {
	m := newTestModel(t, testConfig())

	m.Update(runes("j"))
	gen := m.frames.gen
	for i := 0; i < 4; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, gen, m.frames.gen, "one request for the whole burst")
	assert.Equal(t, 5.0, m.page.Scroll())
	assert.Equal(t, []string{"a"}, visibleTitles(m), "nothing changes before the frame")

	flushFrame(m)
	assert.Equal(t, []string{"a", "b"}, visibleTitles(m))
	assert.False(t, m.frames.pending())
}

func TestStaleFrameIsIgnored(t *testing.T) {
	m := newTestModel(t, testConfig())

	m.Update(runes("G"))
	stale := frameMsg{gen: m.frames.gen - 1}
	assert.False(t, m.frames.run(stale))
	assert.True(t, m.frames.pending())
}

func TestStoppedEngineIgnoresScroll(t *testing.T) {
	m := newTestModel(t, testConfig())

	m.Update(runes("s"))
	assert.False(t, m.engine.Running())

	m.Update(runes("G"))
	assert.False(t, m.frames.pending())
	assert.Equal(t, []string{"a"}, visibleTitles(m))

	m.Update(runes("s"))
	assert.True(t, m.engine.Running())
}

func TestRefreshKeyRunsImmediatePass(t *testing.T) {
	m := newTestModel(t, testConfig())

	m.Update(runes("s"))
	m.Update(runes("G"))
	m.Update(runes("s"))
	assert.Equal(t, []string{"a"}, visibleTitles(m), "restart alone runs no pass")

	m.Update(runes("r"))
	assert.Equal(t, []string{"c"}, visibleTitles(m), "restart re-measured the band")
	assert.Equal(t, 20.0, m.engine.Band().Top)

	m.Update(runes("k"))
	flushFrame(m)
	assert.Equal(t, []string{"b", "c"}, visibleTitles(m))
}

func TestOverlayToggle(t *testing.T) {
	m := newTestModel(t, testConfig())

	assert.NotContains(t, m.View(), "┃")
	assert.Equal(t, 10.0, m.overlay.height, "overlay is fed even while hidden")

	m.Update(runes("d"))
	assert.Contains(t, m.View(), "┃")
}

func TestSmoothScrollAnimatesToPageTarget(t *testing.T) {
	cfg := testConfig()
	cfg.UISettings.SmoothScroll = true
	cfg.UISettings.ScrollAnimMs = 48
	m := newTestModel(t, cfg)

	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	require.NotNil(t, m.anim)
	assert.Equal(t, 0.0, m.page.Scroll())

	for i := 0; i < 10 && m.anim != nil; i++ {
		m.Update(animMsg{gen: m.animGen})
	}
	assert.Nil(t, m.anim)
	assert.Equal(t, 9.0, m.page.Scroll())
}

func TestManualScrollCancelsAnimation(t *testing.T) {
	cfg := testConfig()
	cfg.UISettings.SmoothScroll = true
	m := newTestModel(t, cfg)

	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	gen := m.animGen
	m.Update(runes("j"))
	assert.Nil(t, m.anim)

	m.Update(animMsg{gen: gen})
	assert.Equal(t, 1.0, m.page.Scroll())
}

func TestEventMsgFeedsActivityLog(t *testing.T) {
	m := newTestModel(t, testConfig())
	section := m.page.Sections()[1]

	m.Update(EventMsg{Event: eventbus.WaypointEnteredEvent{Index: 1, Element: section, Forced: true}})
	m.Update(EventMsg{Event: eventbus.BandUpdatedEvent{}})

	require.Len(t, m.activity.Entries(), 1)
	assert.Contains(t, m.activity.Last(), "enter    #1 b (forced)")
	assert.Contains(t, m.View(), "#1 b")
}

func TestActivityKeyWithoutProgramReportsError(t *testing.T) {
	m := newTestModel(t, testConfig())

	cmd := m.handleKey(runes("L"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(activityPagerMsg)
	require.True(t, ok)
	assert.Error(t, msg.err)
}

func TestQuitStopsEngine(t *testing.T) {
	m := newTestModel(t, testConfig())

	cmd := m.handleKey(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.engine.Running())
}

func TestHelpToggleShrinksViewport(t *testing.T) {
	m, err := NewModel(testConfig(), nil)
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	short := m.page.Height()

	m.Update(runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Less(t, m.page.Height(), short)
}

func TestReadyMarkerInE2EMode(t *testing.T) {
	t.Setenv("SCREENVOYEUR_E2E_TEST", "1")
	m := newTestModel(t, testConfig())
	assert.Contains(t, m.View(), "__READY__")
}

func TestViewBeforeFirstResize(t *testing.T) {
	m, err := NewModel(testConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Loading...", m.View())
}

func TestTeaFramesCancel(t *testing.T) {
	f := newTeaFrames()
	ran := 0
	cancel := f.RequestFrame(func() { ran++ })
	require.NotNil(t, f.cmd(time.Millisecond))
	assert.Nil(t, f.cmd(time.Millisecond), "already scheduled")

	cancel()
	assert.False(t, f.run(frameMsg{gen: f.gen}))
	assert.Equal(t, 0, ran)

	f.RequestFrame(func() { ran++ })
	stale := cancel
	stale()
	assert.True(t, f.pending(), "an old cancel does not affect a newer request")
	assert.True(t, f.run(frameMsg{gen: f.gen}))
	assert.Equal(t, 1, ran)
}

func TestActivityLogLimit(t *testing.T) {
	a := NewActivityLog(2)
	a.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }

	assert.Equal(t, "no activity yet\n", a.String())
	assert.True(t, a.Record(eventbus.EngineStartedEvent{}))
	assert.True(t, a.Record(eventbus.WaypointAddedEvent{ID: "0123456789abcdef"}))
	assert.True(t, a.Record(eventbus.EngineStoppedEvent{}))
	assert.False(t, a.Record(eventbus.BandUpdatedEvent{}))

	assert.Equal(t, []string{
		"12:00:00  added    01234567  rows 0-0",
		"12:00:00  engine stopped",
	}, a.Entries())
}

func TestPagerOpsWithoutProgram(t *testing.T) {
	err := NewPagerOps(nil).Show("text")
	assert.EqualError(t, err, "program not set")
}
