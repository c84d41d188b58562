package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/roomnav/internal/dispatch"
	"github.com/san-kum/roomnav/internal/hooks"
	"github.com/san-kum/roomnav/internal/interp"
	"github.com/san-kum/roomnav/internal/nav"
	"github.com/san-kum/roomnav/internal/rig"
)

type fixture struct {
	model      Model
	store      *nav.Store
	onboarding *hooks.Onboarding
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := nav.NewStore(nav.DefaultRegistry())
	d, err := dispatch.New(store, dispatch.DefaultBindings(), nil)
	require.NoError(t, err)

	onboarding := hooks.NewOnboarding(nil)
	detach := hooks.Attach(store, onboarding)
	t.Cleanup(detach)

	m := NewModel(Options{
		Rig:        rig.New(store, interp.Fixed{Alpha: interp.Alpha}),
		Dispatcher: d,
		Onboarding: onboarding,
		Layout:     "studio",
	})
	return &fixture{model: m, store: store, onboarding: onboarding}
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	next, cmd := f.model.Update(msg)
	f.model = next.(Model)
	return cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_KeyDispatch(t *testing.T) {
	f := newFixture(t)

	f.send(runeKey("1"))
	assert.Equal(t, nav.LeftMonitor, f.store.Target())

	f.send(runeKey("4"))
	assert.Equal(t, nav.TV, f.store.Target())

	f.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, nav.Default, f.store.Target())

	f.send(runeKey("3"))
	f.send(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, nav.Default, f.store.Target())
}

func TestModel_UnboundKeyIgnored(t *testing.T) {
	f := newFixture(t)

	f.send(runeKey("9"))
	assert.Equal(t, nav.Default, f.store.Target())
	assert.Equal(t, int64(0), f.store.Changes())
}

func TestModel_Quit(t *testing.T) {
	f := newFixture(t)

	for _, msg := range []tea.KeyMsg{runeKey("q"), {Type: tea.KeyCtrlC}} {
		cmd := f.send(msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_TickAdvancesRig(t *testing.T) {
	f := newFixture(t)
	f.send(runeKey("1"))

	cmd := f.send(TickMsg(time.Now()))
	assert.NotNil(t, cmd, "tick should schedule the next tick")

	assert.Equal(t, 0, f.model.frame.Index)
	assert.InDelta(t, -0.0325, f.model.frame.Live.Position.X, 1e-9)
	assert.InDelta(t, 4.79, f.model.frame.Live.Position.Z, 1e-9)

	for i := 0; i < 9; i++ {
		f.send(TickMsg(time.Now()))
	}
	assert.Len(t, f.model.history, 10)
	assert.Less(t, f.model.history[9], f.model.history[0])
}

func TestModel_HistoryCapped(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < historyCapacity+25; i++ {
		f.send(TickMsg(time.Now()))
	}
	assert.Len(t, f.model.history, historyCapacity)
}

func TestModel_TabCyclesTargets(t *testing.T) {
	f := newFixture(t)

	want := []nav.TargetID{nav.LeftMonitor, nav.RightMonitor, nav.Bookshelf, nav.TV, nav.Window, nav.Default, nav.LeftMonitor}
	for _, target := range want {
		f.send(tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, target, f.store.Target())
	}
}

func TestModel_ClickMarker(t *testing.T) {
	f := newFixture(t)

	col, row := f.model.proj.Cell(nav.DefaultPoses()[nav.Bookshelf].LookAt)
	f.send(tea.MouseMsg{
		X:      col + canvasOffsetX,
		Y:      row + canvasOffsetY,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	assert.Equal(t, nav.Bookshelf, f.store.Target())
}

func TestModel_ClickEmptySpace(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.model.click(-50, -50))
	assert.Equal(t, nav.Default, f.store.Target())
}

func TestModel_OnboardingOverlay(t *testing.T) {
	f := newFixture(t)
	f.send(TickMsg(time.Now()))

	assert.Contains(t, f.model.View(), "Press 1-5")

	f.send(runeKey("2"))
	f.send(TickMsg(time.Now()))
	view := f.model.View()
	assert.NotContains(t, view, "Press 1-5")
	assert.Contains(t, view, "rightMonitor")

	f.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, f.onboarding.Visible(), "overlay must not come back")
}

func TestModel_HelpToggle(t *testing.T) {
	f := newFixture(t)

	assert.True(t, strings.Contains(f.model.View(), "look at target"))
	assert.False(t, strings.Contains(f.model.View(), "cycle themes"))

	f.send(runeKey("?"))
	assert.True(t, strings.Contains(f.model.View(), "cycle themes"))
	f.send(runeKey("?"))
	assert.False(t, strings.Contains(f.model.View(), "cycle themes"))
}

func TestModel_ThemeCycle(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, "studio", f.model.theme.Name)

	f.send(runeKey("t"))
	assert.Equal(t, "retro", f.model.theme.Name)
}

func TestModel_Resize(t *testing.T) {
	f := newFixture(t)

	f.send(tea.WindowSizeMsg{Width: 10, Height: 5})
	assert.Equal(t, minCols, f.model.canvas.Width)
	assert.Equal(t, minRows, f.model.canvas.Height)

	f.send(tea.WindowSizeMsg{Width: 160, Height: 50})
	assert.Greater(t, f.model.canvas.Width, defaultCols)
}

func TestKeyLabels(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, '1', f.model.labels[nav.LeftMonitor])
	assert.Equal(t, '5', f.model.labels[nav.Window])
	assert.Equal(t, '0', f.model.labels[nav.Default])
}
