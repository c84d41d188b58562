package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/roomnav/internal/dispatch"
	"github.com/san-kum/roomnav/internal/hooks"
	"github.com/san-kum/roomnav/internal/nav"
	"github.com/san-kum/roomnav/internal/rig"
)

const (
	defaultCols     = 60
	defaultRows     = 20
	minCols         = 20
	minRows         = 8
	statsWidth      = 45
	historyCapacity = 300
	clickRadius     = 2
)

const onboardingText = "Press 1-5 or click a marker to look around.\nEsc or 0 returns to the overview."

type TickMsg time.Time

type Options struct {
	Rig        *rig.Rig
	Dispatcher *dispatch.Dispatcher
	Onboarding *hooks.Onboarding // nil disables the overlay
	FrameTime  time.Duration
	Layout     string
	Theme      string
}

// Model is the live viewer. Navigation state lives in the rig's store; the
// model only holds what it needs to draw.
type Model struct {
	rig        *rig.Rig
	dispatcher *dispatch.Dispatcher
	onboarding *hooks.Onboarding
	frameTime  time.Duration
	layout     string

	canvas    *Canvas
	proj      Projector
	labels    map[nav.TargetID]rune
	theme     Theme
	palette   palette
	frame     rig.Frame
	startDist float64
	history   []float64
	keys      keyMap
	help      help.Model
	showHelp  bool
	width     int
	height    int
}

func NewModel(opts Options) Model {
	if opts.FrameTime <= 0 {
		opts.FrameTime = time.Second / 60
	}
	if opts.Layout == "" {
		opts.Layout = "room"
	}
	theme := GetTheme(opts.Theme)
	reg := opts.Rig.Store().Registry()

	m := Model{
		rig:        opts.Rig,
		dispatcher: opts.Dispatcher,
		onboarding: opts.Onboarding,
		frameTime:  opts.FrameTime,
		layout:     opts.Layout,
		labels:     keyLabels(reg, opts.Dispatcher),
		theme:      theme,
		palette:    newPalette(theme),
		history:    make([]float64, 0, historyCapacity),
		keys:       newKeyMap(),
		help:       help.New(),
	}
	m.resize(defaultCols, defaultRows)
	m.frame = rig.Frame{
		Index:  -1,
		Target: opts.Rig.Store().Target(),
		Live:   opts.Rig.Live(),
		Goal:   opts.Rig.Store().Pose(),
	}
	return m
}

// keyLabels picks each target's single-character key trigger as its map label.
func keyLabels(reg *nav.Registry, d *dispatch.Dispatcher) map[nav.TargetID]rune {
	labels := make(map[nav.TargetID]rune)
	for _, b := range d.BySource(dispatch.Key) {
		if !reg.Has(b.Target) || len([]rune(b.Trigger)) != 1 {
			continue
		}
		if _, ok := labels[b.Target]; !ok {
			labels[b.Target] = []rune(b.Trigger)[0]
		}
	}
	return labels
}

func (m *Model) resize(cols, rows int) {
	if cols < minCols {
		cols = minCols
	}
	if rows < minRows {
		rows = minRows
	}
	m.canvas = NewCanvas(cols, rows)
	w, h := m.canvas.PixelSize()
	m.proj = NewProjector(m.rig.Store().Registry(), w, h)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frameTime, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the rig one frame per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.Cycle):
			m.cycleTarget()
		case key.Matches(msg, m.keys.Theme):
			m.theme = NextTheme(m.theme)
			m.palette = newPalette(m.theme)
		default:
			m.dispatcher.Trigger(dispatch.Key, msg.String())
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.click(msg.X-canvasOffsetX, msg.Y-canvasOffsetY)
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize(msg.Width-statsWidth-2*canvasOffsetX-4, msg.Height-2*canvasOffsetY-2)
	case TickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	prev := m.frame.Target
	m.frame = m.rig.Tick(m.frameTime)
	if m.frame.Target != prev || m.startDist == 0 {
		m.startDist = m.frame.Distance
	}

	m.history = append(m.history, m.frame.Distance)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// cycleTarget walks default -> each button target -> default, firing the
// matching button or back binding so the step goes through dispatch.
func (m *Model) cycleTarget() {
	buttons := m.dispatcher.BySource(dispatch.Button)
	current := m.rig.Store().Target()

	next := 0
	for i, b := range buttons {
		if b.Target == current {
			next = i + 1
			break
		}
	}
	if next < len(buttons) {
		m.dispatcher.Dispatch(buttons[next].Action)
		return
	}
	if back := m.dispatcher.BySource(dispatch.Back); len(back) > 0 {
		m.dispatcher.Dispatch(back[0].Action)
		return
	}
	_ = m.rig.Store().ResetToDefault()
}

// click fires the object binding of the marker nearest to canvas cell
// (col, row).
func (m *Model) click(col, row int) bool {
	id, ok := nearestTarget(m.proj, m.rig.Store().Registry(), col, row, clickRadius)
	if !ok {
		return false
	}
	for _, b := range m.dispatcher.BySource(dispatch.Object) {
		if b.Target == id {
			_, fired := m.dispatcher.Trigger(dispatch.Object, b.Trigger)
			return fired
		}
	}
	return false
}

func (m Model) progress() float64 {
	if m.startDist <= 0 {
		return 1
	}
	p := 1 - m.frame.Distance/m.startDist
	if p < 0 {
		return 0
	}
	return p
}

// View renders the map and the stats panel.
func (m Model) View() string {
	drawRoom(m.canvas, m.proj, m.rig.Store().Registry(), m.labels, m.frame.Live)
	canvasView := canvasStyle.Render(m.palette.mapView.Render(m.canvas.String()))

	target := m.rig.Store().Target()
	crumbs := []string{m.layout}
	if target != nav.Default {
		crumbs = append(crumbs, target.String())
	}

	var s strings.Builder
	s.WriteString(m.palette.header.Render("ROOMNAV") + "  " + Breadcrumb(m.palette, crumbs...) + "\n\n")

	status := m.palette.moving.Render("MOVING")
	if m.progress() >= 0.999 {
		status = m.palette.arrived.Render("ARRIVED")
	}
	s.WriteString(status + "  " + ProgressBar(m.progress(), 20) + "\n\n")

	live := m.frame.Live
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", m.frame.Index+1)) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(formatVec(live.Position.Components())) + "\n")
	s.WriteString(labelStyle.Render("Look at") + valueStyle.Render(formatVec(live.LookAt.Components())) + "\n")
	s.WriteString(labelStyle.Render("Distance") + valueStyle.Render(fmt.Sprintf("%.4f", m.frame.Distance)) + "\n")
	s.WriteString(labelStyle.Render("Changes") + valueStyle.Render(fmt.Sprintf("%d", m.rig.Store().Changes())) + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("distance"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\nTARGETS\n")
	for _, id := range m.rig.Store().Registry().Targets() {
		label := " "
		if r, ok := m.labels[id]; ok {
			label = string(r)
		}
		line := fmt.Sprintf("%s %s", label, id)
		if id == target {
			s.WriteString(m.palette.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + m.palette.muted.Render(line) + "\n")
		}
	}
	s.WriteString(helpStyle.Render(Separator(30)))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	if m.onboarding != nil && m.onboarding.Visible() {
		mainView = m.palette.overlay.Render(onboardingText) + "\n" + mainView
	}

	h := m.help
	h.ShowAll = m.showHelp
	return mainView + "\n" + helpStyle.Render(h.View(m.keys))
}

func formatVec(v []float64) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}
