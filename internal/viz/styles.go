package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(statsWidth)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
)

// Canvas offsets introduced by canvasStyle's padding.
const (
	canvasOffsetX = 2
	canvasOffsetY = 1
)

type palette struct {
	header  lipgloss.Style
	mapView lipgloss.Style
	active  lipgloss.Style
	muted   lipgloss.Style
	arrived lipgloss.Style
	moving  lipgloss.Style
	overlay lipgloss.Style
}

func newPalette(t Theme) palette {
	return palette{
		header:  lipgloss.NewStyle().Foreground(t.Map).Bold(true),
		mapView: lipgloss.NewStyle().Foreground(t.Map),
		active:  lipgloss.NewStyle().Foreground(t.Camera).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(t.Muted),
		arrived: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		moving:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		overlay: overlayStyle.BorderForeground(t.Accent).Foreground(t.Text),
	}
}

// ProgressBar renders fraction in [0, 1] as a bar of width cells.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Breadcrumb renders "room › a › b", highlighting the last element.
func Breadcrumb(p palette, parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	out := make([]string, len(parts))
	for i, part := range parts {
		if i == len(parts)-1 {
			out[i] = p.active.Render(part)
		} else {
			out[i] = p.muted.Render(part)
		}
	}
	return strings.Join(out, p.muted.Render(" › "))
}

func Separator(width int) string {
	if width < 8 {
		return strings.Repeat("─", width)
	}
	mid := width / 2
	return strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3)
}
