// Package export renders saved runs to files.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/roomnav/internal/nav"
	"github.com/san-kum/roomnav/internal/rig"
)

type point struct{ X, Y float64 }

// PathToSVG draws the live camera's floor-plane path (X, Z) over the target
// markers of reg, viewed from above. It returns "" for fewer than two frames.
func PathToSVG(frames []rig.Frame, reg *nav.Registry, width, height int) string {
	if len(frames) < 2 {
		return ""
	}

	path := make([]point, len(frames))
	for i, f := range frames {
		path[i] = point{f.Live.Position.X, f.Live.Position.Z}
	}
	markers := make(map[nav.TargetID]point)
	if reg != nil {
		for _, id := range reg.Targets() {
			p := reg.MustLookup(id)
			markers[id] = point{p.LookAt.X, p.LookAt.Z}
		}
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	grow := func(p point) {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	for _, p := range path {
		grow(p)
	}
	for _, p := range markers {
		grow(p)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	toScreen := func(p point) (float64, float64) {
		return (p.X - minX) / rangeX * float64(width), (p.Y - minY) / rangeY * float64(height)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	if reg != nil {
		sb.WriteString(`<g fill="#ffff00" font-family="monospace" font-size="10">` + "\n")
		for _, id := range reg.Targets() {
			x, y := toScreen(markers[id])
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="3"/><text x="%.1f" y="%.1f">%s</text>`+"\n",
				x, y, x+5, y-5, id)
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString(`<path fill="none" stroke="#00ffff" stroke-width="1.5" d="M`)
	for i, p := range path {
		x, y := toScreen(p)
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}
	sb.WriteString(`"/>` + "\n")

	ex, ey := toScreen(path[len(path)-1])
	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="4" fill="#ff00ff"/>`+"\n", ex, ey)
	sb.WriteString("</svg>")
	return sb.String()
}
