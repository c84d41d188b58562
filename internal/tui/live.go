// Package tui prints headless runs as they play.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/roomnav/internal/rig"
)

const barWidth = 24

// LiveRenderer is a rig.Observer writing one status line every Every frames
// and on every target change.
type LiveRenderer struct {
	w     io.Writer
	every int

	startDist float64
	last      rig.Frame
	has       bool
	lines     int
}

func NewLiveRenderer(w io.Writer, every int) *LiveRenderer {
	if every < 1 {
		every = 1
	}
	return &LiveRenderer{w: w, every: every}
}

func (r *LiveRenderer) OnFrame(f rig.Frame) {
	changed := !r.has || f.Target != r.last.Target
	if changed {
		r.startDist = f.Distance
	}
	r.last, r.has = f, true

	if !changed && f.Index%r.every != 0 {
		return
	}
	r.lines++
	fmt.Fprintf(r.w, "%5d  %6.3fs  %-13s  %s  d=%.4f\n",
		f.Index, f.Elapsed.Seconds(), f.Target, bar(r.startDist, f.Distance), f.Distance)
}

// Lines returns how many lines were written.
func (r *LiveRenderer) Lines() int { return r.lines }

func bar(start, d float64) string {
	frac := 1.0
	if start > 0 {
		frac = 1 - d/start
	}
	if frac < 0 {
		frac = 0
	}
	filled := int(frac * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled) + "]"
}
