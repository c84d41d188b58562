// Package interp damps the live camera pose toward the pose of the current
// target, one frame at a time.
package interp

import (
	"time"

	"github.com/san-kum/roomnav/internal/nav"
)

// Interpolator holds the live camera pose. It keeps no history: each step
// only reads the live pose and the goal handed to it, so changing the goal
// mid-flight simply retargets.
type Interpolator struct {
	live    nav.CameraPose
	damping Damping
}

func New(start nav.CameraPose, d Damping) *Interpolator {
	if d == nil {
		d = Fixed{Alpha: Alpha}
	}
	return &Interpolator{live: start, damping: d}
}

// Step moves the live pose toward goal and returns the new live pose.
func (in *Interpolator) Step(goal nav.CameraPose, dt time.Duration) nav.CameraPose {
	a := in.damping.Factor(dt)
	in.live = nav.CameraPose{
		Position: in.live.Position.Lerp(goal.Position, a),
		LookAt:   in.live.LookAt.Lerp(goal.LookAt, a),
	}
	return in.live
}

func (in *Interpolator) Live() nav.CameraPose { return in.live }

func (in *Interpolator) Damping() Damping { return in.damping }

// Distance from the live pose to goal.
func (in *Interpolator) Distance(goal nav.CameraPose) float64 {
	return in.live.Distance(goal)
}

// Snap places the live pose exactly at p.
func (in *Interpolator) Snap(p nav.CameraPose) { in.live = p }
