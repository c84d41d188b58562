package interp

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// Alpha is the per-frame damping factor: ~95% of the way in ~60 frames.
	Alpha = 0.05

	// ReferenceFrameTime is the frame duration Alpha was tuned for.
	ReferenceFrameTime = time.Second / 60

	ModeFixed      = "fixed"
	ModeTimeScaled = "time_scaled"
)

var (
	ErrAlphaRange  = errors.New("interp: alpha must be in (0, 1)")
	ErrUnknownMode = errors.New("interp: unknown damping mode")
)

// Damping yields the lerp factor applied on one frame.
type Damping interface {
	Factor(dt time.Duration) float64
}

// Fixed applies the same factor every frame regardless of dt, so convergence
// speed follows the display refresh rate.
type Fixed struct {
	Alpha float64
}

func (f Fixed) Factor(time.Duration) float64 { return f.Alpha }

// TimeScaled rescales Alpha so that one Reference-long frame moves by Alpha
// and convergence per second is independent of the frame rate.
type TimeScaled struct {
	Alpha     float64
	Reference time.Duration
}

func (ts TimeScaled) Factor(dt time.Duration) float64 {
	if dt <= 0 || ts.Reference <= 0 {
		return 0
	}
	return 1 - math.Pow(1-ts.Alpha, float64(dt)/float64(ts.Reference))
}

// NewDamping builds a damping rule from its configured name.
func NewDamping(mode string, alpha float64, reference time.Duration) (Damping, error) {
	if !(alpha > 0 && alpha < 1) {
		return nil, fmt.Errorf("%w: got %f", ErrAlphaRange, alpha)
	}
	switch mode {
	case "", ModeFixed:
		return Fixed{Alpha: alpha}, nil
	case ModeTimeScaled:
		if reference <= 0 {
			reference = ReferenceFrameTime
		}
		return TimeScaled{Alpha: alpha, Reference: reference}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

// ExpectedDistance is the distance left after n frames of fixed damping
// starting from d0: d0 * (1-alpha)^n.
func ExpectedDistance(d0, alpha float64, n int) float64 {
	return d0 * math.Pow(1-alpha, float64(n))
}

// FramesToFraction returns how many fixed-damping frames it takes to cover
// frac of the initial distance.
func FramesToFraction(alpha, frac float64) int {
	if frac <= 0 {
		return 0
	}
	if frac >= 1 || alpha <= 0 || alpha >= 1 {
		return -1
	}
	return int(math.Ceil(math.Log(1-frac) / math.Log(1-alpha)))
}
