package rig

import (
	"fmt"
	"time"

	"github.com/san-kum/roomnav/internal/nav"
)

// Frame is what one render tick produced.
type Frame struct {
	Index    int
	Elapsed  time.Duration
	Target   nav.TargetID
	Live     nav.CameraPose
	Goal     nav.CameraPose
	Distance float64
}

type Observer interface {
	OnFrame(f Frame)
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type RunConfig struct {
	Frames    int
	FrameTime time.Duration
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Frames:    240,
		FrameTime: time.Second / 60,
	}
}

type Result struct {
	Frames   []Frame
	Metrics  map[string]float64
	Ignored  []string
	Duration time.Duration
}

// Final returns the last frame of the run.
func (r *Result) Final() (Frame, bool) {
	if len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

type RunError struct {
	Frame   int
	Message string
}

func (e RunError) Error() string {
	return fmt.Sprintf("frame %d: %s", e.Frame, e.Message)
}
