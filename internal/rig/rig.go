// Package rig owns the render loop: every tick it reads the current target
// from the store and damps the live camera toward that target's preset.
package rig

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/roomnav/internal/interp"
	"github.com/san-kum/roomnav/internal/nav"
)

// Dispatcher is the part of dispatch.Dispatcher the rig needs for scripts.
type Dispatcher interface {
	Dispatch(action string) (nav.TargetID, bool)
}

type Rig struct {
	store     *nav.Store
	interp    *interp.Interpolator
	metrics   []Metric
	observers []Observer
	index     int
	elapsed   time.Duration
}

// New starts the live camera exactly on the current target's preset.
func New(store *nav.Store, d interp.Damping) *Rig {
	return &Rig{
		store:     store,
		interp:    interp.New(store.Pose(), d),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Rig) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Rig) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Rig) Store() *nav.Store            { return r.store }
func (r *Rig) Live() nav.CameraPose         { return r.interp.Live() }
func (r *Rig) Interp() *interp.Interpolator { return r.interp }

// Tick advances one frame of dt.
func (r *Rig) Tick(dt time.Duration) Frame {
	target := r.store.Target()
	goal := r.store.Registry().MustLookup(target)

	live := r.interp.Step(goal, dt)
	r.elapsed += dt

	f := Frame{
		Index:    r.index,
		Elapsed:  r.elapsed,
		Target:   target,
		Live:     live,
		Goal:     goal,
		Distance: live.Distance(goal),
	}
	r.index++

	for _, m := range r.metrics {
		m.Observe(f)
	}
	for _, obs := range r.observers {
		obs.OnFrame(f)
	}
	return f
}

// Run ticks cfg.Frames frames, firing script cues through d before the tick
// of their frame. Cues that do not fire, including those at or past
// cfg.Frames, are recorded in Result.Ignored. The script may be unsorted.
func (r *Rig) Run(ctx context.Context, d Dispatcher, script Script, cfg RunConfig) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(script) > 0 && d == nil {
		return nil, fmt.Errorf("script given without a dispatcher")
	}
	script = append(Script(nil), script...)
	script.Sort()

	result := &Result{
		Frames:  make([]Frame, 0, cfg.Frames),
		Metrics: make(map[string]float64),
	}
	for _, m := range r.metrics {
		m.Reset()
	}

	start := time.Now()
	next := 0
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			result.Duration = time.Since(start)
			return result, ctx.Err()
		default:
		}

		for next < len(script) && script[next].Frame <= i {
			cue := script[next]
			if _, ok := d.Dispatch(cue.Action); !ok {
				result.Ignored = append(result.Ignored, cue.Action)
			}
			next++
		}

		f := r.Tick(cfg.FrameTime)
		if !f.Live.IsValid() {
			result.Duration = time.Since(start)
			return result, RunError{Frame: i, Message: "invalid live pose (NaN/Inf)"}
		}
		result.Frames = append(result.Frames, f)
	}
	for _, cue := range script[next:] {
		result.Ignored = append(result.Ignored, cue.Action)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Duration = time.Since(start)
	return result, nil
}

// RunWithCallback ticks until the callback returns false or ctx is done.
func (r *Rig) RunWithCallback(ctx context.Context, frameTime time.Duration, callback func(Frame) bool) error {
	if frameTime <= 0 {
		return fmt.Errorf("frame time must be positive, got %v", frameTime)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !callback(r.Tick(frameTime)) {
			return nil
		}
	}
}

func validateConfig(cfg RunConfig) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	if cfg.FrameTime <= 0 {
		return fmt.Errorf("frame time must be positive, got %v", cfg.FrameTime)
	}
	return nil
}
