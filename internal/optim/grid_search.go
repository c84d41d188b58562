// Package optim searches damping settings for the best scripted run.
package optim

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/san-kum/roomnav/internal/experiment"
	"github.com/san-kum/roomnav/internal/rig"
)

var ErrNoTrials = errors.New("optim: empty search grid")

// Trial is one point of the grid and what its run measured.
type Trial struct {
	Mode    string
	Alpha   float64
	Metrics map[string]float64
	Score   float64
	Err     error
}

// BuildFunc creates an independent experiment for one grid point.
type BuildFunc func(mode string, alpha float64) (*experiment.Experiment, error)

type GridSearch struct {
	modes  []string
	alphas []float64
}

func NewGridSearch(modes []string, alphas []float64) *GridSearch {
	return &GridSearch{modes: modes, alphas: alphas}
}

// Search runs every (mode, alpha) pair concurrently and returns the trial with
// the lowest score for metricName, plus all trials in grid order.
func (g *GridSearch) Search(ctx context.Context, build BuildFunc, script rig.Script, frames int, metricName string) (Trial, []Trial, error) {
	n := len(g.modes) * len(g.alphas)
	if n == 0 {
		return Trial{}, nil, ErrNoTrials
	}

	trials := make([]Trial, n)
	var wg sync.WaitGroup
	for i, mode := range g.modes {
		for j, alpha := range g.alphas {
			idx := i*len(g.alphas) + j
			trials[idx] = Trial{Mode: mode, Alpha: alpha, Score: math.Inf(1)}

			wg.Add(1)
			go func(t *Trial) {
				defer wg.Done()
				t.Metrics, t.Err = runTrial(ctx, build, t.Mode, t.Alpha, script, frames)
				if t.Err == nil {
					t.Score = Score(metricName, t.Metrics[metricName])
				}
			}(&trials[idx])
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Trial{}, trials, err
	}

	best := -1
	for i, t := range trials {
		if t.Err != nil {
			continue
		}
		if best < 0 || t.Score < trials[best].Score {
			best = i
		}
	}
	if best < 0 {
		return Trial{}, trials, trials[0].Err
	}
	return trials[best], trials, nil
}

func runTrial(ctx context.Context, build BuildFunc, mode string, alpha float64, script rig.Script, frames int) (map[string]float64, error) {
	exp, err := build(mode, alpha)
	if err != nil {
		return nil, err
	}
	defer exp.Close()

	result, err := exp.Run(ctx, script, frames)
	if err != nil {
		return nil, err
	}
	return result.Metrics, nil
}

// Score maps a metric value onto "lower is better". An unsettled run
// (settle_frames of -1) scores +Inf.
func Score(metricName string, v float64) float64 {
	if metricName == "settle_frames" && v < 0 {
		return math.Inf(1)
	}
	if math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}
