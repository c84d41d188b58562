// Package automation runs navigation scenarios from YAML and randomized
// cue sequences.
package automation

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/roomnav/internal/config"
	"github.com/san-kum/roomnav/internal/experiment"
	"github.com/san-kum/roomnav/internal/rig"
)

// Scenario defines a sequence of scripted runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Zero fields keep the base configuration.
type ScenarioStep struct {
	Name    string  `yaml:"name"`
	Layout  string  `yaml:"layout"`
	Script  string  `yaml:"script"`
	Frames  int     `yaml:"frames"`
	Damping string  `yaml:"damping"`
	Alpha   float64 `yaml:"alpha"`
	FPS     int     `yaml:"fps"`
}

type StepResult struct {
	Step   ScenarioStep
	Result *rig.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

func (s ScenarioStep) apply(base *config.Config) *config.Config {
	cfg := *base
	cfg.Onboarding = false
	if s.Layout != "" {
		cfg.Layout = s.Layout
		cfg.Targets = nil
	}
	if s.Damping != "" {
		cfg.Damping.Mode = s.Damping
	}
	if s.Alpha != 0 {
		cfg.Damping.Alpha = s.Alpha
	}
	if s.FPS != 0 {
		cfg.Frame.FPS = s.FPS
	}
	return &cfg
}

// RunScenario executes all steps in order, writing progress to w.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, registry *experiment.Registry, w io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Fprintf(w, "Running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Name)

		script, err := rig.ParseScript(step.Script)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		frames := step.Frames
		if frames == 0 {
			frames = rig.DefaultRunConfig().Frames
		}

		exp, err := experiment.New(step.apply(base), registry, nil, nil)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		result, err := exp.Run(ctx, script, frames)
		exp.Close()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Result: result})
	}
	return results, nil
}

// MonteCarloConfig drives randomized cue sequences through the full stack.
type MonteCarloConfig struct {
	Trials  int
	Cues    int
	Frames  int
	Seed    int64
	Actions []string // drawn from uniformly; may include unknown actions
}

// MonteCarloResult is one trial's outcome.
type MonteCarloResult struct {
	Trial         int
	Script        rig.Script
	FinalDistance float64
	Settled       bool
	Ignored       int
	Valid         bool
}

// RunMonteCarlo plays cfg.Trials random scripts. A trial is Valid when every
// frame's live pose stayed finite.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, base *config.Config, registry *experiment.Registry) ([]MonteCarloResult, error) {
	if cfg.Trials <= 0 || cfg.Frames <= 0 || len(cfg.Actions) == 0 {
		return nil, fmt.Errorf("monte carlo needs trials, frames and actions")
	}
	if cfg.Cues < 0 {
		return nil, fmt.Errorf("monte carlo cues must be non-negative, got %d", cfg.Cues)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	results := make([]MonteCarloResult, 0, cfg.Trials)

	for trial := 0; trial < cfg.Trials; trial++ {
		script := make(rig.Script, cfg.Cues)
		for i := range script {
			script[i] = rig.Cue{
				Frame:  rng.Intn(cfg.Frames),
				Action: cfg.Actions[rng.Intn(len(cfg.Actions))],
			}
		}
		script.Sort()

		step := ScenarioStep{}
		exp, err := experiment.New(step.apply(base), registry, []string{"final_distance", "settle_frames"}, nil)
		if err != nil {
			return results, err
		}
		result, err := exp.Run(ctx, script, cfg.Frames)
		exp.Close()

		r := MonteCarloResult{Trial: trial, Script: script, Valid: err == nil}
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			results = append(results, r)
			continue
		}
		r.FinalDistance = result.Metrics["final_distance"]
		r.Settled = result.Metrics["settle_frames"] >= 0
		r.Ignored = len(result.Ignored)
		results = append(results, r)
	}
	return results, nil
}

// MonteCarloStats counts settled and unsettled trials.
func MonteCarloStats(results []MonteCarloResult) (settled int, unsettled int) {
	for _, r := range results {
		if r.Valid && r.Settled {
			settled++
		} else {
			unsettled++
		}
	}
	return settled, unsettled
}
