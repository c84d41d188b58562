package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/roomnav/internal/dispatch"
	"github.com/san-kum/roomnav/internal/interp"
	"github.com/san-kum/roomnav/internal/nav"
	"github.com/san-kum/roomnav/internal/vec"
)

const (
	DefaultFPS             = 60
	DefaultLayout          = "studio"
	DefaultLogLevel        = "info"
	DefaultSettleTolerance = 0.01
)

type Config struct {
	Layout          string                `yaml:"layout"`
	Damping         DampingConfig         `yaml:"damping"`
	Frame           FrameConfig           `yaml:"frame"`
	Log             LogConfig             `yaml:"log"`
	SettleTolerance float64               `yaml:"settle_tolerance"`
	Onboarding      bool                  `yaml:"onboarding"`
	Targets         map[string]PoseConfig `yaml:"targets,omitempty"`
	Bindings        []BindingConfig       `yaml:"bindings,omitempty"`
}

type DampingConfig struct {
	Mode         string  `yaml:"mode"`
	Alpha        float64 `yaml:"alpha"`
	ReferenceFPS int     `yaml:"reference_fps"`
}

type FrameConfig struct {
	FPS int `yaml:"fps"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type PoseConfig struct {
	Position []float64 `yaml:"position,flow"`
	LookAt   []float64 `yaml:"look_at,flow"`
}

type BindingConfig struct {
	Action  string `yaml:"action"`
	Source  string `yaml:"source"`
	Trigger string `yaml:"trigger"`
	Target  string `yaml:"target"`
}

func DefaultConfig() *Config {
	return &Config{
		Layout: DefaultLayout,
		Damping: DampingConfig{
			Mode:         interp.ModeFixed,
			Alpha:        interp.Alpha,
			ReferenceFPS: DefaultFPS,
		},
		Frame:           FrameConfig{FPS: DefaultFPS},
		Log:             LogConfig{Level: DefaultLogLevel},
		SettleTolerance: DefaultSettleTolerance,
		Onboarding:      true,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks everything that can be checked without building the
// registry.
func (c *Config) Validate() error {
	if c.Frame.FPS <= 0 {
		return fmt.Errorf("frame.fps must be positive, got %d", c.Frame.FPS)
	}
	if c.Damping.ReferenceFPS <= 0 {
		return fmt.Errorf("damping.reference_fps must be positive, got %d", c.Damping.ReferenceFPS)
	}
	if c.SettleTolerance <= 0 {
		return fmt.Errorf("settle_tolerance must be positive, got %f", c.SettleTolerance)
	}
	_, err := c.DampingRule()
	return err
}

func (c *Config) FrameTime() time.Duration {
	if c.Frame.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.Frame.FPS)
}

func (c *Config) DampingRule() (interp.Damping, error) {
	ref := interp.ReferenceFrameTime
	if c.Damping.ReferenceFPS > 0 {
		ref = time.Second / time.Duration(c.Damping.ReferenceFPS)
	}
	return interp.NewDamping(c.Damping.Mode, c.Damping.Alpha, ref)
}

// Poses returns the explicit targets if any are configured, else the named
// layout.
func (c *Config) Poses() (map[nav.TargetID]nav.CameraPose, error) {
	if len(c.Targets) == 0 {
		layout := GetPreset(c.Layout)
		if layout == nil {
			return nil, fmt.Errorf("unknown layout: %s (available: %v)", c.Layout, ListPresets())
		}
		return layout, nil
	}

	poses := make(map[nav.TargetID]nav.CameraPose, len(c.Targets))
	for name, pc := range c.Targets {
		id, err := nav.ParseTarget(name)
		if err != nil {
			return nil, err
		}
		pos, err := toVec(pc.Position)
		if err != nil {
			return nil, fmt.Errorf("target %s position: %w", name, err)
		}
		look, err := toVec(pc.LookAt)
		if err != nil {
			return nil, fmt.Errorf("target %s look_at: %w", name, err)
		}
		poses[id] = nav.NewPose(pos, look)
	}
	return poses, nil
}

// Registry builds the validated target registry. Non-finite numbers fail here,
// once, instead of surfacing in the render loop.
func (c *Config) Registry() (*nav.Registry, error) {
	poses, err := c.Poses()
	if err != nil {
		return nil, err
	}
	return nav.NewRegistry(poses)
}

// BindingTable returns the configured bindings, or the default table limited
// to targets registered in reg.
func (c *Config) BindingTable(reg *nav.Registry) ([]dispatch.Binding, error) {
	if len(c.Bindings) == 0 {
		return dispatch.Registered(reg, dispatch.DefaultBindings()), nil
	}

	out := make([]dispatch.Binding, 0, len(c.Bindings))
	for _, bc := range c.Bindings {
		src, err := dispatch.ParseSourceKind(bc.Source)
		if err != nil {
			return nil, err
		}
		target, err := nav.ParseTarget(bc.Target)
		if err != nil {
			return nil, err
		}
		out = append(out, dispatch.Binding{
			Action:  bc.Action,
			Source:  src,
			Trigger: bc.Trigger,
			Target:  target,
		})
	}
	return out, nil
}

var errVecLen = errors.New("expected 3 components")

func toVec(v []float64) (vec.Vec3, error) {
	if len(v) != 3 {
		return vec.Vec3{}, fmt.Errorf("%w, got %d", errVecLen, len(v))
	}
	return vec.New(v[0], v[1], v[2]), nil
}

// FromPose converts a pose back to its YAML form.
func FromPose(p nav.CameraPose) PoseConfig {
	return PoseConfig{
		Position: p.Position.Components(),
		LookAt:   p.LookAt.Components(),
	}
}
