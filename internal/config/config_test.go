package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/san-kum/roomnav/internal/interp"
	"github.com/san-kum/roomnav/internal/nav"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Layout != "studio" {
		t.Errorf("expected layout studio, got %s", cfg.Layout)
	}
	if cfg.Damping.Alpha != interp.Alpha {
		t.Errorf("expected alpha %f, got %f", interp.Alpha, cfg.Damping.Alpha)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if cfg.FrameTime() != time.Second/60 {
		t.Errorf("expected 60 fps frame time, got %v", cfg.FrameTime())
	}

	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if reg.Len() != 6 {
		t.Errorf("expected 6 targets, got %d", reg.Len())
	}
}

func TestGetPreset(t *testing.T) {
	layout := GetPreset("desk")
	if layout == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(layout) != 2 {
		t.Errorf("expected 2 targets, got %d", len(layout))
	}

	layout[nav.TV] = nav.CameraPose{}
	if _, ok := GetPreset("desk")[nav.TV]; ok {
		t.Error("GetPreset should return an independent copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg := DefaultConfig()
	cfg.Layout = "nonexistent"
	if _, err := cfg.Registry(); err == nil {
		t.Error("expected error for unknown layout")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 3 || presets[0] != "compact" {
		t.Errorf("unexpected presets: %v", presets)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.Frame.FPS = 0 }},
		{"zero reference fps", func(c *Config) { c.Damping.ReferenceFPS = 0 }},
		{"alpha too large", func(c *Config) { c.Damping.Alpha = 1.5 }},
		{"unknown mode", func(c *Config) { c.Damping.Mode = "spring" }},
		{"zero tolerance", func(c *Config) { c.SettleTolerance = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDampingRule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Damping.Mode = interp.ModeTimeScaled
	cfg.Damping.ReferenceFPS = 30

	d, err := cfg.DampingRule()
	if err != nil {
		t.Fatalf("damping: %v", err)
	}
	ts, ok := d.(interp.TimeScaled)
	if !ok {
		t.Fatalf("expected TimeScaled, got %T", d)
	}
	if ts.Reference != time.Second/30 {
		t.Errorf("expected 30 fps reference, got %v", ts.Reference)
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roomnav.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ExplicitTargets(t *testing.T) {
	path := writeFile(t, `
damping:
  mode: time_scaled
frame:
  fps: 144
targets:
  default: {position: [0, 1.6, 5], look_at: [0, 1.2, 0]}
  leftMonitor: {position: [-0.65, 1.35, 0.8], look_at: [-0.65, 1.25, -0.3]}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Frame.FPS != 144 {
		t.Errorf("expected fps 144, got %d", cfg.Frame.FPS)
	}
	if cfg.Damping.Alpha != interp.Alpha {
		t.Errorf("defaults should survive partial files, alpha=%f", cfg.Damping.Alpha)
	}

	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if reg.Len() != 2 {
		t.Errorf("explicit targets should replace the layout, got %d targets", reg.Len())
	}

	table, err := cfg.BindingTable(reg)
	if err != nil {
		t.Fatalf("bindings: %v", err)
	}
	for _, b := range table {
		if !reg.Has(b.Target) {
			t.Errorf("binding %s targets unregistered %s", b.Action, b.Target)
		}
	}
}

func TestLoad_RejectsBadPoses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"nan", "targets:\n  default: {position: [.nan, 1, 1], look_at: [0, 0, 0]}\n"},
		{"inf", "targets:\n  default: {position: [0, 1, 1], look_at: [0, .inf, 0]}\n"},
		{"short vector", "targets:\n  default: {position: [0, 1], look_at: [0, 0, 0]}\n"},
		{"unknown target", "targets:\n  default: {position: [0, 1, 1], look_at: [0, 0, 0]}\n  kitchen: {position: [0, 1, 1], look_at: [0, 0, 0]}\n"},
		{"no default", "targets:\n  tv: {position: [0, 1, 1], look_at: [0, 0, 0]}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.body))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if _, err := cfg.Registry(); err == nil {
				t.Error("expected registry error, got nil")
			}
		})
	}
}

func TestBindingTable_Explicit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bindings = []BindingConfig{
		{Action: "peek-tv", Source: "key", Trigger: "t", Target: "tv"},
	}
	reg, _ := cfg.Registry()

	table, err := cfg.BindingTable(reg)
	if err != nil {
		t.Fatalf("bindings: %v", err)
	}
	if len(table) != 1 || table[0].Target != nav.TV {
		t.Errorf("unexpected table: %+v", table)
	}

	cfg.Bindings[0].Source = "gamepad"
	if _, err := cfg.BindingTable(reg); err == nil {
		t.Error("expected error for unknown source")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Targets = map[string]PoseConfig{
		"default": FromPose(nav.DefaultPoses()[nav.Default]),
	}
	path := filepath.Join(t.TempDir(), "out.yaml")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("config changed across save/load (-want +got):\n%s", diff)
	}
	reg, err := loaded.Registry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if reg.MustLookup(nav.Default) != nav.DefaultPoses()[nav.Default] {
		t.Error("default pose changed across save/load")
	}
}
