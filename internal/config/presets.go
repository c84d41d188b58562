package config

import (
	"sort"

	"github.com/san-kum/roomnav/internal/nav"
	"github.com/san-kum/roomnav/internal/vec"
)

// Presets are the named room layouts.
var Presets = map[string]func() map[nav.TargetID]nav.CameraPose{
	"studio": nav.DefaultPoses,
	"compact": func() map[nav.TargetID]nav.CameraPose {
		return map[nav.TargetID]nav.CameraPose{
			nav.Default:      nav.NewPose(vec.New(0, 1.5, 3.2), vec.New(0, 1.1, 0)),
			nav.LeftMonitor:  nav.NewPose(vec.New(-0.45, 1.3, 0.6), vec.New(-0.45, 1.2, -0.25)),
			nav.RightMonitor: nav.NewPose(vec.New(0.45, 1.3, 0.6), vec.New(0.45, 1.2, -0.25)),
			nav.Bookshelf:    nav.NewPose(vec.New(-1.4, 1.4, 1.0), vec.New(-2.1, 1.3, 1.0)),
		}
	},
	"desk": func() map[nav.TargetID]nav.CameraPose {
		return map[nav.TargetID]nav.CameraPose{
			nav.Default:     nav.NewPose(vec.New(0, 1.6, 5), vec.New(0, 1.2, 0)),
			nav.LeftMonitor: nav.NewPose(vec.New(-0.65, 1.35, 0.8), vec.New(-0.65, 1.25, -0.3)),
		}
	},
}

// GetPreset returns a fresh copy of the named layout, or nil.
func GetPreset(name string) map[nav.TargetID]nav.CameraPose {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
