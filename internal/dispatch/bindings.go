package dispatch

import (
	"fmt"

	"github.com/san-kum/roomnav/internal/nav"
)

// SourceKind tags where a navigation request comes from.
type SourceKind int

const (
	Button SourceKind = iota // on-screen UI button
	Object                   // clickable mesh in the room
	Key                      // keyboard shortcut
	Back                     // the back button
)

func (k SourceKind) String() string {
	switch k {
	case Button:
		return "button"
	case Object:
		return "object"
	case Key:
		return "key"
	case Back:
		return "back"
	default:
		return "unknown"
	}
}

// ParseSourceKind is the inverse of SourceKind.String.
func ParseSourceKind(s string) (SourceKind, error) {
	for _, k := range []SourceKind{Button, Object, Key, Back} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("dispatch: unknown source kind: %s", s)
}

// Binding maps one named action, raised by one source, to exactly one target.
type Binding struct {
	Action  string
	Source  SourceKind
	Trigger string
	Target  nav.TargetID
}

// DefaultBindings is the room's dispatch table.
func DefaultBindings() []Binding {
	return []Binding{
		{Action: "open-left-monitor", Source: Button, Trigger: "left-monitor", Target: nav.LeftMonitor},
		{Action: "open-right-monitor", Source: Button, Trigger: "right-monitor", Target: nav.RightMonitor},
		{Action: "open-bookshelf", Source: Button, Trigger: "bookshelf", Target: nav.Bookshelf},
		{Action: "open-tv", Source: Button, Trigger: "tv", Target: nav.TV},
		{Action: "open-window", Source: Button, Trigger: "window", Target: nav.Window},

		{Action: "click-left-monitor", Source: Object, Trigger: "monitor_left", Target: nav.LeftMonitor},
		{Action: "click-right-monitor", Source: Object, Trigger: "monitor_right", Target: nav.RightMonitor},
		{Action: "click-bookshelf", Source: Object, Trigger: "bookshelf", Target: nav.Bookshelf},
		{Action: "click-tv", Source: Object, Trigger: "tv_screen", Target: nav.TV},
		{Action: "click-window", Source: Object, Trigger: "window_pane", Target: nav.Window},

		{Action: "key-left-monitor", Source: Key, Trigger: "1", Target: nav.LeftMonitor},
		{Action: "key-right-monitor", Source: Key, Trigger: "2", Target: nav.RightMonitor},
		{Action: "key-bookshelf", Source: Key, Trigger: "3", Target: nav.Bookshelf},
		{Action: "key-tv", Source: Key, Trigger: "4", Target: nav.TV},
		{Action: "key-window", Source: Key, Trigger: "5", Target: nav.Window},
		{Action: "key-home", Source: Key, Trigger: "0", Target: nav.Default},
		{Action: "key-escape", Source: Key, Trigger: "esc", Target: nav.Default},
		{Action: "key-backspace", Source: Key, Trigger: "backspace", Target: nav.Default},

		{Action: "back", Source: Back, Trigger: "back", Target: nav.Default},
	}
}
