package rig

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Cue fires a dispatch action just before the tick of Frame.
type Cue struct {
	Frame  int
	Action string
}

// Script is a list of cues ordered by frame. Cues on the same frame keep
// their written order.
type Script []Cue

// ParseScript reads "action@frame" pairs separated by commas, for example
// "open-left-monitor@0,back@90". A missing "@frame" means frame 0.
func ParseScript(s string) (Script, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var script Script
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		action, frameStr, hasFrame := strings.Cut(part, "@")
		action = strings.TrimSpace(action)
		if action == "" {
			return nil, fmt.Errorf("empty action in cue %q", part)
		}
		frame := 0
		if hasFrame {
			n, err := strconv.Atoi(strings.TrimSpace(frameStr))
			if err != nil {
				return nil, fmt.Errorf("bad frame in cue %q: %w", part, err)
			}
			if n < 0 {
				return nil, fmt.Errorf("negative frame in cue %q", part)
			}
			frame = n
		}
		script = append(script, Cue{Frame: frame, Action: action})
	}

	script.Sort()
	return script, nil
}

// Sort orders cues by frame, keeping the order of cues on the same frame.
func (s Script) Sort() {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Frame < s[j].Frame })
}

func (s Script) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = fmt.Sprintf("%s@%d", c.Action, c.Frame)
	}
	return strings.Join(parts, ",")
}
