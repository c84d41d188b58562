package nav

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// TargetID names one camera viewpoint in the room.
type TargetID string

const (
	Default      TargetID = "default"
	LeftMonitor  TargetID = "leftMonitor"
	RightMonitor TargetID = "rightMonitor"
	Bookshelf    TargetID = "bookshelf"
	TV           TargetID = "tv"
	Window       TargetID = "window"
)

// allTargets is the closed set, in display order.
var allTargets = [...]TargetID{Default, LeftMonitor, RightMonitor, Bookshelf, TV, Window}

// AllTargets returns every target in display order.
func AllTargets() []TargetID {
	out := make([]TargetID, len(allTargets))
	copy(out, allTargets[:])
	return out
}

// Valid reports whether id belongs to the closed set.
func (id TargetID) Valid() bool {
	return id.order() >= 0
}

func (id TargetID) String() string { return string(id) }

func (id TargetID) order() int {
	for i, t := range allTargets {
		if t == id {
			return i
		}
	}
	return -1
}

// ParseTarget converts a name into a TargetID.
func ParseTarget(name string) (TargetID, error) {
	id := TargetID(name)
	if !id.Valid() {
		if near, ok := Suggest(name); ok {
			return "", fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknownTarget, name, near)
		}
		return "", fmt.Errorf("%w: %s", ErrUnknownTarget, name)
	}
	return id, nil
}

// maxSuggestDistance bounds how far a typo may be from a real name.
const maxSuggestDistance = 3

// Suggest returns the closest target name to a misspelled one.
func Suggest(name string) (TargetID, bool) {
	name = strings.ToLower(name)
	best, bestDist := TargetID(""), maxSuggestDistance+1
	for _, t := range allTargets {
		if d := levenshtein.ComputeDistance(name, strings.ToLower(string(t))); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best, best != ""
}
