package nav

import (
	"fmt"
	"sort"

	"github.com/san-kum/roomnav/internal/vec"
)

// Registry maps targets to their pose presets. It is built once and never
// mutated afterward.
type Registry struct {
	poses map[TargetID]CameraPose
	order []TargetID
}

// NewRegistry validates poses and returns an immutable registry. Every key
// must belong to the closed target set, the default target must be present
// and every pose must be finite.
func NewRegistry(poses map[TargetID]CameraPose) (*Registry, error) {
	if _, ok := poses[Default]; !ok {
		return nil, ErrMissingDefault
	}

	r := &Registry{
		poses: make(map[TargetID]CameraPose, len(poses)),
		order: make([]TargetID, 0, len(poses)),
	}
	for id, pose := range poses {
		if !id.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, id)
		}
		if !pose.IsValid() {
			return nil, &PoseError{Target: id, Pose: pose}
		}
		r.poses[id] = pose
		r.order = append(r.order, id)
	}
	sort.Slice(r.order, func(i, j int) bool { return r.order[i].order() < r.order[j].order() })

	return r, nil
}

// MustRegistry is like NewRegistry but panics on invalid input. It is meant
// for package-level layouts known at compile time.
func MustRegistry(poses map[TargetID]CameraPose) *Registry {
	r, err := NewRegistry(poses)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultPoses returns the studio room layout.
func DefaultPoses() map[TargetID]CameraPose {
	return map[TargetID]CameraPose{
		Default:      NewPose(vec.New(0, 1.6, 5), vec.New(0, 1.2, 0)),
		LeftMonitor:  NewPose(vec.New(-0.65, 1.35, 0.8), vec.New(-0.65, 1.25, -0.3)),
		RightMonitor: NewPose(vec.New(0.65, 1.35, 0.8), vec.New(0.65, 1.25, -0.3)),
		Bookshelf:    NewPose(vec.New(-2.2, 1.5, 1.5), vec.New(-3.2, 1.4, 1.5)),
		TV:           NewPose(vec.New(1.8, 1.3, 1.2), vec.New(3.0, 1.3, 1.2)),
		Window:       NewPose(vec.New(0, 1.6, 1.0), vec.New(0, 1.6, -2.5)),
	}
}

func DefaultRegistry() *Registry {
	return MustRegistry(DefaultPoses())
}

func (r *Registry) Lookup(id TargetID) (CameraPose, bool) {
	p, ok := r.poses[id]
	return p, ok
}

// MustLookup returns the pose for id and panics if it is not registered.
// The store only holds registered ids, so render code can use it freely.
func (r *Registry) MustLookup(id TargetID) CameraPose {
	p, ok := r.poses[id]
	if !ok {
		panic(fmt.Sprintf("nav: target %q not registered", id))
	}
	return p
}

func (r *Registry) Has(id TargetID) bool {
	_, ok := r.poses[id]
	return ok
}

// Targets returns the registered targets in display order.
func (r *Registry) Targets() []TargetID {
	out := make([]TargetID, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Len() int { return len(r.order) }
