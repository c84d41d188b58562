package metrics

import (
	"github.com/san-kum/roomnav/internal/rig"
	"github.com/san-kum/roomnav/internal/vec"
)

// PathLength sums the distance travelled by the live camera position.
type PathLength struct {
	name string
	sum  float64
	prev vec.Vec3
	has  bool
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string {
	return p.name
}

func (p *PathLength) Observe(f rig.Frame) {
	if p.has {
		p.sum += f.Live.Position.Dist(p.prev)
	}
	p.prev = f.Live.Position
	p.has = true
}

func (p *PathLength) Value() float64 {
	return p.sum
}

func (p *PathLength) Reset() {
	p.sum = 0
	p.prev = vec.Vec3{}
	p.has = false
}

// Retargets counts frames whose target differs from the previous frame's.
type Retargets struct {
	name  string
	count int
	last  string
	has   bool
}

func NewRetargets() *Retargets {
	return &Retargets{name: "retargets"}
}

func (r *Retargets) Name() string {
	return r.name
}

func (r *Retargets) Observe(f rig.Frame) {
	if r.has && string(f.Target) != r.last {
		r.count++
	}
	r.last = string(f.Target)
	r.has = true
}

func (r *Retargets) Value() float64 {
	return float64(r.count)
}

func (r *Retargets) Reset() {
	r.count = 0
	r.last = ""
	r.has = false
}

// Defaults returns the metric set the CLI attaches to every run.
func Defaults(tolerance float64) []rig.Metric {
	return []rig.Metric{
		NewFinalDistance(),
		NewSettle(tolerance),
		NewPathLength(),
		NewRetargets(),
	}
}
