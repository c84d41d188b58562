package metrics

import "github.com/san-kum/roomnav/internal/rig"

// FinalDistance reports how far the live pose was from its goal on the last
// observed frame.
type FinalDistance struct {
	name    string
	last    float64
	samples int
}

func NewFinalDistance() *FinalDistance {
	return &FinalDistance{name: "final_distance"}
}

func (d *FinalDistance) Name() string {
	return d.name
}

func (d *FinalDistance) Observe(f rig.Frame) {
	d.last = f.Distance
	d.samples++
}

func (d *FinalDistance) Value() float64 {
	return d.last
}

func (d *FinalDistance) Reset() {
	d.last = 0
	d.samples = 0
}
