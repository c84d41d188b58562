package metrics

import "github.com/san-kum/roomnav/internal/rig"

// Settle counts frames from the most recent retarget until the distance to
// the goal first drops below the tolerance. Value is -1 while unsettled.
type Settle struct {
	name      string
	tolerance float64
	target    string
	since     int
	settledAt int
	seen      bool
}

func NewSettle(tolerance float64) *Settle {
	return &Settle{
		name:      "settle_frames",
		tolerance: tolerance,
		settledAt: -1,
	}
}

func (s *Settle) Name() string {
	return s.name
}

func (s *Settle) Observe(f rig.Frame) {
	if !s.seen || string(f.Target) != s.target {
		s.seen = true
		s.target = string(f.Target)
		s.since = 0
		s.settledAt = -1
	}
	s.since++
	if s.settledAt < 0 && f.Distance < s.tolerance {
		s.settledAt = s.since
	}
}

func (s *Settle) Value() float64 {
	return float64(s.settledAt)
}

func (s *Settle) Reset() {
	s.target = ""
	s.since = 0
	s.settledAt = -1
	s.seen = false
}
