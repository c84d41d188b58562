package nav

import (
	"math"

	"github.com/san-kum/roomnav/internal/vec"
)

// CameraPose is one named viewpoint: where the camera sits and what it looks at.
type CameraPose struct {
	Position vec.Vec3 `json:"position"`
	LookAt   vec.Vec3 `json:"look_at"`
}

func NewPose(position, lookAt vec.Vec3) CameraPose {
	return CameraPose{Position: position, LookAt: lookAt}
}

// IsValid reports whether all six components are finite.
func (p CameraPose) IsValid() bool {
	return p.Position.IsValid() && p.LookAt.IsValid()
}

// Distance is the Euclidean distance over position and look-at together.
func (p CameraPose) Distance(o CameraPose) float64 {
	dp := p.Position.Sub(o.Position)
	dl := p.LookAt.Sub(o.LookAt)
	return math.Sqrt(dp.Dot(dp) + dl.Dot(dl))
}
