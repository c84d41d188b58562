package viz

import (
	"math"

	"github.com/san-kum/roomnav/internal/nav"
	"github.com/san-kum/roomnav/internal/vec"
)

const roomMargin = 0.5

// Projector maps the room's floor plane (X, Z) onto canvas sub-pixels with a
// uniform scale. +Z points down the screen, so the default view looks up.
type Projector struct {
	minX, minZ    float64
	scale         float64
	offX, offY    int
	width, height int
}

// NewProjector fits every pose in reg into a w x h sub-pixel area.
func NewProjector(reg *nav.Registry, w, h int) Projector {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, id := range reg.Targets() {
		p := reg.MustLookup(id)
		for _, v := range []vec.Vec3{p.Position, p.LookAt} {
			minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
			minZ, maxZ = math.Min(minZ, v.Z), math.Max(maxZ, v.Z)
		}
	}
	minX -= roomMargin
	maxX += roomMargin
	minZ -= roomMargin
	maxZ += roomMargin

	spanX, spanZ := maxX-minX, maxZ-minZ
	scale := math.Min(float64(w-1)/spanX, float64(h-1)/spanZ)

	return Projector{
		minX:   minX,
		minZ:   minZ,
		scale:  scale,
		offX:   (w - 1 - int(spanX*scale)) / 2,
		offY:   (h - 1 - int(spanZ*scale)) / 2,
		width:  w,
		height: h,
	}
}

// Project returns sub-pixel coordinates for a world point.
func (p Projector) Project(v vec.Vec3) (int, int) {
	x := int(math.Round((v.X-p.minX)*p.scale)) + p.offX
	y := int(math.Round((v.Z-p.minZ)*p.scale)) + p.offY
	return x, y
}

// Cell returns the canvas cell holding a world point.
func (p Projector) Cell(v vec.Vec3) (int, int) {
	x, y := p.Project(v)
	return x / 2, y / 4
}

// Bounds returns the sub-pixel rectangle of the room outline.
func (p Projector) Bounds() (x0, y0, x1, y1 int) {
	return p.offX, p.offY, p.width - 1 - p.offX, p.height - 1 - p.offY
}

// drawRoom renders the room outline, one labelled marker per target object
// and the live camera with its line of sight.
func drawRoom(c *Canvas, p Projector, reg *nav.Registry, labels map[nav.TargetID]rune, live nav.CameraPose) {
	c.Clear()
	c.DrawRect(p.Bounds())

	for _, id := range reg.Targets() {
		if id == nav.Default {
			continue
		}
		pose := reg.MustLookup(id)
		x, y := p.Project(pose.LookAt)
		c.FillBlock(x, y, 1)
	}

	cx, cy := p.Project(live.Position)
	lx, ly := p.Project(live.LookAt)
	c.DrawLine(cx, cy, lx, ly)
	c.FillBlock(cx, cy, 1)

	for _, id := range reg.Targets() {
		r, ok := labels[id]
		if !ok || id == nav.Default {
			continue
		}
		col, row := p.Cell(reg.MustLookup(id).LookAt)
		c.Label(col, row, r)
	}
}

// nearestTarget returns the non-default target whose marker is closest to the
// cell (col, row), within radius cells.
func nearestTarget(p Projector, reg *nav.Registry, col, row, radius int) (nav.TargetID, bool) {
	best, bestDist := nav.TargetID(""), radius*radius+1
	for _, id := range reg.Targets() {
		if id == nav.Default {
			continue
		}
		tc, tr := p.Cell(reg.MustLookup(id).LookAt)
		d := (tc-col)*(tc-col) + (tr-row)*(tr-row)
		if d < bestDist {
			best, bestDist = id, d
		}
	}
	return best, best != ""
}
