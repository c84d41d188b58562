// Package vec provides the small 3D vector type shared by the navigation
// store, the interpolator and the viewer.
package vec

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func New(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Length() float64      { return math.Sqrt(v.Dot(v)) }
func (v Vec3) Dist(o Vec3) float64  { return v.Sub(o).Length() }

// Lerp moves v toward b by alpha, component-wise: v + (b-v)*alpha.
func (v Vec3) Lerp(b Vec3, alpha float64) Vec3 {
	return Vec3{
		X: v.X + (b.X-v.X)*alpha,
		Y: v.Y + (b.Y-v.Y)*alpha,
		Z: v.Z + (b.Z-v.Z)*alpha,
	}
}

// IsValid reports whether every component is finite.
func (v Vec3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Components returns the vector as a slice, in X, Y, Z order.
func (v Vec3) Components() []float64 { return []float64{v.X, v.Y, v.Z} }
