// Package geom provides the 2D vector arithmetic shared by the ray caster,
// the field-of-view geometry and the camera.
package geom

import "math"

// Vec represents a 2D point or direction in world space
type Vec struct {
	X, Y float64
}

// Add returns the componentwise sum v + o
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

// Sub returns the componentwise difference v - o
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y}
}

// Scale multiplies both components by s
func (v Vec) Scale(s float64) Vec {
	return Vec{v.X * s, v.Y * s}
}

// MagSquared returns the squared length of v
func (v Vec) MagSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the Euclidean length of v
func (v Vec) Len() float64 {
	return math.Sqrt(v.MagSquared())
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Vec) float64 {
	return b.Sub(a).Len()
}

// DistanceSquared is Distance without the square root, for comparisons
func DistanceSquared(a, b Vec) float64 {
	return b.Sub(a).MagSquared()
}

// FromAngle returns the unit facing vector for a camera angle.
// Angle 0 faces +X and positive angles turn toward -Y (up on screen).
func FromAngle(angle float64) Vec {
	return Vec{math.Cos(angle), -math.Sin(angle)}
}

// Perp returns the right-hand perpendicular (sin, cos) of the facing vector
// for angle. Used as the basis for the far clip plane.
func Perp(angle float64) Vec {
	return Vec{math.Sin(angle), math.Cos(angle)}
}
