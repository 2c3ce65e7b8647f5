// Package fov derives the view cone geometry drawn on the minimap.
package fov

import (
	"math"

	"chosenoffset.com/dungeon/internal/core/geom"
)

// DefaultFOV is the total angular width of the view cone (120 degrees)
var DefaultFOV = Radians(120)

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Plane holds the three far clip plane corners
type Plane struct {
	Center geom.Vec
	Left   geom.Vec
	Right  geom.Vec
}

// HalfWidth returns half the width of the view at distance farClip
func HalfWidth(fov, farClip float64) float64 {
	return math.Tan(fov/2) * farClip
}

// FarClipPlane computes the far clip plane corners for a camera at pos
// facing angle. Left and Right are offset from Center along the
// perpendicular of the facing vector.
func FarClipPlane(pos geom.Vec, angle, fov, farClip float64) Plane {
	center := pos.Add(geom.FromAngle(angle).Scale(farClip))
	offset := geom.Perp(angle).Scale(HalfWidth(fov, farClip))
	return Plane{
		Center: center,
		Left:   center.Sub(offset),
		Right:  center.Add(offset),
	}
}

// Segments returns the cone outline as line segments: camera to each
// corner, the far edge, and the centre line.
func (p Plane) Segments(pos geom.Vec) [][2]geom.Vec {
	return [][2]geom.Vec{
		{pos, p.Right},
		{pos, p.Left},
		{p.Right, p.Left},
		{pos, p.Center},
	}
}
