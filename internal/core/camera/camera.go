// Package camera holds the player's position and facing, and the per-frame
// rules that advance them from movement input.
package camera

import (
	"math"

	"chosenoffset.com/dungeon/internal/core/geom"
	"chosenoffset.com/dungeon/internal/world/grid"
)

// TwoPi is one full turn in radians
const TwoPi = 2 * math.Pi

// Camera is the player's world position and facing angle in radians.
// Angle 0 faces +X; the angle grows counter-clockwise on screen.
type Camera struct {
	Pos   geom.Vec
	Angle float64
}

// Input is the held state of the four movement keys for one frame
type Input struct {
	Forward     bool
	Backward    bool
	RotateLeft  bool
	RotateRight bool
}

// Any reports whether any movement key is held
func (in Input) Any() bool {
	return in.Forward || in.Backward || in.RotateLeft || in.RotateRight
}

// Facing returns the unit facing vector (cos a, -sin a)
func (c Camera) Facing() geom.Vec {
	return geom.FromAngle(c.Angle)
}

// NormalizeAngle wraps any finite angle into [0, 2π)
func NormalizeAngle(a float64) float64 {
	a = math.Mod(math.Mod(a, TwoPi)+TwoPi, TwoPi)
	if a >= TwoPi {
		return 0
	}
	return a
}

// Collider decides whether the camera may occupy a world position
type Collider interface {
	Blocked(p geom.Vec) bool
}

// WallCollider blocks wall cells and everything outside the grid
type WallCollider struct {
	Grid *grid.Grid
}

// Blocked implements Collider
func (w WallCollider) Blocked(p geom.Vec) bool {
	row, col := w.Grid.CellAt(p)
	if !w.Grid.Contains(row, col) {
		return true
	}
	return w.Grid.IsWall(row, col)
}

// Motion holds the movement rules applied each frame
type Motion struct {
	MoveSpeed     float64 // world units per second
	RotationSpeed float64 // radians per second
	// Collider is optional. With no collider the camera passes through walls.
	Collider Collider
}

// Apply advances the camera by one frame of input lasting dt seconds
func (m Motion) Apply(c Camera, in Input, dt float64) Camera {
	step := 0.0
	if in.Forward {
		step += m.MoveSpeed * dt
	}
	if in.Backward {
		step -= m.MoveSpeed * dt
	}
	if step != 0 {
		c.Pos = m.move(c.Pos, c.Facing().Scale(step))
	}

	if in.RotateLeft {
		c.Angle += m.RotationSpeed * dt
	}
	if in.RotateRight {
		c.Angle -= m.RotationSpeed * dt
	}
	c.Angle = NormalizeAngle(c.Angle)

	return c
}

// move applies delta, sliding along walls one axis at a time when a
// collider is set
func (m Motion) move(pos, delta geom.Vec) geom.Vec {
	next := pos.Add(delta)
	if m.Collider == nil || !m.Collider.Blocked(next) {
		return next
	}

	if alongX := (geom.Vec{X: pos.X + delta.X, Y: pos.Y}); !m.Collider.Blocked(alongX) {
		pos = alongX
	}
	if alongY := (geom.Vec{X: pos.X, Y: pos.Y + delta.Y}); !m.Collider.Blocked(alongY) {
		pos = alongY
	}
	return pos
}
