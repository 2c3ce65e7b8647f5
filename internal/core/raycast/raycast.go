// Package raycast walks a ray across grid lines until it strikes a wall,
// leaves the map, or travels past the far clip distance.
//
// Each step jumps straight to the nearest vertical or horizontal grid line
// crossing (DDA-style) instead of sampling at fixed intervals. The crossing
// is then nudged a small distance along the ray so that the sample point
// lies unambiguously inside the next cell before that cell is classified.
package raycast

import (
	"math"

	"chosenoffset.com/dungeon/internal/core/geom"
	"chosenoffset.com/dungeon/internal/world/grid"
)

const (
	// DefaultNudge pushes a grid-line crossing into the next cell
	DefaultNudge = 0.01
	// DefaultEpsilon is the threshold below which a direction component is treated as zero
	DefaultEpsilon = 1e-6
)

// HitKind describes why a cast terminated
type HitKind int

const (
	// HitWall means the ray entered a wall cell
	HitWall HitKind = iota
	// HitFarClip means the ray travelled FarClip without hitting anything
	HitFarClip
	// HitExitedMap means the ray left the grid through an opening (e.g. a border door)
	HitExitedMap
)

// String returns the hit kind name used in logs and the HUD
func (k HitKind) String() string {
	switch k {
	case HitWall:
		return "wall"
	case HitFarClip:
		return "far clip"
	case HitExitedMap:
		return "exited map"
	default:
		return "unknown"
	}
}

// Hit is the result of a single cast
type Hit struct {
	// Point is the final sample point. For wall hits it has already been
	// nudged into the wall cell.
	Point geom.Vec
	// Boundary is the grid-line crossing before the nudge. For far clip
	// hits it equals Point.
	Boundary geom.Vec
	Kind     HitKind
	// Row and Col identify the cell Point falls in
	Row, Col int
	// Distance is measured from the ray origin to Boundary
	Distance float64
	// Vertical is true when the final crossing was on a vertical grid line (x = const)
	Vertical bool
	Steps    int
}

// Caster casts rays against a single grid
type Caster struct {
	Grid    *grid.Grid
	FarClip float64
	Nudge   float64
	Epsilon float64
}

// NewCaster creates a caster with the default nudge and epsilon
func NewCaster(g *grid.Grid, farClip float64) *Caster {
	return &Caster{
		Grid:    g,
		FarClip: farClip,
		Nudge:   DefaultNudge,
		Epsilon: DefaultEpsilon,
	}
}

// MaxSteps bounds the number of grid-line crossings a single cast may take.
// A straight line crosses at most rows+cols grid lines inside the map; each
// crossing can cost two steps when the start lies exactly on a line.
func (c *Caster) MaxSteps() int {
	return 2*(c.Grid.Rows()+c.Grid.Cols()) + 4
}

// nextGridLine returns the next grid line coordinate from s in the direction d
func nextGridLine(s, d, cellSize float64) float64 {
	if d > 0 {
		return math.Ceil(s/cellSize) * cellSize
	}
	return math.Floor(s/cellSize) * cellSize
}

// Step returns the nearest grid-line crossing from start along u, and
// whether that crossing is on a vertical line. It does not nudge.
func (c *Caster) Step(start, u geom.Vec) (geom.Vec, bool) {
	cs := c.Grid.CellSize()
	nextX := nextGridLine(start.X, u.X, cs)
	nextY := nextGridLine(start.Y, u.Y, cs)

	switch {
	case math.Abs(u.Y) < c.Epsilon:
		return geom.Vec{X: nextX, Y: start.Y}, true
	case math.Abs(u.X) < c.Epsilon:
		return geom.Vec{X: start.X, Y: nextY}, false
	}

	// Crossing of the vertical line x = nextX, and of the horizontal line y = nextY
	onX := geom.Vec{X: nextX, Y: start.Y + (nextX-start.X)*u.Y/u.X}
	onY := geom.Vec{X: start.X + (nextY-start.Y)*u.X/u.Y, Y: nextY}

	if geom.DistanceSquared(start, onX) < geom.DistanceSquared(start, onY) {
		return onX, true
	}
	return onY, false
}

// Cast follows the ray from origin along the unit direction u
func (c *Caster) Cast(origin, u geom.Vec) Hit {
	g := c.Grid

	row, col := g.CellAt(origin)
	if !g.Contains(row, col) {
		return Hit{Point: origin, Boundary: origin, Kind: HitExitedMap, Row: row, Col: col}
	}
	if g.IsWall(row, col) {
		return Hit{Point: origin, Boundary: origin, Kind: HitWall, Row: row, Col: col}
	}

	farSq := c.FarClip * c.FarClip
	start := origin
	maxSteps := c.MaxSteps()

	for step := 1; step <= maxSteps; step++ {
		crossing, vertical := c.Step(start, u)

		if geom.DistanceSquared(origin, crossing) >= farSq {
			p := origin.Add(u.Scale(c.FarClip))
			r, cl := g.CellAt(p)
			return Hit{
				Point: p, Boundary: p, Kind: HitFarClip,
				Row: r, Col: cl, Distance: c.FarClip, Vertical: vertical, Steps: step,
			}
		}

		sample := crossing.Add(u.Scale(c.Nudge))
		r, cl := g.CellAt(sample)
		hit := Hit{
			Point: sample, Boundary: crossing,
			Row: r, Col: cl, Distance: geom.Distance(origin, crossing), Vertical: vertical, Steps: step,
		}

		if !g.Contains(r, cl) {
			hit.Kind = HitExitedMap
			return hit
		}
		if g.IsWall(r, cl) {
			hit.Kind = HitWall
			return hit
		}
		start = sample
	}

	// A straight ray leaves the grid within MaxSteps crossings, so this is
	// only reached for non-finite input. Report it as a far clip.
	p := origin.Add(u.Scale(c.FarClip))
	r, cl := g.CellAt(p)
	return Hit{Point: p, Boundary: p, Kind: HitFarClip, Row: r, Col: cl, Distance: c.FarClip, Steps: maxSteps}
}

// CastAngle casts along the facing vector for a camera angle
func (c *Caster) CastAngle(origin geom.Vec, angle float64) Hit {
	return c.Cast(origin, geom.FromAngle(angle))
}

// Ray pairs a cast result with the angle it was cast at
type Ray struct {
	Angle float64
	Hit   Hit
}

// CastFan casts n rays evenly across fov radians centred on angle, ordered
// from the left edge of the view to the right edge.
func (c *Caster) CastFan(origin geom.Vec, angle, fov float64, n int) []Ray {
	if n <= 0 {
		return nil
	}
	rays := make([]Ray, n)
	for i := 0; i < n; i++ {
		a := angle + fov/2 - fov*(float64(i)+0.5)/float64(n)
		rays[i] = Ray{Angle: a, Hit: c.CastAngle(origin, a)}
	}
	return rays
}
