package game

import (
	"chosenoffset.com/dungeon/internal/core/fov"
	"chosenoffset.com/dungeon/internal/core/geom"
	"chosenoffset.com/dungeon/internal/core/projection"
	"chosenoffset.com/dungeon/internal/core/raycast"
	"chosenoffset.com/dungeon/internal/world/grid"
)

// Cell is a non-floor map cell to draw on the minimap
type Cell struct {
	Row, Col int
	Kind     grid.TileKind
	Origin   geom.Vec // Map-space top-left corner
}

// Frame is the geometry produced by one update. All positions are in map
// space; the renderer adds the map offset when drawing.
type Frame struct {
	Player  geom.Vec
	Angle   float64
	Plane   fov.Plane
	Cone    [][2]geom.Vec
	Hit     raycast.Hit
	Fan     []raycast.Ray
	Columns []projection.Column // Screen space
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}
