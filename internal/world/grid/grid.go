// Package grid holds the immutable tile map the camera moves through.
// A grid is built once from a character layout and never mutated.
package grid

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"chosenoffset.com/dungeon/internal/core/geom"
)

// TileKind classifies a single map cell
type TileKind int

const (
	Floor TileKind = iota
	Wall
	Door
)

// String returns the human readable tile name
func (k TileKind) String() string {
	switch k {
	case Floor:
		return "floor"
	case Wall:
		return "wall"
	case Door:
		return "door"
	default:
		return "unknown"
	}
}

// Layout characters
const (
	WallChar  = '#'
	FloorChar = ' '
	DoorChar  = '+'
	SpawnChar = '@'
)

var (
	// ErrOutOfBounds is returned for row/column pairs outside the grid
	ErrOutOfBounds = errors.New("coordinates out of bounds")
	// ErrBadLayout is returned when a layout has the wrong size or unknown characters
	ErrBadLayout = errors.New("invalid layout")
	// ErrOpenBorder is returned when a border cell is walkable floor
	ErrOpenBorder = errors.New("border cell is not closed")
	// ErrNoSpawn is returned by Spawn when the layout carried no '@' marker
	ErrNoSpawn = errors.New("layout has no spawn marker")
)

// DefaultLayout is the reference 12x12 room, one string per row
var DefaultLayout = []string{
	"############",
	"#   #      +",
	"#   #      #",
	"#   #    @ #",
	"#   #      #",
	"#   #####  #",
	"#     #    #",
	"#     #    #",
	"#  ####    #",
	"#     #    #",
	"#          #",
	"############",
}

// Grid is a row-major tile map with square cells of CellSize world units
type Grid struct {
	rows     int
	cols     int
	cellSize float64
	tiles    []TileKind

	spawnRow, spawnCol int
	hasSpawn           bool
}

// Parse builds a grid from a flat layout string of rows*cols characters
func Parse(layout string, rows, cols int, cellSize float64) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrBadLayout, rows, cols)
	}
	if len(layout) != rows*cols {
		return nil, fmt.Errorf("%w: expected %d characters, got %d", ErrBadLayout, rows*cols, len(layout))
	}

	lines := make([]string, rows)
	for r := 0; r < rows; r++ {
		lines[r] = layout[r*cols : (r+1)*cols]
	}
	return ParseRows(lines, cellSize)
}

// ParseRows builds a grid from one string per row. All rows must have the
// same width; the grid does not need to be square.
func ParseRows(lines []string, cellSize float64) (*Grid, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size %f", ErrBadLayout, cellSize)
	}
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrBadLayout)
	}

	g := &Grid{
		rows:     len(lines),
		cols:     len(lines[0]),
		cellSize: cellSize,
	}
	g.tiles = make([]TileKind, g.rows*g.cols)

	for r, line := range lines {
		if len(line) != g.cols {
			return nil, fmt.Errorf("%w: row %d has width %d, expected %d", ErrBadLayout, r, len(line), g.cols)
		}
		for c := 0; c < g.cols; c++ {
			var kind TileKind
			switch line[c] {
			case WallChar:
				kind = Wall
			case FloorChar:
				kind = Floor
			case DoorChar:
				kind = Door
			case SpawnChar:
				if g.hasSpawn {
					return nil, fmt.Errorf("%w: second spawn marker at (%d, %d)", ErrBadLayout, r, c)
				}
				kind = Floor
				g.spawnRow, g.spawnCol, g.hasSpawn = r, c, true
			default:
				return nil, fmt.Errorf("%w: unknown tile %q at (%d, %d)", ErrBadLayout, line[c], r, c)
			}
			g.tiles[g.Index(r, c)] = kind
		}
	}

	if err := g.checkBorder(); err != nil {
		return nil, err
	}
	return g, nil
}

// checkBorder enforces a closed room. Doors are allowed in the border.
func (g *Grid) checkBorder() error {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if r != 0 && r != g.rows-1 && c != 0 && c != g.cols-1 {
				continue
			}
			if g.tiles[g.Index(r, c)] == Floor {
				return fmt.Errorf("%w: (%d, %d)", ErrOpenBorder, r, c)
			}
		}
	}
	return nil
}

// Rows returns the number of rows
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns
func (g *Grid) Cols() int { return g.cols }

// CellSize returns the edge length of one cell in world units
func (g *Grid) CellSize() float64 { return g.cellSize }

// Width returns the world-space width of the map
func (g *Grid) Width() float64 { return float64(g.cols) * g.cellSize }

// Height returns the world-space height of the map
func (g *Grid) Height() float64 { return float64(g.rows) * g.cellSize }

// Index returns the row-major linear index of a cell
func (g *Grid) Index(row, col int) int {
	return row*g.cols + col
}

// Contains reports whether (row, col) lies inside the grid
func (g *Grid) Contains(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// TileAt returns the tile kind at the given grid coordinates
func (g *Grid) TileAt(row, col int) (TileKind, error) {
	if !g.Contains(row, col) {
		return Floor, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, row, col)
	}
	return g.tiles[g.Index(row, col)], nil
}

// IsWall reports whether the cell is a wall. Cells outside the grid are not walls.
func (g *Grid) IsWall(row, col int) bool {
	kind, err := g.TileAt(row, col)
	return err == nil && kind == Wall
}

// CellAt returns the cell containing world point p. The result may lie
// outside the grid; check it with Contains.
func (g *Grid) CellAt(p geom.Vec) (row, col int) {
	return int(math.Floor(p.Y / g.cellSize)), int(math.Floor(p.X / g.cellSize))
}

// CellOrigin returns the world position of a cell's top-left corner
func (g *Grid) CellOrigin(row, col int) geom.Vec {
	return geom.Vec{X: float64(col) * g.cellSize, Y: float64(row) * g.cellSize}
}

// CellCenter returns the world position of a cell's centre
func (g *Grid) CellCenter(row, col int) geom.Vec {
	half := g.cellSize / 2
	return g.CellOrigin(row, col).Add(geom.Vec{X: half, Y: half})
}

// Spawn returns the cell of the '@' marker
func (g *Grid) Spawn() (row, col int, err error) {
	if !g.hasSpawn {
		return 0, 0, ErrNoSpawn
	}
	return g.spawnRow, g.spawnCol, nil
}

// String renders the grid back into layout characters, one row per line
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			switch g.tiles[g.Index(r, c)] {
			case Wall:
				sb.WriteByte(WallChar)
			case Door:
				sb.WriteByte(DoorChar)
			default:
				if g.hasSpawn && r == g.spawnRow && c == g.spawnCol {
					sb.WriteByte(SpawnChar)
				} else {
					sb.WriteByte(FloorChar)
				}
			}
		}
		if r < g.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Default returns the reference room with the given cell size
func Default(cellSize float64) (*Grid, error) {
	return ParseRows(DefaultLayout, cellSize)
}
