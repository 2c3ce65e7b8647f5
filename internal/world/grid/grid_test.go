package grid

import (
	"errors"
	"strings"
	"testing"

	"chosenoffset.com/dungeon/internal/core/geom"
)

func TestDefaultLayout(t *testing.T) {
	g, err := Default(20)
	if err != nil {
		t.Fatalf("Failed to parse default layout: %v", err)
	}

	if g.Rows() != 12 || g.Cols() != 12 {
		t.Fatalf("Expected 12x12 grid, got %dx%d", g.Rows(), g.Cols())
	}

	row, col, err := g.Spawn()
	if err != nil {
		t.Fatalf("Expected spawn marker, got %v", err)
	}
	if row != 3 || col != 9 {
		t.Errorf("Expected spawn at (3, 9), got (%d, %d)", row, col)
	}

	if center := g.CellCenter(row, col); center != (geom.Vec{X: 190, Y: 70}) {
		t.Errorf("Expected spawn centre (190, 70), got %v", center)
	}

	// The spawn cell is stored as floor
	if kind, _ := g.TileAt(3, 9); kind != Floor {
		t.Errorf("Expected spawn cell to be floor, got %s", kind)
	}

	if kind, _ := g.TileAt(1, 11); kind != Door {
		t.Errorf("Expected door at (1, 11), got %s", kind)
	}

	if !g.IsWall(5, 6) {
		t.Error("Expected interior wall at (5, 6)")
	}
}

func TestTileAtOutOfBounds(t *testing.T) {
	g, err := Default(20)
	if err != nil {
		t.Fatal(err)
	}

	coords := [][2]int{{-1, 0}, {0, -1}, {12, 0}, {0, 12}, {100, 100}}
	for _, c := range coords {
		if _, err := g.TileAt(c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("TileAt(%d, %d): expected ErrOutOfBounds, got %v", c[0], c[1], err)
		}
		if g.IsWall(c[0], c[1]) {
			t.Errorf("IsWall(%d, %d): expected false outside grid", c[0], c[1])
		}
	}
}

func TestNonSquareIndexing(t *testing.T) {
	layout := []string{
		"########",
		"#  #   #",
		"#     @#",
		"########",
	}
	g, err := ParseRows(layout, 10)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if g.Rows() != 4 || g.Cols() != 8 {
		t.Fatalf("Expected 4x8 grid, got %dx%d", g.Rows(), g.Cols())
	}

	// Every layout character must round trip through Index
	for r, line := range layout {
		for c := range line {
			want := Floor
			if line[c] == WallChar {
				want = Wall
			}
			got, err := g.TileAt(r, c)
			if err != nil {
				t.Fatalf("TileAt(%d, %d): %v", r, c, err)
			}
			if got != want {
				t.Errorf("TileAt(%d, %d): expected %s, got %s", r, c, want, got)
			}
		}
	}
}

func TestIndexIsInjective(t *testing.T) {
	g, err := ParseRows([]string{
		"#####",
		"#   #",
		"#   #",
		"#   #",
		"#   #",
		"#   #",
		"#####",
	}, 1)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[int]bool)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			idx := g.Index(r, c)
			if seen[idx] {
				t.Fatalf("Index(%d, %d) = %d collides with an earlier cell", r, c, idx)
			}
			if idx < 0 || idx >= g.Rows()*g.Cols() {
				t.Fatalf("Index(%d, %d) = %d outside tile storage", r, c, idx)
			}
			seen[idx] = true
		}
	}
}

func TestParseFlat(t *testing.T) {
	g, err := Parse(strings.Join(DefaultLayout, ""), 12, 12, 20)
	if err != nil {
		t.Fatalf("Failed to parse flat layout: %v", err)
	}
	if g.String() != strings.Join(DefaultLayout, "\n") {
		t.Errorf("String() did not reproduce the layout:\n%s", g.String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
		want   error
	}{
		{"ragged", []string{"###", "# ", "###"}, ErrBadLayout},
		{"unknown tile", []string{"###", "#x#", "###"}, ErrBadLayout},
		{"two spawns", []string{"####", "#@@#", "####"}, ErrBadLayout},
		{"open border", []string{"###", "  #", "###"}, ErrOpenBorder},
		{"empty", []string{}, ErrBadLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRows(tt.layout, 10); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := Parse("###", 2, 2, 10); !errors.Is(err, ErrBadLayout) {
		t.Errorf("Expected ErrBadLayout for short flat layout, got %v", err)
	}
	if _, err := ParseRows(DefaultLayout, 0); !errors.Is(err, ErrBadLayout) {
		t.Errorf("Expected ErrBadLayout for zero cell size, got %v", err)
	}
}

func TestNoSpawn(t *testing.T) {
	g, err := ParseRows([]string{"###", "# #", "###"}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := g.Spawn(); !errors.Is(err, ErrNoSpawn) {
		t.Errorf("Expected ErrNoSpawn, got %v", err)
	}
}

func TestCellAt(t *testing.T) {
	g, err := Default(20)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		p        geom.Vec
		row, col int
	}{
		{geom.Vec{X: 190, Y: 70}, 3, 9},
		{geom.Vec{X: 0, Y: 0}, 0, 0},
		{geom.Vec{X: 19.99, Y: 20}, 1, 0},
		{geom.Vec{X: -0.01, Y: 5}, 0, -1},
	}
	for _, tt := range tests {
		row, col := g.CellAt(tt.p)
		if row != tt.row || col != tt.col {
			t.Errorf("CellAt(%v): expected (%d, %d), got (%d, %d)", tt.p, tt.row, tt.col, row, col)
		}
	}
}
