package asciimap

import (
	"strings"
	"testing"

	"chosenoffset.com/dungeon/internal/core/geom"
	"chosenoffset.com/dungeon/internal/core/raycast"
	"chosenoffset.com/dungeon/internal/world/grid"
)

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.Default(20)
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}
	return g
}

func TestRowsMarksPlayerAndHits(t *testing.T) {
	g := testGrid(t)
	hits := []raycast.Hit{
		{Kind: raycast.HitWall, Row: 3, Col: 11},
		{Kind: raycast.HitWall, Row: 3, Col: 4},
		{Kind: raycast.HitFarClip, Row: 5, Col: 5},
	}

	rows := Rows(g, geom.Vec{X: 190, Y: 70}, hits)

	if len(rows) != 12 || len(rows[0]) != 12 {
		t.Fatalf("Expected 12x12 rows, got %dx%d", len(rows), len(rows[0]))
	}
	if rows[3][9] != PlayerGlyph {
		t.Errorf("Expected player at (3, 9), got %q", rows[3][9])
	}
	if rows[3][11] != HitGlyph || rows[3][4] != HitGlyph {
		t.Errorf("Expected hit glyphs at (3, 11) and (3, 4), got %q and %q", rows[3][11], rows[3][4])
	}
	if rows[5][5] != WallGlyph {
		t.Errorf("Expected far clip hit to leave the wall glyph, got %q", rows[5][5])
	}
	if rows[1][11] != DoorGlyph {
		t.Errorf("Expected door at (1, 11), got %q", rows[1][11])
	}
	if rows[1][1] != FloorGlyph {
		t.Errorf("Expected floor at (1, 1), got %q", rows[1][1])
	}
}

func TestRowsIgnoresPlayerOutsideGrid(t *testing.T) {
	g := testGrid(t)
	rows := Rows(g, geom.Vec{X: -50, Y: 70}, nil)

	for r, row := range rows {
		for c, glyph := range row {
			if glyph == PlayerGlyph {
				t.Errorf("Expected no player glyph, found one at (%d, %d)", r, c)
			}
		}
	}
}

func TestRender(t *testing.T) {
	g := testGrid(t)
	out := Render("builtin", g, geom.Vec{X: 190, Y: 70}, nil)

	if !strings.Contains(out, "builtin") {
		t.Error("Expected title in output")
	}
	if strings.Count(out, "@") != 2 {
		t.Errorf("Expected the player glyph on the map and in the legend, got %d", strings.Count(out, "@"))
	}
}
