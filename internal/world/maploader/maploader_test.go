package maploader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chosenoffset.com/dungeon/internal/core/geom"
	"chosenoffset.com/dungeon/internal/world/grid"
)

func writeMap(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuiltin(t *testing.T) {
	m, err := Builtin(20)
	if err != nil {
		t.Fatalf("Failed to build builtin map: %v", err)
	}
	if m.Data.Name != BuiltinName {
		t.Errorf("Expected name %q, got %q", BuiltinName, m.Data.Name)
	}
	if pos := m.SpawnPosition(); pos != (geom.Vec{X: 190, Y: 70}) {
		t.Errorf("Expected spawn (190, 70), got %v", pos)
	}
	if m.TexturePath("assets/wall.png") != "assets/wall.png" {
		t.Error("Expected fallback texture path for the builtin map")
	}
}

func TestLoadMap(t *testing.T) {
	path := writeMap(t, `{
		"name": "corridor",
		"cell_size": 16,
		"wall_texture": "assets/stone.png",
		"layout": [
			"##########",
			"#@      +#",
			"##########"
		]
	}`)

	m, err := LoadMap(path, 20)
	if err != nil {
		t.Fatalf("Failed to load map: %v", err)
	}
	if m.Grid.Rows() != 3 || m.Grid.Cols() != 10 {
		t.Errorf("Expected 3x10 grid, got %dx%d", m.Grid.Rows(), m.Grid.Cols())
	}
	if m.Grid.CellSize() != 16 {
		t.Errorf("Expected cell size 16, got %f", m.Grid.CellSize())
	}
	if pos := m.SpawnPosition(); pos != (geom.Vec{X: 24, Y: 24}) {
		t.Errorf("Expected spawn (24, 24), got %v", pos)
	}
	if m.TexturePath("fallback.png") != "assets/stone.png" {
		t.Errorf("Expected map texture, got %s", m.TexturePath("fallback.png"))
	}
}

func TestLoadMapDefaultCellSize(t *testing.T) {
	path := writeMap(t, `{"name": "tiny", "layout": ["###", "#@#", "###"]}`)
	m, err := LoadMap(path, 32)
	if err != nil {
		t.Fatalf("Failed to load map: %v", err)
	}
	if m.Grid.CellSize() != 32 {
		t.Errorf("Expected default cell size 32, got %f", m.Grid.CellSize())
	}
}

func TestLoadMapErrors(t *testing.T) {
	if _, err := LoadMap(filepath.Join(t.TempDir(), "missing.json"), 20); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}

	tests := []struct {
		name     string
		contents string
		want     error
	}{
		{"no spawn", `{"name": "x", "layout": ["###", "# #", "###"]}`, grid.ErrNoSpawn},
		{"open border", `{"name": "x", "layout": ["###", " @#", "###"]}`, grid.ErrOpenBorder},
		{"bad tile", `{"name": "x", "layout": ["###", "#?#", "###"]}`, grid.ErrBadLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadMap(writeMap(t, tt.contents), 20); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	for _, contents := range []string{`{bad json`, `{"layout": ["###"]}`, `{"name": "x"}`} {
		if _, err := LoadMap(writeMap(t, contents), 20); err == nil {
			t.Errorf("Expected an error for %s", contents)
		}
	}
}

func TestLoadBundledMap(t *testing.T) {
	m, err := LoadMap("../../../data/maps/cellar.json", 20)
	if err != nil {
		t.Fatalf("Failed to load bundled map: %v", err)
	}
	if m.Grid.Rows() != 9 || m.Grid.Cols() != 16 {
		t.Errorf("Expected 9x16 grid, got %dx%d", m.Grid.Rows(), m.Grid.Cols())
	}
	if m.Grid.CellSize() != 24 {
		t.Errorf("Expected cell size 24, got %f", m.Grid.CellSize())
	}
	if got := m.SpawnPosition(); got.X != 84 || got.Y != 60 {
		t.Errorf("Expected spawn at (84, 60), got %v", got)
	}
	if got := m.TexturePath("fallback.png"); got != "assets/tiles.json" {
		t.Errorf("Expected map texture assets/tiles.json, got %s", got)
	}
}
