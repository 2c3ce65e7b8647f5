package maploader

import (
	"encoding/json"
	"fmt"
	"os"

	"chosenoffset.com/dungeon/internal/core/geom"
	"chosenoffset.com/dungeon/internal/world/grid"
)

// BuiltinName is the name reported for the compiled-in room
const BuiltinName = "builtin"

// MapData represents the JSON map file format
type MapData struct {
	Name        string   `json:"name"`
	CellSize    float64  `json:"cell_size"`    // Optional, falls back to the configured cell size
	WallTexture string   `json:"wall_texture"` // Optional, overrides the configured texture
	Layout      []string `json:"layout"`       // One string per row, see grid layout characters
}

// Map is a loaded map ready for the ray caster
type Map struct {
	Data *MapData
	Grid *grid.Grid
}

// LoadMap loads a map from a JSON file. defaultCellSize is used when the
// file does not set one.
func LoadMap(mapPath string, defaultCellSize float64) (*Map, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}

	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", mapPath, err)
	}

	if mapData.CellSize == 0 {
		mapData.CellSize = defaultCellSize
	}

	gameMap, err := build(&mapData)
	if err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", mapPath, err)
	}
	return gameMap, nil
}

// Builtin returns the reference room
func Builtin(cellSize float64) (*Map, error) {
	return build(&MapData{
		Name:     BuiltinName,
		CellSize: cellSize,
		Layout:   grid.DefaultLayout,
	})
}

func build(data *MapData) (*Map, error) {
	if data.Name == "" {
		return nil, fmt.Errorf("map name is required")
	}
	if len(data.Layout) == 0 {
		return nil, fmt.Errorf("layout is required")
	}

	g, err := grid.ParseRows(data.Layout, data.CellSize)
	if err != nil {
		return nil, err
	}
	if _, _, err := g.Spawn(); err != nil {
		return nil, err
	}

	return &Map{Data: data, Grid: g}, nil
}

// SpawnPosition returns the world position at the centre of the spawn cell
func (m *Map) SpawnPosition() geom.Vec {
	row, col, _ := m.Grid.Spawn()
	return m.Grid.CellCenter(row, col)
}

// TexturePath returns the map's wall texture, or fallback when it has none
func (m *Map) TexturePath(fallback string) string {
	if m.Data.WallTexture != "" {
		return m.Data.WallTexture
	}
	return fallback
}
