package atlas

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"chosenoffset.com/dungeon/internal/render"
	"chosenoffset.com/dungeon/internal/world/grid"
)

// fakeImage records sub-image rectangles without a GPU backend
type fakeImage struct {
	bounds   image.Rectangle
	subCalls int
}

func (f *fakeImage) Bounds() image.Rectangle { return f.bounds }
func (f *fakeImage) Size() (int, int)        { return f.bounds.Dx(), f.bounds.Dy() }
func (f *fakeImage) SubImage(r image.Rectangle) render.Image {
	f.subCalls++
	return &fakeImage{bounds: r.Intersect(f.bounds)}
}
func (f *fakeImage) Fill(color.Color)                                 {}
func (f *fakeImage) DrawImage(render.Image, *render.DrawImageOptions) {}

// fakeLoader hands out fixed-size images and records requested paths
type fakeLoader struct {
	width, height int
	paths         []string
	fail          bool
}

func (l *fakeLoader) LoadImage(path string) (render.Image, error) {
	l.paths = append(l.paths, path)
	if l.fail {
		return nil, os.ErrNotExist
	}
	return &fakeImage{bounds: image.Rect(0, 0, l.width, l.height)}, nil
}

func (l *fakeLoader) ImageFrom(img image.Image) render.Image {
	return &fakeImage{bounds: img.Bounds()}
}

func TestAtlasConfigParsing(t *testing.T) {
	jsonData := `{
		"name": "dungeon",
		"image_path": "dungeon.png",
		"tile_width": 64,
		"tile_height": 64,
		"tiles": [
			{"kind": "wall", "atlas_x": 0, "atlas_y": 0},
			{"kind": "door", "atlas_x": 1, "atlas_y": 0}
		]
	}`

	var config AtlasConfig
	if err := json.Unmarshal([]byte(jsonData), &config); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if config.Name != "dungeon" {
		t.Errorf("Expected name 'dungeon', got '%s'", config.Name)
	}
	if len(config.Tiles) != 2 {
		t.Fatalf("Expected 2 tiles, got %d", len(config.Tiles))
	}

	regions, err := config.regions()
	if err != nil {
		t.Fatalf("Expected valid regions, got %v", err)
	}
	if r := regions[grid.Door]; r != image.Rect(64, 0, 128, 64) {
		t.Errorf("Expected door region (64,0)-(128,64), got %v", r)
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]grid.TileKind{"wall": grid.Wall, "Door": grid.Door, "FLOOR": grid.Floor}
	for name, want := range tests {
		got, err := ParseKind(name)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q): expected %s, got %s (%v)", name, want, got, err)
		}
	}
	if _, err := ParseKind("lava"); err == nil {
		t.Error("Expected error for unknown kind")
	}
}

func TestLoadSingleTexture(t *testing.T) {
	loader := &fakeLoader{width: 128, height: 128}
	a, err := Load("assets/wall1_color.png", loader)
	if err != nil {
		t.Fatalf("Failed to load texture: %v", err)
	}

	wall, ok := a.Tile(grid.Wall)
	if !ok {
		t.Fatal("Expected a wall texture")
	}
	if w, h := wall.Size(); w != 128 || h != 128 {
		t.Errorf("Expected 128x128 wall texture, got %dx%d", w, h)
	}
	if _, ok := a.Tile(grid.Door); ok {
		t.Error("Expected no door texture in a single-texture atlas")
	}
	if s := a.CellScale(20); s != 20.0/128.0 {
		t.Errorf("Expected cell scale 20/128, got %f", s)
	}
}

func TestLoadMissingTexture(t *testing.T) {
	_, err := Load("assets/missing.png", &fakeLoader{fail: true})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped not-exist error, got %v", err)
	}
}

func TestLoadAtlasConfigResolvesImagePath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "atlas.json")
	config := `{
		"name": "dungeon",
		"image_path": "tiles.png",
		"tile_width": 32,
		"tile_height": 32,
		"tiles": [{"kind": "wall", "atlas_x": 1, "atlas_y": 1}]
	}`
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := &fakeLoader{width: 64, height: 64}
	a, err := Load(configPath, loader)
	if err != nil {
		t.Fatalf("Failed to load atlas: %v", err)
	}
	if len(loader.paths) != 1 || loader.paths[0] != filepath.Join(dir, "tiles.png") {
		t.Errorf("Expected image resolved next to config, got %v", loader.paths)
	}

	wall, ok := a.Tile(grid.Wall)
	if !ok {
		t.Fatal("Expected a wall texture")
	}
	if wall.Bounds() != image.Rect(32, 32, 64, 64) {
		t.Errorf("Expected wall region (32,32)-(64,64), got %v", wall.Bounds())
	}
}

func TestAtlasConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"zero tiles", `{"name": "x", "image_path": "a.png", "tile_width": 0, "tile_height": 0}`},
		{"no image", `{"name": "x", "tile_width": 8, "tile_height": 8}`},
		{"bad kind", `{"name": "x", "image_path": "a.png", "tile_width": 8, "tile_height": 8, "tiles": [{"kind": "lava"}]}`},
		{"duplicate", `{"name": "x", "image_path": "a.png", "tile_width": 8, "tile_height": 8, "tiles": [{"kind": "wall"}, {"kind": "wall"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "atlas.json")
			if err := os.WriteFile(path, []byte(tt.config), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadAtlas(path, &fakeLoader{width: 8, height: 8}); err == nil {
				t.Error("Expected error when loading invalid atlas config")
			}
		})
	}
}

func TestNewFromLoadedImage(t *testing.T) {
	loader := &fakeLoader{}
	img := loader.ImageFrom(image.NewRGBA(image.Rect(0, 0, 64, 32)))

	a, err := New(&AtlasConfig{
		Name:       "placeholders",
		TileWidth:  32,
		TileHeight: 32,
		Tiles: []TileDefinition{
			{Kind: "wall", AtlasX: 0},
			{Kind: "door", AtlasX: 1},
		},
	}, img)
	if err != nil {
		t.Fatalf("Failed to build atlas: %v", err)
	}

	door, ok := a.Tile(grid.Door)
	if !ok {
		t.Fatal("Expected a door texture")
	}
	if b := door.Bounds(); b != image.Rect(32, 0, 64, 32) {
		t.Errorf("Expected door region (32,0)-(64,32), got %v", b)
	}
	if len(loader.paths) != 0 {
		t.Errorf("Expected no file loads, got %v", loader.paths)
	}
}

func TestNewRejectsBadTiles(t *testing.T) {
	_, err := New(&AtlasConfig{Name: "x", TileWidth: 0, TileHeight: 32}, &fakeImage{})
	if err == nil {
		t.Error("Expected error for zero tile width")
	}
}

func TestTileIsCutOnce(t *testing.T) {
	img := &fakeImage{bounds: image.Rect(0, 0, 64, 32)}
	a, err := New(&AtlasConfig{
		Name:       "cached",
		TileWidth:  32,
		TileHeight: 32,
		Tiles: []TileDefinition{
			{Kind: "wall", AtlasX: 0},
			{Kind: "door", AtlasX: 1},
		},
	}, img)
	if err != nil {
		t.Fatalf("Failed to build atlas: %v", err)
	}

	first, _ := a.Tile(grid.Wall)
	for i := 0; i < 100; i++ {
		again, ok := a.Tile(grid.Wall)
		if !ok || again != first {
			t.Fatal("Expected the same wall texture on every lookup")
		}
		a.Tile(grid.Door)
	}
	if img.subCalls != 2 {
		t.Errorf("Expected 2 sub-images cut at build time, got %d", img.subCalls)
	}
}
