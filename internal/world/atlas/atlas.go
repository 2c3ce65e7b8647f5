package atlas

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"chosenoffset.com/dungeon/internal/render"
	"chosenoffset.com/dungeon/internal/world/grid"
)

// TileDefinition places one tile kind within the atlas image
type TileDefinition struct {
	Kind   string `json:"kind"`    // "wall", "door" or "floor"
	AtlasX int    `json:"atlas_x"` // X position in atlas (in tiles)
	AtlasY int    `json:"atlas_y"` // Y position in atlas (in tiles)
}

// AtlasConfig defines the JSON configuration for a texture atlas
type AtlasConfig struct {
	Name       string           `json:"name"`
	ImagePath  string           `json:"image_path"`  // Path to the atlas image file
	TileWidth  int              `json:"tile_width"`  // Width of each tile in pixels
	TileHeight int              `json:"tile_height"` // Height of each tile in pixels
	Tiles      []TileDefinition `json:"tiles"`
}

// Atlas maps tile kinds to regions of a loaded texture
type Atlas struct {
	Config *AtlasConfig
	Image  render.Image
	tiles  map[grid.TileKind]render.Image // Sub-images cut once at build time
}

func build(config *AtlasConfig, img render.Image, regions map[grid.TileKind]image.Rectangle) *Atlas {
	tiles := make(map[grid.TileKind]render.Image, len(regions))
	for kind, r := range regions {
		tiles[kind] = img.SubImage(r)
	}
	return &Atlas{Config: config, Image: img, tiles: tiles}
}

// ParseKind converts a tile kind name into a grid.TileKind
func ParseKind(name string) (grid.TileKind, error) {
	for _, k := range []grid.TileKind{grid.Floor, grid.Wall, grid.Door} {
		if strings.EqualFold(name, k.String()) {
			return k, nil
		}
	}
	return grid.Floor, fmt.Errorf("unknown tile kind %q", name)
}

// Load loads either an atlas config (.json) or a single wall texture image.
// A load failure is returned unchanged so the caller can treat it as fatal.
func Load(path string, loader render.ResourceLoader) (*Atlas, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadAtlas(path, loader)
	}

	img, err := loader.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load wall texture %s: %w", path, err)
	}
	return FromTexture(filepath.Base(path), img), nil
}

// FromTexture builds an atlas that uses the whole image for wall cells
func FromTexture(name string, img render.Image) *Atlas {
	w, h := img.Size()
	config := &AtlasConfig{
		Name:       name,
		TileWidth:  w,
		TileHeight: h,
		Tiles:      []TileDefinition{{Kind: grid.Wall.String()}},
	}
	return build(config, img, map[grid.TileKind]image.Rectangle{grid.Wall: img.Bounds()})
}

// LoadAtlas loads a texture atlas from a JSON configuration file. The image
// path is resolved relative to the config file.
func LoadAtlas(configPath string, loader render.ResourceLoader) (*Atlas, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read atlas config %s: %w", configPath, err)
	}

	var config AtlasConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse atlas config %s: %w", configPath, err)
	}

	if config.ImagePath == "" {
		return nil, fmt.Errorf("image_path is required in atlas config %s", configPath)
	}
	regions, err := config.regions()
	if err != nil {
		return nil, fmt.Errorf("invalid atlas config %s: %w", configPath, err)
	}

	imagePath := config.ImagePath
	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(filepath.Dir(configPath), imagePath)
	}
	img, err := loader.LoadImage(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load atlas image %s: %w", imagePath, err)
	}

	return build(&config, img, regions), nil
}

// New builds an atlas over an image that is already loaded
func New(config *AtlasConfig, img render.Image) (*Atlas, error) {
	regions, err := config.regions()
	if err != nil {
		return nil, fmt.Errorf("invalid atlas %s: %w", config.Name, err)
	}
	return build(config, img, regions), nil
}

// regions validates the config and computes each kind's pixel rectangle
func (c *AtlasConfig) regions() (map[grid.TileKind]image.Rectangle, error) {
	if c.TileWidth <= 0 || c.TileHeight <= 0 {
		return nil, fmt.Errorf("invalid tile dimensions: %dx%d", c.TileWidth, c.TileHeight)
	}

	regions := make(map[grid.TileKind]image.Rectangle)
	for _, tile := range c.Tiles {
		kind, err := ParseKind(tile.Kind)
		if err != nil {
			return nil, err
		}
		if _, dup := regions[kind]; dup {
			return nil, fmt.Errorf("tile kind %s defined twice", kind)
		}
		x := tile.AtlasX * c.TileWidth
		y := tile.AtlasY * c.TileHeight
		regions[kind] = image.Rect(x, y, x+c.TileWidth, y+c.TileHeight)
	}
	return regions, nil
}

// Tile returns the texture for a tile kind
func (a *Atlas) Tile(kind grid.TileKind) (render.Image, bool) {
	tile, ok := a.tiles[kind]
	return tile, ok
}

// CellScale returns the scale that fits one tile into a cell of cellSize
// world units
func (a *Atlas) CellScale(cellSize float64) float64 {
	return cellSize / float64(a.Config.TileWidth)
}
