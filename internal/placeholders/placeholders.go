// Package placeholders draws procedural stand-in textures so the viewer
// can run without authored art.
package placeholders

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"chosenoffset.com/dungeon/internal/world/atlas"
)

// TileSize is the edge length of generated textures in pixels
const TileSize = 32

// Default output paths of cmd/genplaceholders
const (
	DefaultWallTexturePath = "assets/wall1_color.png"
	DefaultAtlasImagePath  = "assets/tiles.png"
)

// ColorPalette defines the stone dungeon colours
var ColorPalette = struct {
	WallStone color.RGBA
	Mortar    color.RGBA
	DoorWood  color.RGBA
	DoorBand  color.RGBA
}{
	WallStone: color.RGBA{130, 125, 115, 255},
	Mortar:    color.RGBA{70, 65, 60, 255},
	DoorWood:  color.RGBA{140, 100, 60, 255},
	DoorBand:  color.RGBA{60, 55, 50, 255},
}

// CreateSolidTile creates a simple solid-colored tile
func CreateSolidTile(col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreateBrickTile draws running-bond bricks: courses of TileSize/4 pixels,
// every other course offset by half a brick
func CreateBrickTile(brick, mortar color.RGBA) *image.RGBA {
	img := CreateSolidTile(brick)
	course := TileSize / 4
	brickWidth := TileSize / 2

	for y := 0; y < TileSize; y++ {
		row := y / course
		offset := 0
		if row%2 == 1 {
			offset = brickWidth / 2
		}
		for x := 0; x < TileSize; x++ {
			if y%course == 0 || (x+offset)%brickWidth == 0 {
				img.Set(x, y, mortar)
			} else if (x*7+y*13)%11 == 0 {
				img.Set(x, y, Darken(brick, 0.9))
			}
		}
	}
	return img
}

// CreatePlankTile draws vertical planks with two iron bands, for doors
func CreatePlankTile(wood, band color.RGBA) *image.RGBA {
	img := CreateSolidTile(wood)
	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			switch {
			case y == TileSize/4 || y == 3*TileSize/4:
				img.Set(x, y, band)
			case x%8 == 0:
				img.Set(x, y, Darken(wood, 0.7))
			}
		}
	}
	return img
}

// WallTexture returns the default wall texture
func WallTexture() *image.RGBA {
	return CreateBrickTile(ColorPalette.WallStone, ColorPalette.Mortar)
}

// DoorTexture returns the default door texture
func DoorTexture() *image.RGBA {
	return CreatePlankTile(ColorPalette.DoorWood, ColorPalette.DoorBand)
}

// AtlasImage lays the wall and door textures side by side, wall first
func AtlasImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize*2, TileSize))
	draw.Draw(img, image.Rect(0, 0, TileSize, TileSize), WallTexture(), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(TileSize, 0, TileSize*2, TileSize), DoorTexture(), image.Point{}, draw.Src)
	return img
}

// TileAtlas describes the layout of AtlasImage
func TileAtlas(imagePath string) *atlas.AtlasConfig {
	return &atlas.AtlasConfig{
		Name:       "placeholders",
		ImagePath:  imagePath,
		TileWidth:  TileSize,
		TileHeight: TileSize,
		Tiles: []atlas.TileDefinition{
			{Kind: "wall", AtlasX: 0, AtlasY: 0},
			{Kind: "door", AtlasX: 1, AtlasY: 0},
		},
	}
}

// AtlasConfigPath returns the JSON path written next to an atlas image
func AtlasConfigPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ".json"
}

// SavePNG saves an image to a PNG file, creating parent directories
func SavePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// GenerateAndSave writes the wall texture to wallPath, the wall and door
// atlas image to atlasPath and its config next to it
func GenerateAndSave(wallPath, atlasPath string) error {
	if err := SavePNG(WallTexture(), wallPath); err != nil {
		return err
	}
	if err := SavePNG(AtlasImage(), atlasPath); err != nil {
		return err
	}

	data, err := json.MarshalIndent(TileAtlas(filepath.Base(atlasPath)), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode atlas config: %w", err)
	}
	configPath := AtlasConfigPath(atlasPath)
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	return nil
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
