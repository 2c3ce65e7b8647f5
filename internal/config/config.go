// Package config provides the viewer's tunable constants. Values are read
// from an optional JSON file layered over DefaultConfig.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// Config holds all viewer settings
type Config struct {
	// Window
	ScreenWidth  int `json:"screen_width"`
	ScreenHeight int `json:"screen_height"`

	// Map
	CellSize    float64 `json:"cell_size"`    // World units per cell edge
	MapPath     string  `json:"map"`          // JSON map file, empty for the built-in room
	TexturePath string  `json:"wall_texture"` // Wall texture image
	MapOffsetX  float64 `json:"map_offset_x"` // Screen position of the minimap origin
	MapOffsetY  float64 `json:"map_offset_y"`

	// Camera
	FOVDegrees    float64 `json:"fov_degrees"`
	FarClip       float64 `json:"far_clip"`       // 0 derives rows*cell_size/2 from the map
	NearClip      float64 `json:"near_clip"`
	MoveSpeed     float64 `json:"move_speed"`     // World units per second
	RotationSpeed float64 `json:"rotation_speed"` // Radians per second
	StartAngle    float64 `json:"start_angle"`    // Radians
	WallCollision bool    `json:"wall_collision"`

	// Ray caster
	NudgeEpsilon      float64 `json:"nudge_epsilon"`
	DegenerateEpsilon float64 `json:"degenerate_epsilon"`

	// View
	RayCount  int  `json:"ray_count"` // Rays in the fan for the strip view
	StripView bool `json:"strip_view"`
	ShowHUD   bool `json:"show_hud"`
}

// DefaultConfig returns the reference room settings
func DefaultConfig() *Config {
	return &Config{
		ScreenWidth:       1280,
		ScreenHeight:      760,
		CellSize:          20,
		TexturePath:       "assets/wall1_color.png",
		MapOffsetX:        100,
		MapOffsetY:        100,
		FOVDegrees:        120,
		FarClip:           0,
		NearClip:          5,
		MoveSpeed:         40,
		RotationSpeed:     5,
		StartAngle:        0.2,
		WallCollision:     false,
		NudgeEpsilon:      0.01,
		DegenerateEpsilon: 1e-6,
		RayCount:          160,
		StripView:         false,
		ShowHUD:           true,
	}
}

// LoadConfig loads config from a JSON file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// Validate checks that the settings describe a usable camera
func (c *Config) Validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("invalid screen size: %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("invalid cell size: %f", c.CellSize)
	}
	if c.FOVDegrees <= 0 || c.FOVDegrees >= 180 {
		return fmt.Errorf("fov must be between 0 and 180 degrees, got %f", c.FOVDegrees)
	}
	if c.FarClip < 0 || c.NearClip < 0 {
		return fmt.Errorf("clip distances must not be negative: near %f, far %f", c.NearClip, c.FarClip)
	}
	if c.MoveSpeed < 0 || c.RotationSpeed < 0 {
		return fmt.Errorf("speeds must not be negative: move %f, rotation %f", c.MoveSpeed, c.RotationSpeed)
	}
	if c.NudgeEpsilon <= 0 || c.DegenerateEpsilon <= 0 {
		return fmt.Errorf("epsilons must be positive: nudge %f, degenerate %f", c.NudgeEpsilon, c.DegenerateEpsilon)
	}
	if c.RayCount < 0 {
		return fmt.Errorf("invalid ray count: %d", c.RayCount)
	}
	return nil
}

// FOV returns the field of view in radians
func (c *Config) FOV() float64 {
	return c.FOVDegrees * math.Pi / 180
}

// ResolveFarClip returns the configured far clip, or half the map height
// in world units when none is set. cellSize is the map's own cell size,
// which a map file may set independently of the config.
func (c *Config) ResolveFarClip(rows int, cellSize float64) float64 {
	if c.FarClip > 0 {
		return c.FarClip
	}
	return float64(rows) * cellSize / 2
}
