// Package projection turns a fan of ray hits into flat-shaded wall strip
// columns for the first-person view.
package projection

import (
	"math"

	"chosenoffset.com/dungeon/internal/core/raycast"
)

// Viewport is the screen rectangle the strip view is drawn into
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// Params holds the camera constants the projection depends on
type Params struct {
	FOV        float64 // radians
	WallHeight float64 // world units, normally the cell size
	NearClip   float64
	FarClip    float64
}

// Column is one vertical wall strip in screen space
type Column struct {
	X, Y          float64
	Width, Height float64
	// Shade is a brightness factor in (0, 1]
	Shade float64
	// PerpDistance is the fisheye-corrected distance to the wall
	PerpDistance float64
	Vertical     bool
}

// ProjectionDistance returns the distance from the eye to the projection
// plane for a viewport of the given width
func ProjectionDistance(width, fov float64) float64 {
	return (width / 2) / math.Tan(fov/2)
}

// Columns projects each wall hit in rays to a column. rays must be ordered
// left to right, as returned by raycast.Caster.CastFan. Rays that did not
// hit a wall produce no column.
func Columns(rays []raycast.Ray, cameraAngle float64, vp Viewport, p Params) []Column {
	if len(rays) == 0 || vp.Width <= 0 || vp.Height <= 0 {
		return nil
	}

	colWidth := vp.Width / float64(len(rays))
	projDist := ProjectionDistance(vp.Width, p.FOV)
	midY := vp.Y + vp.Height/2

	cols := make([]Column, 0, len(rays))
	for i, r := range rays {
		if r.Hit.Kind != raycast.HitWall {
			continue
		}

		perp := r.Hit.Distance * math.Cos(r.Angle-cameraAngle)
		if perp < p.NearClip {
			perp = p.NearClip
		}

		h := p.WallHeight * projDist / perp
		if h > vp.Height {
			h = vp.Height
		}

		shade := 1.0
		if p.FarClip > 0 {
			shade = 1 - perp/p.FarClip
			if shade < 0.15 {
				shade = 0.15
			}
		}
		if !r.Hit.Vertical {
			shade *= 0.7
		}

		cols = append(cols, Column{
			X:            vp.X + float64(i)*colWidth,
			Y:            midY - h/2,
			Width:        colWidth,
			Height:       h,
			Shade:        shade,
			PerpDistance: perp,
			Vertical:     r.Hit.Vertical,
		})
	}
	return cols
}
