package game

import (
	"fmt"
	"image/color"
	"math"

	"chosenoffset.com/dungeon/internal/core/geom"
	"chosenoffset.com/dungeon/internal/render"
	"chosenoffset.com/dungeon/internal/world/grid"
)

// Colours of the minimap
var (
	Background = color.RGBA{0x18, 0x18, 0x18, 0xff}
	GridLine   = color.RGBA{230, 41, 55, 255}
	Border     = color.RGBA{0, 228, 48, 255}
	Cone       = color.RGBA{0, 228, 48, 255}
	PlayerDot  = color.RGBA{200, 122, 255, 255}
	LeftDot    = color.RGBA{0, 121, 241, 255}
	RightDot   = color.RGBA{255, 161, 0, 255}
	Outline    = color.RGBA{255, 255, 255, 255}
	HitDot     = color.RGBA{255, 255, 255, 255}
	FanRay     = color.NRGBA{255, 255, 255, 40}
	WallFlat   = color.RGBA{130, 125, 115, 255}
	DoorFlat   = color.RGBA{140, 100, 60, 255}
	StripWall  = color.RGBA{180, 175, 165, 255}
	HUDText    = color.RGBA{220, 220, 220, 255}
)

// Draw renders the last frame to the screen.
func (g *Game) Draw(screen render.Image) {
	frame := g.Frame()

	screen.Fill(Background)
	g.drawCells(screen)
	g.drawGrid(screen)
	if g.StripView {
		g.drawFan(screen, frame)
		g.drawColumns(screen, frame)
	}
	g.drawCone(screen, frame)
	g.drawHUD(screen, frame)
}

func (g *Game) dotRadius() float32 {
	return float32(g.Map.Grid.CellSize() / 5)
}

func (g *Game) line(screen render.Image, a, b geom.Vec, width float32, clr color.Color) {
	sa, sb := g.MapToScreen(a), g.MapToScreen(b)
	g.Renderer.StrokeLine(screen, float32(sa.X), float32(sa.Y), float32(sb.X), float32(sb.Y), width, clr)
}

func (g *Game) dot(screen render.Image, p geom.Vec, clr color.Color) {
	s := g.MapToScreen(p)
	g.Renderer.FillCircle(screen, float32(s.X), float32(s.Y), g.dotRadius(), clr)
}

// drawCells draws wall and door cells, textured when the atlas has the kind
func (g *Game) drawCells(screen render.Image) {
	cellSize := g.Map.Grid.CellSize()

	var opts *render.DrawImageOptions
	var scale float64
	if g.Atlas != nil {
		opts = &render.DrawImageOptions{GeoM: render.NewGeoM()}
		scale = g.Atlas.CellScale(cellSize)
	}

	for _, cell := range g.cells {
		pos := g.MapToScreen(cell.Origin)

		if g.Atlas != nil {
			if tex, ok := g.Atlas.Tile(cell.Kind); ok {
				opts.GeoM.Reset()
				opts.GeoM.Scale(scale, scale)
				opts.GeoM.Translate(pos.X, pos.Y)
				screen.DrawImage(tex, opts)
				continue
			}
		}

		clr := WallFlat
		if cell.Kind == grid.Door {
			clr = DoorFlat
		}
		g.Renderer.FillRect(screen, float32(pos.X), float32(pos.Y), float32(cellSize), float32(cellSize), clr)
	}
}

// drawGrid draws every cell boundary, with the far edges in the border colour
func (g *Game) drawGrid(screen render.Image) {
	m := g.Map.Grid
	w, h := m.Width(), m.Height()

	for c := 0; c < m.Cols(); c++ {
		x := float64(c) * m.CellSize()
		g.line(screen, geom.Vec{X: x, Y: 0}, geom.Vec{X: x, Y: h}, 1, GridLine)
	}
	for r := 0; r < m.Rows(); r++ {
		y := float64(r) * m.CellSize()
		g.line(screen, geom.Vec{X: 0, Y: y}, geom.Vec{X: w, Y: y}, 1, GridLine)
	}
	g.line(screen, geom.Vec{X: w, Y: 0}, geom.Vec{X: w, Y: h}, 1, Border)
	g.line(screen, geom.Vec{X: 0, Y: h}, geom.Vec{X: w, Y: h}, 1, Border)
}

// drawCone draws the outlined player, the view cone, its far corners and
// the hit point
func (g *Game) drawCone(screen render.Image, frame Frame) {
	g.dot(screen, frame.Player, PlayerDot)
	p := g.MapToScreen(frame.Player)
	g.Renderer.StrokeCircle(screen, float32(p.X), float32(p.Y), g.dotRadius(), 1, Outline)
	for _, seg := range frame.Cone {
		g.line(screen, seg[0], seg[1], 1, Cone)
	}
	g.dot(screen, frame.Plane.Left, LeftDot)
	g.dot(screen, frame.Plane.Right, RightDot)
	g.dot(screen, frame.Hit.Point, HitDot)
}

func (g *Game) drawFan(screen render.Image, frame Frame) {
	for _, ray := range frame.Fan {
		g.line(screen, frame.Player, ray.Hit.Boundary, 1, FanRay)
	}
}

// drawColumns draws the flat-shaded wall strips
func (g *Game) drawColumns(screen render.Image, frame Frame) {
	for _, col := range frame.Columns {
		clr := color.RGBA{
			R: uint8(float64(StripWall.R) * col.Shade),
			G: uint8(float64(StripWall.G) * col.Shade),
			B: uint8(float64(StripWall.B) * col.Shade),
			A: 255,
		}
		// Overdraw by a pixel so narrow columns leave no gaps
		g.Renderer.FillRect(screen, float32(col.X), float32(col.Y), float32(col.Width)+1, float32(col.Height), clr)
	}
}

// HUDLines returns the status text shown in the corner of the screen
func (g *Game) HUDLines(frame Frame) []string {
	return []string{
		fmt.Sprintf("Map: %s  Pos: (%.1f, %.1f)  Angle: %.1f°", g.Map.Data.Name, frame.Player.X, frame.Player.Y, frame.Angle*180/math.Pi),
		fmt.Sprintf("Hit: %s at (%.1f, %.1f)  Distance: %.1f", frame.Hit.Kind, frame.Hit.Point.X, frame.Hit.Point.Y, frame.Hit.Distance),
		fmt.Sprintf("Collision: %s  Strip view: %s", onOff(g.WallCollision), onOff(g.StripView)),
		"WASD/arrows move and turn, C collision, V strip view, H HUD, Esc quit",
	}
}

func (g *Game) drawHUD(screen render.Image, frame Frame) {
	if !g.ShowHUD {
		return
	}

	y := 10
	for _, line := range g.HUDLines(frame) {
		g.Renderer.DrawText(screen, line, 10, y, HUDText, 1)
		_, h := g.Renderer.MeasureText(line, 1)
		y += h + 4
	}

	y = g.ScreenHeight - 30
	for i := len(g.Messages) - 1; i >= 0; i-- {
		msg := g.Messages[i]
		alpha := uint8(255 * msg.TimeLeft / msg.MaxTime)
		g.Renderer.DrawText(screen, msg.Text, 10, y, color.NRGBA{255, 255, 100, alpha}, 1)
		y -= 20
	}
}
