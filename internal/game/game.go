package game

import (
	"fmt"

	"github.com/charmbracelet/log"

	"chosenoffset.com/dungeon/internal/config"
	"chosenoffset.com/dungeon/internal/core/camera"
	"chosenoffset.com/dungeon/internal/core/fov"
	"chosenoffset.com/dungeon/internal/core/geom"
	"chosenoffset.com/dungeon/internal/core/projection"
	"chosenoffset.com/dungeon/internal/core/raycast"
	"chosenoffset.com/dungeon/internal/render"
	"chosenoffset.com/dungeon/internal/world/atlas"
	"chosenoffset.com/dungeon/internal/world/grid"
	"chosenoffset.com/dungeon/internal/world/maploader"
)

// messageDuration is how long toggle messages stay on screen, in seconds
const messageDuration = 2.0

// Deps are the rendering collaborators the game talks to
type Deps struct {
	Renderer render.Renderer
	Input    render.InputManager
	Clock    render.Clock
	Atlas    *atlas.Atlas // Optional; walls fall back to flat colour
	Logger   *log.Logger
}

// Game owns the camera and produces one Frame per update.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Offset       geom.Vec // Screen position of the map origin

	Map    *maploader.Map
	Caster *raycast.Caster
	Camera camera.Camera
	Motion camera.Motion
	FOV    float64

	Renderer render.Renderer
	InputMgr render.InputManager
	Clock    render.Clock
	Atlas    *atlas.Atlas
	Logger   *log.Logger

	// Toggles
	ShowHUD       bool
	StripView     bool
	WallCollision bool

	rayCount   int
	nearClip   float64
	cells      []Cell
	lastFrame  Frame
	hasFrame   bool
	Messages   []Message
	FrameCount int
}

// New creates a game for a loaded map
func New(cfg *config.Config, m *maploader.Map, deps Deps) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}

	caster := raycast.NewCaster(m.Grid, cfg.ResolveFarClip(m.Grid.Rows(), m.Grid.CellSize()))
	caster.Nudge = cfg.NudgeEpsilon
	caster.Epsilon = cfg.DegenerateEpsilon

	g := &Game{
		ScreenWidth:  cfg.ScreenWidth,
		ScreenHeight: cfg.ScreenHeight,
		Offset:       geom.Vec{X: cfg.MapOffsetX, Y: cfg.MapOffsetY},
		Map:          m,
		Caster:       caster,
		Camera: camera.Camera{
			Pos:   m.SpawnPosition(),
			Angle: camera.NormalizeAngle(cfg.StartAngle),
		},
		Motion: camera.Motion{
			MoveSpeed:     cfg.MoveSpeed,
			RotationSpeed: cfg.RotationSpeed,
		},
		FOV:       cfg.FOV(),
		Renderer:  deps.Renderer,
		InputMgr:  deps.Input,
		Clock:     deps.Clock,
		Atlas:     deps.Atlas,
		Logger:    deps.Logger,
		ShowHUD:   cfg.ShowHUD,
		StripView: cfg.StripView,
		rayCount:  cfg.RayCount,
		nearClip:  cfg.NearClip,
		cells:     collectCells(m.Grid),
	}
	g.SetWallCollision(cfg.WallCollision)

	return g, nil
}

// collectCells lists every non-floor cell once; the grid never changes
func collectCells(g *grid.Grid) []Cell {
	var cells []Cell
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			kind, _ := g.TileAt(r, c)
			if kind == grid.Floor {
				continue
			}
			cells = append(cells, Cell{Row: r, Col: c, Kind: kind, Origin: g.CellOrigin(r, c)})
		}
	}
	return cells
}

// SetWallCollision switches wall collision for camera movement
func (g *Game) SetWallCollision(on bool) {
	g.WallCollision = on
	if on {
		g.Motion.Collider = camera.WallCollider{Grid: g.Map.Grid}
	} else {
		g.Motion.Collider = nil
	}
}

// ReadInput maps held keys to camera input. WASD and the arrow keys both work.
func (g *Game) ReadInput() camera.Input {
	held := func(keys ...render.Key) bool {
		for _, k := range keys {
			if g.InputMgr.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	return camera.Input{
		Forward:     held(render.KeyW, render.KeyUp),
		Backward:    held(render.KeyS, render.KeyDown),
		RotateLeft:  held(render.KeyA, render.KeyLeft),
		RotateRight: held(render.KeyD, render.KeyRight),
	}
}

// Update handles one tick: input, camera, ray casting.
func (g *Game) Update() error {
	g.FrameCount++
	dt := g.Clock.DeltaTime()
	g.updateMessages(dt)

	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		g.Logger.Info("Escape pressed, shutting down")
		return render.ErrQuit
	}
	g.handleToggles()

	g.Camera = g.Motion.Apply(g.Camera, g.ReadInput(), dt)

	frame := g.BuildFrame()
	if g.hasFrame && frame.Hit.Kind != g.lastFrame.Hit.Kind {
		g.Logger.Debug("Cast result changed",
			"from", g.lastFrame.Hit.Kind,
			"to", frame.Hit.Kind,
			"x", fmt.Sprintf("%.2f", frame.Hit.Point.X),
			"y", fmt.Sprintf("%.2f", frame.Hit.Point.Y),
			"distance", fmt.Sprintf("%.2f", frame.Hit.Distance))
	}
	g.lastFrame = frame
	g.hasFrame = true

	return nil
}

func (g *Game) handleToggles() {
	if g.InputMgr.IsKeyJustPressed(render.KeyH) {
		g.ShowHUD = !g.ShowHUD
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyC) {
		g.SetWallCollision(!g.WallCollision)
		g.ShowMessage(fmt.Sprintf("Wall collision %s", onOff(g.WallCollision)))
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyV) {
		g.StripView = !g.StripView
		g.ShowMessage(fmt.Sprintf("Strip view %s", onOff(g.StripView)))
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// BuildFrame computes the geometry for the current camera. It reads the
// camera and the map only.
func (g *Game) BuildFrame() Frame {
	pos := g.Camera.Pos
	angle := g.Camera.Angle
	plane := fov.FarClipPlane(pos, angle, g.FOV, g.Caster.FarClip)

	frame := Frame{
		Player: pos,
		Angle:  angle,
		Plane:  plane,
		Cone:   plane.Segments(pos),
		Hit:    g.Caster.CastAngle(pos, angle),
	}

	if g.StripView && g.rayCount > 0 {
		frame.Fan = g.Caster.CastFan(pos, angle, g.FOV, g.rayCount)
		frame.Columns = projection.Columns(frame.Fan, angle, g.StripViewport(), projection.Params{
			FOV:        g.FOV,
			WallHeight: g.Map.Grid.CellSize(),
			NearClip:   g.nearClip,
			FarClip:    g.Caster.FarClip,
		})
	}
	return frame
}

// StripViewport is the screen area right of the minimap used by the strip view
func (g *Game) StripViewport() projection.Viewport {
	left := g.Offset.X*2 + g.Map.Grid.Width()
	return projection.Viewport{
		X:      left,
		Y:      g.Offset.Y,
		Width:  float64(g.ScreenWidth) - left - g.Offset.X,
		Height: float64(g.ScreenHeight) - 2*g.Offset.Y,
	}
}

// Frame returns the geometry from the last update
func (g *Game) Frame() Frame {
	if !g.hasFrame {
		return g.BuildFrame()
	}
	return g.lastFrame
}

// MapToScreen converts a map-space point into screen space
func (g *Game) MapToScreen(p geom.Vec) geom.Vec {
	return p.Add(g.Offset)
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: messageDuration,
		MaxTime:  messageDuration,
	})
	g.Logger.Info(text)
}
