// Package raydump prints the ray casts around a map's spawn point for
// debugging without a window.
package raydump

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"chosenoffset.com/dungeon/internal/config"
	"chosenoffset.com/dungeon/internal/core/camera"
	"chosenoffset.com/dungeon/internal/core/raycast"
	"chosenoffset.com/dungeon/internal/ui/asciimap"
	"chosenoffset.com/dungeon/internal/world/maploader"
)

// Step is the angle between rays of the dump
const Step = 15 * math.Pi / 180

// Dump casts a ray every 15 degrees from the spawn point, logs each result
// and writes the map with every hit marked to w
func Dump(w io.Writer, logger *log.Logger, cfg *config.Config, m *maploader.Map) []raycast.Hit {
	caster := raycast.NewCaster(m.Grid, cfg.ResolveFarClip(m.Grid.Rows(), m.Grid.CellSize()))
	caster.Nudge = cfg.NudgeEpsilon
	caster.Epsilon = cfg.DegenerateEpsilon

	origin := m.SpawnPosition()
	start := camera.NormalizeAngle(cfg.StartAngle)
	rays := int(math.Round(camera.TwoPi / Step))

	hits := make([]raycast.Hit, 0, rays)
	for i := 0; i < rays; i++ {
		angle := camera.NormalizeAngle(start + float64(i)*Step)
		hit := caster.CastAngle(origin, angle)
		hits = append(hits, hit)

		logger.Info("Ray",
			"angle", fmt.Sprintf("%.1f", angle*180/math.Pi),
			"kind", hit.Kind,
			"x", fmt.Sprintf("%.2f", hit.Point.X),
			"y", fmt.Sprintf("%.2f", hit.Point.Y),
			"cell", fmt.Sprintf("(%d, %d)", hit.Row, hit.Col),
			"distance", fmt.Sprintf("%.2f", hit.Distance),
			"steps", hit.Steps)
	}

	title := fmt.Sprintf("%s  %dx%d  from (%.0f, %.0f)", m.Data.Name, m.Grid.Rows(), m.Grid.Cols(), origin.X, origin.Y)
	fmt.Fprintln(w, asciimap.Render(title, m.Grid, origin, hits))
	return hits
}
