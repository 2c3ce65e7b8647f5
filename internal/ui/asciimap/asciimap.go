// Package asciimap draws a grid, the camera and ray hits as text for the
// terminal debug dump.
package asciimap

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chosenoffset.com/dungeon/internal/core/geom"
	"chosenoffset.com/dungeon/internal/core/raycast"
	"chosenoffset.com/dungeon/internal/world/grid"
)

// Glyphs used in the dump
const (
	WallGlyph   = '#'
	DoorGlyph   = '+'
	FloorGlyph  = '.'
	PlayerGlyph = '@'
	HitGlyph    = '*'
)

var (
	wallStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	floorStyle  = lipgloss.NewStyle().Faint(true)
	playerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	hitStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	frameStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("2")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
)

// Rows returns the unstyled glyph rows. Cells holding a wall hit are marked
// with HitGlyph and the player's cell with PlayerGlyph, which wins.
func Rows(g *grid.Grid, player geom.Vec, hits []raycast.Hit) [][]rune {
	rows := make([][]rune, g.Rows())
	for r := range rows {
		rows[r] = make([]rune, g.Cols())
		for c := range rows[r] {
			kind, _ := g.TileAt(r, c)
			switch kind {
			case grid.Wall:
				rows[r][c] = WallGlyph
			case grid.Door:
				rows[r][c] = DoorGlyph
			default:
				rows[r][c] = FloorGlyph
			}
		}
	}

	for _, h := range hits {
		if h.Kind == raycast.HitWall && g.Contains(h.Row, h.Col) {
			rows[h.Row][h.Col] = HitGlyph
		}
	}

	if r, c := g.CellAt(player); g.Contains(r, c) {
		rows[r][c] = PlayerGlyph
	}
	return rows
}

func style(glyph rune) lipgloss.Style {
	switch glyph {
	case WallGlyph:
		return wallStyle
	case DoorGlyph:
		return doorStyle
	case PlayerGlyph:
		return playerStyle
	case HitGlyph:
		return hitStyle
	default:
		return floorStyle
	}
}

// Render returns the styled map in a titled frame
func Render(title string, g *grid.Grid, player geom.Vec, hits []raycast.Hit) string {
	var b strings.Builder
	for i, row := range Rows(g, player, hits) {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, glyph := range row {
			b.WriteString(style(glyph).Render(string(glyph)))
		}
	}

	legend := lipgloss.NewStyle().Faint(true).Render("@ camera  * wall hit  + door")
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		frameStyle.Render(b.String()),
		legend,
	)
}
