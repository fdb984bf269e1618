package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/colormerge/internal/core"
)

var namedColors = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// styles is indexed by core.Color. Built once; read concurrently by SSH sessions.
var styles = buildStyles()

func buildStyles() []lipgloss.Style {
	out := make([]lipgloss.Style, 256)
	for i := range out {
		c := core.Color(i)
		switch code, ok := namedColors[c]; {
		case ok:
			out[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
		default:
			if level, isTile := c.TileLevel(); isTile {
				out[i] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(tileHex(level)))
			} else {
				out[i] = lipgloss.NewStyle()
			}
		}
	}
	return out
}

// tileHex returns the tile hue for a level. Each level rotates the hue by
// 29 degrees and darkens until a floor; lipgloss degrades it on terminals
// without true color.
func tileHex(level int) string {
	hue := float64((210 + level*29) % 360)
	light := math.Max(38, float64(72-level*4))
	return hslHex(hue, 0.72, light/100)
}

func hslHex(h, s, l float64) string {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g = c, x
	case h < 120:
		r, g = x, c
	case h < 180:
		g, b = c, x
	case h < 240:
		g, b = x, c
	case h < 300:
		r, b = x, c
	default:
		r, b = c, x
	}
	to8 := func(v float64) int { return int(math.Round((v + m) * 255)) }
	return fmt.Sprintf("#%02x%02x%02x", to8(r), to8(g), to8(b))
}

// RenderScreen converts a Screen buffer to a styled string, emitting one
// styled span per run of same-colored cells.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		run.Reset()
		current := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != current {
				sb.WriteString(styles[current].Render(run.String()))
				run.Reset()
				current = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		if run.Len() > 0 {
			sb.WriteString(styles[current].Render(run.String()))
		}
	}
	return sb.String()
}
