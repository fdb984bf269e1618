package merge

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/colormerge/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 3 // Height of each cell (including top border)
	hudHeight  = 6

	boardW = Size*cellWidth + 1
	boardH = Size*cellHeight + 1

	minScreenW = boardW + 2
	minScreenH = hudHeight + boardH + 2
)

// TileColor returns the display color of a tile level. Empty cells are gray.
func TileColor(level int) core.Color {
	if level <= 0 {
		return core.ColorGray
	}
	return core.TileLevelColor(level)
}

// TierColor returns the display color of a multiplier tier.
func TierColor(t MultiplierTier) core.Color {
	switch t {
	case TierMax:
		return core.ColorBrightMagenta
	case TierHigh:
		return core.ColorOrange
	case TierMid:
		return core.ColorBrightYellow
	default:
		return core.ColorWhite
	}
}

// HealthColor returns the gauge color for a health percentage.
func HealthColor(pct int) core.Color {
	switch {
	case pct > 60:
		return core.ColorBrightGreen
	case pct > 30:
		return core.ColorBrightYellow
	default:
		return core.ColorBrightRed
	}
}

// PopupColor returns the color of a merge popup by points.
func PopupColor(points int) core.Color {
	switch {
	case points >= 512:
		return core.ColorBrightMagenta
	case points >= 128:
		return core.ColorBrightYellow
	default:
		return core.ColorBrightWhite
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.session == nil {
		return
	}

	now := g.now()
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, boardX, now)
	g.renderGrid(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY, now)
	g.renderPopups(dst, boardX, boardY, now)
	g.renderFooter(dst, boardX, boardY+boardH)
	g.renderOverlay(dst, boardX, boardY)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// renderHUD draws the title, scores and the strategy meter.
func (g *Game) renderHUD(dst *core.Screen, boardX int, now time.Time) {
	dst.DrawAligned(boardX, boardW, 0, g.Title(), core.AlignCenter, core.ColorBrightCyan)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score %d", g.session.Score()))
	dst.DrawAligned(boardX, boardW, 1, fmt.Sprintf("Best %d", g.session.Best()), core.AlignRight, core.ColorDefault)

	m := g.session.Meter(now)
	switch s := g.session.Strategy().(type) {
	case *RhythmStrategy:
		g.renderRhythmHUD(dst, boardX, m, s.Cue(now), now)
	case *TimerStrategy:
		g.renderTimerHUD(dst, boardX, m)
	}
}

// GradeLabel returns the judgement shown at now: the last grade while it is
// fresh, "KEEP" otherwise.
func GradeLabel(m Meter, hold time.Duration, now time.Time) string {
	if m.LastGrade == GradeNone || now.Sub(m.GradeAt) >= hold {
		return "KEEP"
	}
	return string(m.LastGrade)
}

func gradeColor(label string) core.Color {
	switch Grade(label) {
	case GradeGreat:
		return core.ColorBrightCyan
	case GradeGood:
		return core.ColorBrightGreen
	case GradeBad:
		return core.ColorBrightRed
	default:
		return core.ColorGray
	}
}

func (g *Game) renderRhythmHUD(dst *core.Screen, boardX int, m Meter, cue LaneCue, now time.Time) {
	mult := fmt.Sprintf("x%.2f", m.Multiplier)
	dst.DrawTextColor(boardX, 2, mult, TierColor(TierFor(m.Multiplier)))

	label := GradeLabel(m, g.cfg.Rhythm.LabelHold(), now)
	dst.DrawAligned(boardX, boardW, 2, label, core.AlignCenter, gradeColor(label))
	dst.DrawAligned(boardX, boardW, 2, fmt.Sprintf("Combo %d", m.Combo), core.AlignRight, core.ColorDefault)

	// Lane: segment-colored track with a sweeping cursor.
	laneColor := [...]core.Color{core.ColorCyan, core.ColorMagenta, core.ColorYellow}[cue.Segment]
	dst.DrawText(boardX, 3, "[")
	dst.DrawText(boardX+boardW-1, 3, "]")
	track := boardW - 2
	for i := range track {
		dst.SetColor(boardX+1+i, 3, '─', laneColor)
	}
	cursor := int(cue.Cursor / 100 * float64(track-1))
	dst.SetColor(boardX+1+cursor, 3, '◆', core.ColorBrightWhite)

	pct := 0
	if m.MaxHealth > 0 {
		pct = m.Health * 100 / m.MaxHealth
	}
	g.renderGauge(dst, boardX, 4, "HP", pct, HealthColor(pct), strconv.Itoa(m.Health))
}

func (g *Game) renderTimerHUD(dst *core.Screen, boardX int, m Meter) {
	mult := fmt.Sprintf("x%.2f", m.Multiplier)
	dst.DrawTextColor(boardX, 2, mult, TierColor(TierFor(m.Multiplier)))

	if g.session.State() == StateReady {
		dst.DrawAligned(boardX, boardW, 2, "READY", core.AlignCenter, core.ColorGray)
	}

	bonus := fmt.Sprintf("+%d", int((m.Multiplier-1)*g.cfg.Timer.BonusBase))
	dst.DrawAligned(boardX, boardW, 2, bonus, core.AlignRight, core.ColorDefault)

	pct := 0
	if m.Limit > 0 {
		pct = int(m.Remaining * 100 / m.Limit)
	}
	secs := fmt.Sprintf("%.1fs", m.Remaining.Seconds())
	g.renderGauge(dst, boardX, 4, "T ", pct, HealthColor(pct), secs)
}

// renderGauge draws "NAME [████░░░░] value" across the board width.
func (g *Game) renderGauge(dst *core.Screen, x, y int, name string, pct int, c core.Color, value string) {
	dst.DrawText(x, y, name)
	barX := x + len(name) + 1
	barW := boardW - len(name) - len(value) - 4
	filled := clampI(pct*barW/100, 0, barW)
	dst.DrawText(barX, y, "[")
	for i := range barW {
		if i < filled {
			dst.SetColor(barX+1+i, y, '█', c)
		} else {
			dst.SetColor(barX+1+i, y, '░', core.ColorGray)
		}
	}
	dst.DrawText(barX+barW+1, y, "]")
	dst.DrawAligned(x, boardW, y, value, core.AlignRight, core.ColorDefault)
}

// renderGrid draws the 4x4 grid borders.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	for y := range Size + 1 {
		for x := range Size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == Size:
				corner = '┐'
			case y == Size && x == 0:
				corner = '└'
			case y == Size && x == Size:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == Size:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == Size:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColor(px, py, corner, core.ColorGray)

			if x < Size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < Size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderTiles draws the board, interpolating sliding tiles while a turn
// animation runs.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int, now time.Time) {
	switch g.anim.Phase(now) {
	case PhaseSlide:
		t := g.anim.SlideProgress(now)
		for _, a := range g.anim.tiles {
			x := lerp(boardX+a.From.Col*cellWidth, boardX+a.To.Col*cellWidth, t)
			y := lerp(boardY+a.From.Row*cellHeight, boardY+a.To.Row*cellHeight, t)
			drawTile(dst, x+1, y+1, a.Level, false)
		}
	case PhasePop:
		board := g.session.Board()
		sp := g.anim.spawned
		for r := range Size {
			for c := range Size {
				tile := board[r][c]
				if tile.Empty() {
					continue
				}
				drawTile(dst, boardX+c*cellWidth+1, boardY+r*cellHeight+1, tile.Level, tile.ID == sp.ID)
			}
		}
	default:
		board := g.session.Board()
		for r := range Size {
			for c := range Size {
				if tile := board[r][c]; !tile.Empty() {
					drawTile(dst, boardX+c*cellWidth+1, boardY+r*cellHeight+1, tile.Level, false)
				}
			}
		}
	}
}

// drawTile draws one tile with its top-left interior corner at (x, y).
// A popping tile shows only its value.
func drawTile(dst *core.Screen, x, y, level int, popping bool) {
	c := TileColor(level)
	inner := cellWidth - 1

	dst.DrawAligned(x, inner, y, strconv.Itoa(1<<level), core.AlignCenter, c)

	if !popping {
		dst.DrawTextColor(x, y+1, strings.Repeat("▀", inner), c)
	}
}

// renderPopups draws "+points" labels over merge cells.
func (g *Game) renderPopups(dst *core.Screen, boardX, boardY int, now time.Time) {
	for _, p := range g.anim.ActivePopups(now) {
		x := boardX + p.At.Col*cellWidth + 1
		y := boardY + p.At.Row*cellHeight + 2
		dst.DrawAligned(x, cellWidth-1, y, "+"+strconv.Itoa(p.Points), core.AlignCenter, PopupColor(p.Points))
	}
}

// renderFooter draws the controls hint.
func (g *Game) renderFooter(dst *core.Screen, boardX, y int) {
	hint := "WASD move  R restart  Q quit"
	if g.session.State() == StateReady && g.variant == VariantRhythm {
		hint = "Move on the beat for bonus"
	}
	dst.DrawAligned(boardX, boardW, y+1, hint, core.AlignCenter, core.ColorGray)
}

// EndTitle returns the overlay title for a terminal state.
func EndTitle(s State) string {
	switch s {
	case StateBoardLocked:
		return "BOARD LOCKED"
	case StateHealthDepleted:
		return "OUT OF HEALTH"
	case StateTimedOut:
		return "TIME UP"
	default:
		return ""
	}
}

// renderOverlay draws the game over box on top of the board.
func (g *Game) renderOverlay(dst *core.Screen, boardX, boardY int) {
	end := g.session.LastEnd()
	if end == nil {
		return
	}

	box := core.NewRect(boardX+2, boardY+3, boardW-4, 7)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	lines := []struct {
		text  string
		color core.Color
	}{
		{EndTitle(end.Reason), core.ColorBrightRed},
		{fmt.Sprintf("Score %d", end.Score), core.ColorBrightWhite},
		{fmt.Sprintf("Best %d", end.Best), core.ColorWhite},
		{"R restart  Q quit", core.ColorGray},
	}
	if end.NewBest {
		lines[2] = struct {
			text  string
			color core.Color
		}{"NEW BEST!", core.ColorBrightYellow}
	}

	inner := box.Inset(1)
	for i, l := range lines {
		dst.DrawAligned(inner.X, inner.W, inner.Y+i, l.text, core.AlignCenter, l.color)
	}
}
