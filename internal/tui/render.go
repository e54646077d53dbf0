package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mineterm/mineterm/internal/config"
	"github.com/mineterm/mineterm/internal/core"
	"github.com/mineterm/mineterm/internal/mines"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorCursor:        lipgloss.NewStyle().Reverse(true),
}

// colorByName resolves the theme's color names.
var colorByName = map[string]core.Color{
	"default":        core.ColorDefault,
	"red":            core.ColorRed,
	"green":          core.ColorGreen,
	"yellow":         core.ColorYellow,
	"blue":           core.ColorBlue,
	"magenta":        core.ColorMagenta,
	"cyan":           core.ColorCyan,
	"white":          core.ColorWhite,
	"bright_red":     core.ColorBrightRed,
	"bright_green":   core.ColorBrightGreen,
	"bright_yellow":  core.ColorBrightYellow,
	"bright_blue":    core.ColorBrightBlue,
	"bright_magenta": core.ColorBrightMagenta,
	"bright_cyan":    core.ColorBrightCyan,
	"bright_white":   core.ColorBrightWhite,
	"gray":           core.ColorGray,
}

// numberColors are the classic Minesweeper digit colors, indexed 1..8.
var numberColors = [9]core.Color{
	core.ColorDefault,
	core.ColorBrightBlue,
	core.ColorGreen,
	core.ColorBrightRed,
	core.ColorBlue,
	core.ColorRed,
	core.ColorCyan,
	core.ColorWhite,
	core.ColorGray,
}

func themeColor(name string, fallback core.Color) core.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return fallback
}

// DrawGame renders the HUD and the board grid into the screen buffer from
// the game's read-only accessors. The engine is never mutated here.
func DrawGame(dst *core.Screen, g *mines.Game, th config.Theme) {
	dst.Clear()

	drawHUD(dst, g)

	board := g.Board()
	gridW := board.Width()*2 - 1
	gridH := board.Height()
	if dst.Width() < gridW || dst.Height() < gridH+3 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	offsetX := (dst.Width() - gridW) / 2
	offsetY := 2 + core.Max(0, (dst.Height()-3-gridH)/2)

	curRow, curCol := g.Cursor()
	for row := 0; row < board.Height(); row++ {
		for col := 0; col < board.Width(); col++ {
			glyph, color := cellGlyph(g, row, col, th)
			if row == curRow && col == curCol {
				color = core.ColorCursor
			}
			dst.SetCell(offsetX+col*2, offsetY+row, glyph, color)
		}
	}

	help := "wasd/arrows: move  space: flag  enter: reveal  q: quit"
	if g.Finished() {
		help = "enter: new game  q: quit"
	}
	dst.DrawTextColored((dst.Width()-len(help))/2, dst.Height()-1, help, core.ColorGray)
}

// drawHUD draws the status bar: mines remaining, flags, elapsed, lifecycle.
func drawHUD(dst *core.Screen, g *mines.Game) {
	board := g.Board()
	hud := fmt.Sprintf(" Mines: %d  Flags: %d  Time: %s",
		g.MinesRemaining(), board.FlagsPlaced(), formatElapsed(g.Elapsed()))

	switch g.Status() {
	case mines.Won:
		hud += "  cleared!"
	case mines.Lost:
		hud += "  boom!"
	}

	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// cellGlyph picks the rune and color for one board cell. After a loss the
// remaining mines and any mis-flags are exposed for display only; the
// board state itself is untouched.
func cellGlyph(g *mines.Game, row, col int, th config.Theme) (rune, core.Color) {
	cell, err := g.Board().CellAt(row, col)
	if err != nil {
		return ' ', core.ColorDefault
	}

	if g.Status() == mines.Lost {
		switch {
		case cell.Mine && cell.State == mines.Revealed:
			// The tripped mine.
			return config.Rune(th.Glyphs.Mine, '*'), core.ColorBrightRed
		case cell.Mine && cell.State != mines.Flagged:
			return config.Rune(th.Glyphs.Mine, '*'), themeColor(th.Colors.Mine, core.ColorBrightRed)
		case !cell.Mine && cell.State == mines.Flagged:
			return config.Rune(th.Glyphs.MisFlag, 'X'), core.ColorBrightRed
		}
	}

	switch cell.State {
	case mines.Flagged:
		return config.Rune(th.Glyphs.Flag, 'F'), themeColor(th.Colors.Flag, core.ColorBrightYellow)
	case mines.Revealed:
		if cell.Adjacent == 0 {
			return config.Rune(th.Glyphs.Empty, ' '), core.ColorDefault
		}
		return rune('0' + cell.Adjacent), numberColors[cell.Adjacent]
	default:
		return config.Rune(th.Glyphs.Hidden, '-'), themeColor(th.Colors.Hidden, core.ColorGray)
	}
}

// formatElapsed renders a duration as m:ss for the HUD.
func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape
// sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			// Collect consecutive cells with the same color
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
