package core

// Color represents a foreground color for a screen cell.
// Mapped to ANSI 256-color codes by the render layer.
type Color uint8

// Predefined colors for board elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorGray
	// ColorCursor marks the cell under the player's cursor.
	// Rendered with reversed video rather than a plain foreground.
	ColorCursor
)
