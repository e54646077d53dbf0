package mines

import "strings"

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Status        Status
	Width         int
	Height        int
	MineCount     int
	MinesPlaced   bool
	FlagsPlaced   int
	RevealedCount int
	CursorRow     int
	CursorCol     int
	ElapsedMs     int64
	// Mines encodes the mine layout row by row: '*' for a mine, '.' for a
	// safe cell. States encodes visibility the same way: 'H', 'R', 'F'.
	Mines  string
	States string
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	b := g.board

	var mines, states strings.Builder
	for row := 0; row < b.Height(); row++ {
		if row > 0 {
			mines.WriteByte('\n')
			states.WriteByte('\n')
		}
		for col := 0; col < b.Width(); col++ {
			cell := b.cells[b.index(row, col)]
			if cell.Mine {
				mines.WriteByte('*')
			} else {
				mines.WriteByte('.')
			}
			switch cell.State {
			case Revealed:
				states.WriteByte('R')
			case Flagged:
				states.WriteByte('F')
			default:
				states.WriteByte('H')
			}
		}
	}

	return Snapshot{
		Status:        g.status,
		Width:         b.Width(),
		Height:        b.Height(),
		MineCount:     b.MineCount(),
		MinesPlaced:   b.MinesPlaced(),
		FlagsPlaced:   b.FlagsPlaced(),
		RevealedCount: b.RevealedCount(),
		CursorRow:     g.cursorRow,
		CursorCol:     g.cursorCol,
		ElapsedMs:     g.elapsed.Milliseconds(),
		Mines:         mines.String(),
		States:        states.String(),
	}
}
