// Package mines implements the Minesweeper board engine: the grid data
// model, lazy mine placement, cascading reveal, flag bookkeeping, chord
// reveal and win/loss detection. It contains pure logic with no external
// dependencies; the platform layer handles input mapping and rendering.
package mines

// CellState is the visibility state of a single cell.
// A flagged cell keeps hidden semantics for reveal purposes: it cannot be
// revealed without unflagging first, except through chord-reveal rules.
type CellState uint8

const (
	Hidden CellState = iota
	Revealed
	Flagged
)

// String returns a human-readable name for the state.
func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "unknown"
	}
}

// Cell is a single board square. Pure data, no behavior.
// Mine is set once during board generation and immutable thereafter;
// Adjacent is the number of mines among the up-to-8 neighbors, computed
// once after mine placement.
type Cell struct {
	Mine     bool
	Adjacent int
	State    CellState
}
