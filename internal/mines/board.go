package mines

import (
	"errors"
	"fmt"
	"math/rand"
)

// Sentinel errors returned by board operations. Operations never panic on
// bad input; malformed player actions degrade to no-ops instead.
var (
	ErrInvalidConfig     = errors.New("mines: invalid board configuration")
	ErrOutOfBounds       = errors.New("mines: coordinates out of bounds")
	ErrInsufficientSpace = errors.New("mines: not enough free cells for mines")
)

// Outcome is the result of a reveal or chord-reveal operation.
type Outcome int

const (
	// Continue means the game goes on: nothing decisive happened.
	Continue Outcome = iota
	// Win means the last safe cell was revealed.
	Win
	// Loss means a mine was revealed.
	Loss
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "unknown"
	}
}

// Board owns a row-major grid of cells and all Minesweeper rules.
// Mines are placed lazily on the first reveal so the opening move is never
// a mine. Flag and reveal counters are maintained incrementally for O(1)
// HUD queries.
type Board struct {
	width     int
	height    int
	mineCount int

	cells       []Cell
	minesPlaced bool

	flagsPlaced   int
	revealedCount int

	rng *rand.Rand
}

// NewBoard creates a fully hidden board with no mines placed yet.
// Width and height must be positive and mineCount must satisfy
// 0 < mineCount < width*height, otherwise ErrInvalidConfig is returned.
func NewBoard(width, height, mineCount int, rng *rand.Rand) (*Board, error) {
	switch {
	case width <= 0 || height <= 0:
		return nil, fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidConfig, width, height)
	case mineCount < 1:
		return nil, fmt.Errorf("%w: need at least one mine, got %d", ErrInvalidConfig, mineCount)
	case mineCount >= width*height:
		return nil, fmt.Errorf("%w: %d mines do not fit a %dx%d board", ErrInvalidConfig, mineCount, width, height)
	}

	return &Board{
		width:     width,
		height:    height,
		mineCount: mineCount,
		cells:     make([]Cell, width*height),
		rng:       rng,
	}, nil
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// MineCount returns the configured number of mines.
func (b *Board) MineCount() int { return b.mineCount }

// MinesPlaced reports whether the lazy mine placement has happened yet.
func (b *Board) MinesPlaced() bool { return b.minesPlaced }

// FlagsPlaced returns the number of currently flagged cells.
func (b *Board) FlagsPlaced() int { return b.flagsPlaced }

// RevealedCount returns the number of revealed non-mine cells.
func (b *Board) RevealedCount() int { return b.revealedCount }

// MinesRemaining returns mineCount minus flags placed. It can go negative
// when the player over-flags; the value is exposed unclamped so the HUD
// does not hide player error.
func (b *Board) MinesRemaining() int {
	return b.mineCount - b.flagsPlaced
}

// InBounds reports whether (row, col) addresses a cell on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// CellAt returns a copy of the cell at (row, col).
func (b *Board) CellAt(row, col int) (Cell, error) {
	if !b.InBounds(row, col) {
		return Cell{}, fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfBounds, row, col, b.width, b.height)
	}
	return b.cells[b.index(row, col)], nil
}

func (b *Board) index(row, col int) int {
	return row*b.width + col
}

// neighbors appends the in-bounds neighbor coordinates of (row, col) to dst
// and returns it. dst lets flood fill reuse one backing array.
func (b *Board) neighbors(row, col int, dst [][2]int) [][2]int {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := row+dr, col+dc
			if b.InBounds(nr, nc) {
				dst = append(dst, [2]int{nr, nc})
			}
		}
	}
	return dst
}

// placeMines selects mineCount distinct cells uniformly at random from all
// cells outside the exclusion zone around the first-revealed cell, then
// computes every cell's adjacency count. Sampling is shuffle-based (never
// rejection-based) so it terminates even when mineCount approaches the
// available space. When the 9-cell exclusion zone does not fit the board,
// it shrinks to the first-revealed cell alone, which still preserves the
// opening-move guarantee.
func (b *Board) placeMines(firstRow, firstCol int) error {
	exclude := make(map[int]bool, 9)
	exclude[b.index(firstRow, firstCol)] = true
	for _, nb := range b.neighbors(firstRow, firstCol, nil) {
		exclude[b.index(nb[0], nb[1])] = true
	}

	total := b.width * b.height
	if b.mineCount > total-len(exclude) {
		// Not enough room with the full neighborhood excluded.
		exclude = map[int]bool{b.index(firstRow, firstCol): true}
		if b.mineCount > total-1 {
			return fmt.Errorf("%w: %d mines, %d cells", ErrInsufficientSpace, b.mineCount, total)
		}
	}

	candidates := make([]int, 0, total-len(exclude))
	for i := 0; i < total; i++ {
		if !exclude[i] {
			candidates = append(candidates, i)
		}
	}

	for _, p := range b.rng.Perm(len(candidates))[:b.mineCount] {
		b.cells[candidates[p]].Mine = true
	}

	b.computeAdjacency()
	b.minesPlaced = true
	return nil
}

// computeAdjacency recounts every cell's mine neighbors.
func (b *Board) computeAdjacency() {
	var nbs [][2]int
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			count := 0
			nbs = b.neighbors(row, col, nbs[:0])
			for _, nb := range nbs {
				if b.cells[b.index(nb[0], nb[1])].Mine {
					count++
				}
			}
			b.cells[b.index(row, col)].Adjacent = count
		}
	}
}

// Reveal uncovers the cell at (row, col). Flagged and already revealed
// cells are no-ops. The first reveal triggers mine placement excluding the
// cell and its neighbors. Revealing a mine returns Loss; revealing the last
// safe cell returns Win; zero-adjacency cells cascade to their neighbors.
func (b *Board) Reveal(row, col int) (Outcome, error) {
	if !b.InBounds(row, col) {
		return Continue, fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfBounds, row, col, b.width, b.height)
	}

	if b.cells[b.index(row, col)].State != Hidden {
		return Continue, nil
	}

	if !b.minesPlaced {
		if err := b.placeMines(row, col); err != nil {
			return Continue, err
		}
	}

	if b.cells[b.index(row, col)].Mine {
		// Only the tripped mine flips to Revealed. Other mines keep their
		// state; the caller exposes them for display after a loss without
		// mutating the board.
		b.cells[b.index(row, col)].State = Revealed
		return Loss, nil
	}

	b.floodReveal(row, col)

	if b.won() {
		return Win, nil
	}
	return Continue, nil
}

// floodReveal uncovers (row, col) and, for zero-adjacency cells, cascades
// to hidden non-flagged neighbors. Iterative with an explicit work list so
// large boards cannot grow the call stack; the Revealed state doubles as
// the visited set. Mine cells never enter the frontier because a cell with
// zero adjacency has no mine neighbors by definition.
func (b *Board) floodReveal(row, col int) {
	stack := [][2]int{{row, col}}
	var nbs [][2]int

	for len(stack) > 0 {
		pos := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cell := &b.cells[b.index(pos[0], pos[1])]
		if cell.State != Hidden {
			continue
		}
		cell.State = Revealed
		b.revealedCount++

		if cell.Adjacent != 0 {
			continue
		}
		nbs = b.neighbors(pos[0], pos[1], nbs[:0])
		for _, nb := range nbs {
			if b.cells[b.index(nb[0], nb[1])].State == Hidden {
				stack = append(stack, nb)
			}
		}
	}
}

// ToggleFlag flips the cell at (row, col) between Hidden and Flagged and
// adjusts the flag counter. Revealed cells are a no-op; the bool reports
// whether anything changed.
func (b *Board) ToggleFlag(row, col int) (bool, error) {
	if !b.InBounds(row, col) {
		return false, fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfBounds, row, col, b.width, b.height)
	}

	cell := &b.cells[b.index(row, col)]
	switch cell.State {
	case Hidden:
		cell.State = Flagged
		b.flagsPlaced++
		return true, nil
	case Flagged:
		cell.State = Hidden
		b.flagsPlaced--
		return true, nil
	default:
		return false, nil
	}
}

// ChordReveal handles tripping an already revealed numbered cell: when the
// number of flagged neighbors equals the cell's adjacency count, every
// hidden non-flagged neighbor is revealed through the standard reveal path,
// so cascades apply and a mis-flag costs the game. Any other situation is a
// no-op. Flags are a hint, not a correctness guarantee.
func (b *Board) ChordReveal(row, col int) (Outcome, error) {
	if !b.InBounds(row, col) {
		return Continue, fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfBounds, row, col, b.width, b.height)
	}

	cell := b.cells[b.index(row, col)]
	if cell.State != Revealed || cell.Adjacent == 0 {
		return Continue, nil
	}

	nbs := b.neighbors(row, col, nil)
	flagged := 0
	for _, nb := range nbs {
		if b.cells[b.index(nb[0], nb[1])].State == Flagged {
			flagged++
		}
	}
	if flagged != cell.Adjacent {
		return Continue, nil
	}

	for _, nb := range nbs {
		if b.cells[b.index(nb[0], nb[1])].State != Hidden {
			continue
		}
		out, err := b.Reveal(nb[0], nb[1])
		if err != nil {
			return Continue, err
		}
		if out != Continue {
			return out, nil
		}
	}
	return Continue, nil
}

// won reports whether every non-mine cell has been revealed.
func (b *Board) won() bool {
	return b.revealedCount == b.width*b.height-b.mineCount
}
