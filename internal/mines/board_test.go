package mines

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestBoard(t *testing.T, width, height, mineCount int, seed int64) *Board {
	t.Helper()
	b, err := NewBoard(width, height, mineCount, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewBoard(%d, %d, %d) failed: %v", width, height, mineCount, err)
	}
	return b
}

// plantMines builds a deterministic layout, bypassing random placement.
func plantMines(b *Board, coords ...[2]int) {
	for _, c := range coords {
		b.cells[b.index(c[0], c[1])].Mine = true
	}
	b.computeAdjacency()
	b.minesPlaced = true
}

func TestNewBoardValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name                     string
		width, height, mineCount int
	}{
		{"zero width", 0, 5, 3},
		{"zero height", 5, 0, 3},
		{"negative width", -1, 5, 3},
		{"zero mines", 5, 5, 0},
		{"negative mines", 5, 5, -2},
		{"mines fill board", 5, 5, 25},
		{"mines exceed board", 5, 5, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoard(tt.width, tt.height, tt.mineCount, rng)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewBoard(%d, %d, %d) = %v, expected ErrInvalidConfig",
					tt.width, tt.height, tt.mineCount, err)
			}
		})
	}

	if _, err := NewBoard(9, 9, 10, rng); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestMineCountAndAdjacencyAfterPlacement(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		b := newTestBoard(t, 16, 16, 40, seed)

		if b.MinesPlaced() {
			t.Fatal("mines should not be placed before the first reveal")
		}
		if _, err := b.Reveal(8, 8); err != nil {
			t.Fatalf("Reveal failed: %v", err)
		}
		if !b.MinesPlaced() {
			t.Fatal("first reveal should place mines")
		}

		mines := 0
		for _, cell := range b.cells {
			if cell.Mine {
				mines++
			}
		}
		if mines != b.MineCount() {
			t.Errorf("seed %d: placed %d mines, expected %d", seed, mines, b.MineCount())
		}

		// Every adjacency count must equal the true count of mine neighbors.
		for row := 0; row < b.Height(); row++ {
			for col := 0; col < b.Width(); col++ {
				want := 0
				for _, nb := range b.neighbors(row, col, nil) {
					if b.cells[b.index(nb[0], nb[1])].Mine {
						want++
					}
				}
				if got := b.cells[b.index(row, col)].Adjacent; got != want {
					t.Fatalf("seed %d: adjacency at (%d, %d) = %d, expected %d", seed, row, col, got, want)
				}
			}
		}
	}
}

func TestFirstRevealFairness(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		b := newTestBoard(t, 9, 9, 10, seed)

		out, err := b.Reveal(4, 4)
		if err != nil {
			t.Fatalf("Reveal failed: %v", err)
		}
		if out == Loss {
			t.Fatalf("seed %d: first reveal hit a mine", seed)
		}

		if b.cells[b.index(4, 4)].Mine {
			t.Errorf("seed %d: first revealed cell is a mine", seed)
		}
		for _, nb := range b.neighbors(4, 4, nil) {
			if b.cells[b.index(nb[0], nb[1])].Mine {
				t.Errorf("seed %d: neighbor (%d, %d) of the first reveal is a mine", seed, nb[0], nb[1])
			}
		}
	}
}

func TestFirstRevealShrinksExclusionOnTinyBoard(t *testing.T) {
	// 3x3 with a center reveal: the 9-cell exclusion zone covers the whole
	// board, so placement must fall back to excluding only the cell itself.
	b := newTestBoard(t, 3, 3, 1, 7)

	out, err := b.Reveal(1, 1)
	if err != nil {
		t.Fatalf("Reveal failed: %v", err)
	}
	if out == Loss {
		t.Fatal("first reveal must never be a mine")
	}
	if b.cells[b.index(1, 1)].Mine {
		t.Error("first revealed cell is a mine")
	}

	mines := 0
	for _, cell := range b.cells {
		if cell.Mine {
			mines++
		}
	}
	if mines != 1 {
		t.Errorf("placed %d mines, expected 1", mines)
	}
}

func TestFloodFillIsMaximalAndIdempotent(t *testing.T) {
	b := newTestBoard(t, 8, 8, 5, 0)
	plantMines(b, [2]int{7, 7}, [2]int{7, 6}, [2]int{6, 7}, [2]int{7, 5}, [2]int{5, 7})

	if _, err := b.Reveal(0, 0); err != nil {
		t.Fatalf("Reveal failed: %v", err)
	}

	// No revealed zero-adjacency cell may have a hidden non-flagged neighbor.
	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			cell := b.cells[b.index(row, col)]
			if cell.State != Revealed || cell.Adjacent != 0 {
				continue
			}
			for _, nb := range b.neighbors(row, col, nil) {
				if b.cells[b.index(nb[0], nb[1])].State == Hidden {
					t.Errorf("zero cell (%d, %d) left neighbor (%d, %d) hidden", row, col, nb[0], nb[1])
				}
			}
		}
	}

	// Re-running reveal over the cascade region changes nothing.
	before := b.RevealedCount()
	if _, err := b.Reveal(0, 0); err != nil {
		t.Fatalf("second Reveal failed: %v", err)
	}
	if b.RevealedCount() != before {
		t.Errorf("re-reveal changed revealed count: %d -> %d", before, b.RevealedCount())
	}
}

func TestCascadeWinOn3x3(t *testing.T) {
	// Mine at (2,2); revealing (0,0) cascades through the zero region and
	// uncovers all 8 safe cells in one action.
	b := newTestBoard(t, 3, 3, 1, 0)
	plantMines(b, [2]int{2, 2})

	out, err := b.Reveal(0, 0)
	if err != nil {
		t.Fatalf("Reveal failed: %v", err)
	}
	if out != Win {
		t.Errorf("outcome = %v, expected Win", out)
	}
	if b.RevealedCount() != 8 {
		t.Errorf("revealed %d cells, expected 8", b.RevealedCount())
	}
	if b.cells[b.index(2, 2)].State == Revealed {
		t.Error("the mine must stay unrevealed on a win")
	}
}

func TestRevealMineLoses(t *testing.T) {
	b := newTestBoard(t, 5, 5, 3, 0)
	plantMines(b, [2]int{1, 1}, [2]int{3, 3}, [2]int{4, 0})

	out, err := b.Reveal(1, 1)
	if err != nil {
		t.Fatalf("Reveal failed: %v", err)
	}
	if out != Loss {
		t.Errorf("outcome = %v, expected Loss", out)
	}

	// The tripped mine is revealed for display; the counter and the other
	// mines are untouched.
	if b.cells[b.index(1, 1)].State != Revealed {
		t.Error("tripped mine should be marked Revealed")
	}
	if b.RevealedCount() != 0 {
		t.Errorf("revealed count = %d, expected 0 (mines are never counted)", b.RevealedCount())
	}
	if b.cells[b.index(3, 3)].State != Hidden || b.cells[b.index(4, 0)].State != Hidden {
		t.Error("other mines must keep their state on loss")
	}
}

func TestFlagToggle(t *testing.T) {
	b := newTestBoard(t, 4, 4, 2, 0)

	toggled, err := b.ToggleFlag(1, 2)
	if err != nil || !toggled {
		t.Fatalf("ToggleFlag = (%v, %v), expected (true, nil)", toggled, err)
	}
	if b.FlagsPlaced() != 1 {
		t.Errorf("FlagsPlaced = %d, expected 1", b.FlagsPlaced())
	}
	if b.MinesRemaining() != 1 {
		t.Errorf("MinesRemaining = %d, expected 1", b.MinesRemaining())
	}

	// Double-toggle returns the cell to Hidden with the counter unchanged.
	if _, err := b.ToggleFlag(1, 2); err != nil {
		t.Fatalf("ToggleFlag failed: %v", err)
	}
	if cell, _ := b.CellAt(1, 2); cell.State != Hidden {
		t.Errorf("cell state after double toggle = %v, expected Hidden", cell.State)
	}
	if b.FlagsPlaced() != 0 {
		t.Errorf("FlagsPlaced after double toggle = %d, expected 0", b.FlagsPlaced())
	}
}

func TestFlaggedCellCannotBeRevealed(t *testing.T) {
	b := newTestBoard(t, 4, 4, 2, 0)
	plantMines(b, [2]int{0, 0}, [2]int{3, 3})

	if _, err := b.ToggleFlag(2, 2); err != nil {
		t.Fatalf("ToggleFlag failed: %v", err)
	}
	out, err := b.Reveal(2, 2)
	if err != nil {
		t.Fatalf("Reveal failed: %v", err)
	}
	if out != Continue {
		t.Errorf("outcome = %v, expected Continue", out)
	}
	if cell, _ := b.CellAt(2, 2); cell.State != Flagged {
		t.Error("revealing a flagged cell must be a no-op")
	}
}

func TestFlagRevealedCellIsNoOp(t *testing.T) {
	b := newTestBoard(t, 4, 4, 2, 0)
	plantMines(b, [2]int{0, 0}, [2]int{0, 1})

	if _, err := b.Reveal(3, 3); err != nil {
		t.Fatalf("Reveal failed: %v", err)
	}
	toggled, err := b.ToggleFlag(3, 3)
	if err != nil {
		t.Fatalf("ToggleFlag failed: %v", err)
	}
	if toggled {
		t.Error("flagging a revealed cell must be a no-op")
	}
}

func TestMinesRemainingGoesNegative(t *testing.T) {
	b := newTestBoard(t, 4, 4, 1, 0)
	b.ToggleFlag(0, 0)
	b.ToggleFlag(0, 1)
	b.ToggleFlag(0, 2)

	if got := b.MinesRemaining(); got != -2 {
		t.Errorf("MinesRemaining = %d, expected -2 (unclamped)", got)
	}
}

func TestChordReveal(t *testing.T) {
	// Layout around (1,1): two mines among its neighbors.
	//   * . .
	//   . 2 .
	//   * . .
	setup := func(t *testing.T) *Board {
		b := newTestBoard(t, 3, 3, 2, 0)
		plantMines(b, [2]int{0, 0}, [2]int{2, 0})
		if _, err := b.Reveal(1, 1); err != nil {
			t.Fatalf("Reveal failed: %v", err)
		}
		if cell, _ := b.CellAt(1, 1); cell.Adjacent != 2 {
			t.Fatalf("setup broken: adjacency at (1,1) = %d, expected 2", cell.Adjacent)
		}
		return b
	}

	t.Run("fires when flags match the number", func(t *testing.T) {
		b := setup(t)
		b.ToggleFlag(0, 0)
		b.ToggleFlag(2, 0)

		out, err := b.ChordReveal(1, 1)
		if err != nil {
			t.Fatalf("ChordReveal failed: %v", err)
		}
		if out != Win {
			t.Errorf("outcome = %v, expected Win (all safe cells revealed)", out)
		}
		// Flagged cells stay flagged and untouched.
		for _, pos := range [][2]int{{0, 0}, {2, 0}} {
			if cell, _ := b.CellAt(pos[0], pos[1]); cell.State != Flagged {
				t.Errorf("flagged mine at (%d, %d) was disturbed: %v", pos[0], pos[1], cell.State)
			}
		}
	})

	t.Run("under-flagged is a no-op", func(t *testing.T) {
		b := setup(t)
		b.ToggleFlag(0, 0)

		out, err := b.ChordReveal(1, 1)
		if err != nil {
			t.Fatalf("ChordReveal failed: %v", err)
		}
		if out != Continue || b.RevealedCount() != 1 {
			t.Errorf("under-flagged chord changed the board: outcome=%v revealed=%d", out, b.RevealedCount())
		}
	})

	t.Run("over-flagged is a no-op", func(t *testing.T) {
		b := setup(t)
		b.ToggleFlag(0, 0)
		b.ToggleFlag(2, 0)
		b.ToggleFlag(0, 1)

		out, err := b.ChordReveal(1, 1)
		if err != nil {
			t.Fatalf("ChordReveal failed: %v", err)
		}
		if out != Continue {
			t.Errorf("over-flagged chord fired: %v", out)
		}
	})

	t.Run("mis-flag trips the unflagged mine", func(t *testing.T) {
		b := setup(t)
		// One correct flag, one wrong: the unflagged mine at (2,0) blows.
		b.ToggleFlag(0, 0)
		b.ToggleFlag(2, 1)

		out, err := b.ChordReveal(1, 1)
		if err != nil {
			t.Fatalf("ChordReveal failed: %v", err)
		}
		if out != Loss {
			t.Errorf("outcome = %v, expected Loss", out)
		}
	})

	t.Run("hidden cell is a no-op", func(t *testing.T) {
		b := setup(t)
		out, err := b.ChordReveal(2, 2)
		if err != nil {
			t.Fatalf("ChordReveal failed: %v", err)
		}
		if out != Continue {
			t.Errorf("chord on hidden cell fired: %v", out)
		}
	})
}

func TestChordRevealMatchesSpecExample(t *testing.T) {
	// A numbered cell with adjacency 2, exactly 2 flagged neighbors among 4
	// hidden ones: the other 2 become revealed, the flags stay put.
	b := newTestBoard(t, 3, 4, 3, 0)
	plantMines(b, [2]int{0, 0}, [2]int{0, 1}, [2]int{3, 0})
	if _, err := b.Reveal(1, 1); err != nil {
		t.Fatalf("Reveal failed: %v", err)
	}
	if cell, _ := b.CellAt(1, 1); cell.Adjacent != 2 {
		t.Fatalf("setup broken: adjacency = %d", cell.Adjacent)
	}

	b.ToggleFlag(0, 0)
	b.ToggleFlag(0, 1)

	out, err := b.ChordReveal(1, 1)
	if err != nil {
		t.Fatalf("ChordReveal failed: %v", err)
	}
	if out == Loss {
		t.Fatal("correct flags must not lose")
	}

	for _, pos := range [][2]int{{0, 0}, {0, 1}} {
		if cell, _ := b.CellAt(pos[0], pos[1]); cell.State != Flagged {
			t.Errorf("flag at (%d, %d) disturbed", pos[0], pos[1])
		}
	}
	for _, pos := range [][2]int{{0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}} {
		if cell, _ := b.CellAt(pos[0], pos[1]); cell.State != Revealed {
			t.Errorf("neighbor (%d, %d) not revealed after chord", pos[0], pos[1])
		}
	}
}

func TestOutOfBoundsOperations(t *testing.T) {
	b := newTestBoard(t, 4, 4, 2, 0)

	for _, pos := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}} {
		if _, err := b.Reveal(pos[0], pos[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Reveal(%d, %d) = %v, expected ErrOutOfBounds", pos[0], pos[1], err)
		}
		if _, err := b.ToggleFlag(pos[0], pos[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("ToggleFlag(%d, %d) = %v, expected ErrOutOfBounds", pos[0], pos[1], err)
		}
		if _, err := b.ChordReveal(pos[0], pos[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("ChordReveal(%d, %d) = %v, expected ErrOutOfBounds", pos[0], pos[1], err)
		}
		if _, err := b.CellAt(pos[0], pos[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("CellAt(%d, %d) = %v, expected ErrOutOfBounds", pos[0], pos[1], err)
		}
	}
}

func TestPlacementDeterminism(t *testing.T) {
	// Same seed, same first reveal: identical layouts.
	b1 := newTestBoard(t, 12, 12, 20, 42)
	b2 := newTestBoard(t, 12, 12, 20, 42)

	b1.Reveal(6, 6)
	b2.Reveal(6, 6)

	for i := range b1.cells {
		if b1.cells[i].Mine != b2.cells[i].Mine {
			t.Fatal("same seed produced different mine layouts")
		}
	}
}
