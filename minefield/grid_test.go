package minefield

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

func mustParse(t *testing.T, layout string) *Grid {
	t.Helper()
	grid, err := Parse(layout)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return grid
}

func countUnrevealed(grid *Grid) int {
	n := 0
	for _, point := range grid.Points() {
		if cell, _ := grid.CellAt(point.X, point.Y); !cell.IsRevealed() {
			n++
		}
	}
	return n
}

func countMines(grid *Grid) int {
	n := 0
	for _, point := range grid.Points() {
		if cell, _ := grid.CellAt(point.X, point.Y); cell.IsMine() {
			n++
		}
	}
	return n
}

func TestNewPlacesExactMineCount(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		grid, err := New(10, 8, 30, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if got := countMines(grid); got != 30 {
			t.Fatalf("seed %d: placed %d mines, want 30", seed, got)
		}
		if grid.NumUnrevealed() != 80 {
			t.Fatalf("seed %d: NumUnrevealed = %d, want 80", seed, grid.NumUnrevealed())
		}
		if grid.State() != FirstMove {
			t.Fatalf("seed %d: state = %v, want first-move", seed, grid.State())
		}
	}
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
		mines         int
		wantErr       error
		wantMines     int
	}{
		{"zero width", 0, 5, 1, ErrInvalidDimensions, 0},
		{"negative height", 5, -1, 1, ErrInvalidDimensions, 0},
		{"negative mines", 5, 5, -1, ErrInvalidMineCount, 0},
		{"capped mines", 3, 3, 20, nil, 8},
		{"single cell", 1, 1, 5, nil, 0},
		{"defaults", 32, 16, 64, nil, 64},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grid, err := New(tc.width, tc.height, tc.mines, rand.New(rand.NewSource(7)))
			if tc.wantErr != nil {
				if errors.Cause(err) != tc.wantErr {
					t.Fatalf("New(%d, %d, %d) err = %v, want %v", tc.width, tc.height, tc.mines, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%d, %d, %d) failed: %v", tc.width, tc.height, tc.mines, err)
			}
			if grid.NumMines() != tc.wantMines {
				t.Fatalf("NumMines = %d, want %d", grid.NumMines(), tc.wantMines)
			}
			if got := countMines(grid); got != tc.wantMines {
				t.Fatalf("placed %d mines, want %d", got, tc.wantMines)
			}
		})
	}
}

func TestAdjacencyCountEdgesAndCorners(t *testing.T) {
	grid := mustParse(t, `
		OOOO
		OO.O
		OOOO
	`)

	cases := []struct {
		name string
		x, y int
		want int
	}{
		{"top-left corner", 0, 0, 3},
		{"top-right corner", 3, 0, 2},
		{"bottom-left corner", 0, 2, 3},
		{"bottom-right corner", 3, 2, 2},
		{"top edge", 1, 0, 4},
		{"left edge", 0, 1, 5},
		{"right edge", 3, 1, 4},
		{"bottom edge", 1, 2, 4},
		{"interior safe cell", 2, 1, 8},
		{"interior mine", 1, 1, 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := grid.AdjacencyCount(tc.x, tc.y); got != tc.want {
				t.Errorf("AdjacencyCount(%d, %d) = %d, want %d", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestAdjacencyCountMatchesNeighbourMines(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		grid, err := New(7, 5, 12, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		for _, point := range grid.Points() {
			want := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if cell, ok := grid.CellAt(point.X+dx, point.Y+dy); ok && cell.IsMine() {
						want++
					}
				}
			}

			got := grid.AdjacencyCount(point.X, point.Y)
			if got < 0 || got > 8 || got != want {
				t.Fatalf("seed %d: AdjacencyCount%v = %d, want %d", seed, point, got, want)
			}
		}
	}
}

func TestRevealSingleCellWinsImmediately(t *testing.T) {
	grid, err := New(1, 1, 0, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	grid.Reveal(0, 0)
	if !grid.CheckWin() {
		t.Fatalf("CheckWin = false after revealing the only cell")
	}
	if grid.State() != Won {
		t.Fatalf("state = %v, want won", grid.State())
	}
	if grid.NumUnrevealed() != 0 {
		t.Fatalf("NumUnrevealed = %d, want 0", grid.NumUnrevealed())
	}
}

func TestRevealNumberedCellDoesNotFlood(t *testing.T) {
	grid := mustParse(t, `
		...
		.O.
		...
	`)

	if got := grid.AdjacencyCount(0, 0); got != 1 {
		t.Fatalf("AdjacencyCount(0, 0) = %d, want 1", got)
	}

	grid.Reveal(0, 0)

	if cell, _ := grid.CellAt(0, 0); !cell.IsRevealed() {
		t.Fatalf("cell (0, 0) not revealed")
	}
	if grid.NumUnrevealed() != 8 {
		t.Fatalf("NumUnrevealed = %d, want 8", grid.NumUnrevealed())
	}
	if grid.CheckWin() {
		t.Fatalf("CheckWin = true with safe cells left")
	}
	if grid.State() != InGame {
		t.Fatalf("state = %v, want in-game", grid.State())
	}
}

func TestRevealFloodsZeroRegionAndBorder(t *testing.T) {
	grid := mustParse(t, `
		..O..
		..O..
		..O..
	`)

	grid.Reveal(0, 0)

	want := ".2O##\n.3O##\n.2O##"
	if got := grid.String(); got != want {
		t.Fatalf("grid after flood:\n%s\nwant:\n%s", got, want)
	}
	if grid.NumUnrevealed() != 9 {
		t.Fatalf("NumUnrevealed = %d, want 9", grid.NumUnrevealed())
	}
	if grid.State() != InGame {
		t.Fatalf("state = %v, want in-game", grid.State())
	}
}

func TestRevealFloodStopsAtFlags(t *testing.T) {
	grid := mustParse(t, `
		.....
		.....
		....O
	`)

	grid.Flag(1, 0)
	grid.Reveal(0, 2)

	if cell, _ := grid.CellAt(1, 0); cell.IsRevealed() || !cell.IsFlagged() {
		t.Fatalf("flagged cell (1, 0) was revealed by the flood")
	}
	if got, want := grid.NumUnrevealed(), countUnrevealed(grid); got != want {
		t.Fatalf("NumUnrevealed = %d, counted %d", got, want)
	}
	// Everything except the flag and the mine is open
	if grid.NumUnrevealed() != 2 {
		t.Fatalf("NumUnrevealed = %d, want 2", grid.NumUnrevealed())
	}
}

func TestFirstMoveIsNeverAMine(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				grid, err := New(5, 5, 24, rand.New(rand.NewSource(seed)))
				if err != nil {
					t.Fatalf("New failed: %v", err)
				}

				grid.Reveal(x, y)

				cell, _ := grid.CellAt(x, y)
				if cell.IsMine() {
					t.Fatalf("seed %d: first reveal at (%d, %d) hit a mine", seed, x, y)
				}
				if grid.State() != InGame {
					t.Fatalf("seed %d: state = %v, want in-game", seed, grid.State())
				}
				if got := countMines(grid); got != 24 {
					t.Fatalf("seed %d: regenerated grid has %d mines, want 24", seed, got)
				}
				if !grid.CheckWin() {
					t.Fatalf("seed %d: revealing the only safe cell did not win", seed)
				}
			}
		}
	}
}

func TestFirstMoveAtMaximumMineCount(t *testing.T) {
	const size = 200

	grid, err := New(size, size, size*size, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if grid.NumMines() != size*size-1 {
		t.Fatalf("NumMines = %d, want capped to %d", grid.NumMines(), size*size-1)
	}

	// Find a mine so the first move is sure to need a new placement
	var target Point
	for _, point := range grid.Points() {
		if cell, _ := grid.CellAt(point.X, point.Y); cell.IsMine() {
			target = point
			break
		}
	}

	grid.Reveal(target.X, target.Y)

	if cell, _ := grid.CellAt(target.X, target.Y); cell.IsMine() || !cell.IsRevealed() {
		t.Fatalf("first reveal at %v: mine=%v revealed=%v, want a revealed safe cell", target, cell.IsMine(), cell.IsRevealed())
	}
	if got := countMines(grid); got != size*size-1 {
		t.Fatalf("regenerated grid has %d mines, want %d", got, size*size-1)
	}
	if !grid.CheckWin() {
		t.Fatalf("revealing the only safe cell did not win")
	}
}

func TestFirstMoveRegenerationIsReproducible(t *testing.T) {
	play := func() string {
		grid, err := New(8, 8, 40, rand.New(rand.NewSource(7)))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		for _, point := range grid.Points() {
			if cell, _ := grid.CellAt(point.X, point.Y); cell.IsMine() {
				grid.Reveal(point.X, point.Y)
				break
			}
		}
		return grid.String()
	}

	if first, second := play(), play(); first != second {
		t.Fatalf("same seed regenerated different grids:\n%s\n\n%s", first, second)
	}
}

func TestRevealMineLoses(t *testing.T) {
	grid := mustParse(t, `
		...
		.O.
		...
	`)

	grid.Reveal(0, 0)
	grid.Reveal(1, 1)

	if grid.State() != Lost {
		t.Fatalf("state = %v, want lost", grid.State())
	}
	if point, ok := grid.Detonated(); !ok || point != (Point{1, 1}) {
		t.Fatalf("Detonated() = %v, %v, want (1, 1), true", point, ok)
	}
	if grid.NumUnrevealed() != 0 || countUnrevealed(grid) != 0 {
		t.Fatalf("not every cell revealed after losing")
	}
	if grid.CheckWin() {
		t.Fatalf("CheckWin = true after losing")
	}
}

func TestRevealAndFlagAreIdempotent(t *testing.T) {
	grid := mustParse(t, `
		...
		.O.
		...
	`)

	grid.Reveal(0, 0)
	before, unrevealed := grid.String(), grid.NumUnrevealed()

	grid.Reveal(0, 0)
	grid.Flag(0, 0)

	if grid.String() != before || grid.NumUnrevealed() != unrevealed {
		t.Fatalf("repeat reveal/flag changed the grid:\n%s\nwas:\n%s", grid.String(), before)
	}
	if grid.NumFlags() != 0 {
		t.Fatalf("NumFlags = %d, want 0", grid.NumFlags())
	}
}

func TestFlagTogglesWithoutTouchingUnrevealed(t *testing.T) {
	grid := mustParse(t, `
		...
		.O.
		...
	`)

	grid.Flag(1, 1)
	if cell, _ := grid.CellAt(1, 1); !cell.IsFlagged() {
		t.Fatalf("cell (1, 1) not flagged")
	}
	if grid.NumFlags() != 1 || grid.NumUnrevealed() != 9 {
		t.Fatalf("NumFlags = %d, NumUnrevealed = %d, want 1, 9", grid.NumFlags(), grid.NumUnrevealed())
	}

	grid.Reveal(1, 1)
	if cell, _ := grid.CellAt(1, 1); cell.IsRevealed() {
		t.Fatalf("flagged cell was revealed")
	}

	grid.Flag(1, 1)
	if cell, _ := grid.CellAt(1, 1); cell.IsFlagged() {
		t.Fatalf("cell (1, 1) still flagged after second toggle")
	}
	if grid.NumFlags() != 0 {
		t.Fatalf("NumFlags = %d, want 0", grid.NumFlags())
	}

	// Out of bounds is ignored
	grid.Flag(-1, 0)
	grid.Flag(3, 3)
	grid.Reveal(5, -2)
	if grid.NumFlags() != 0 || grid.NumUnrevealed() != 9 || grid.State() != FirstMove {
		t.Fatalf("out-of-bounds calls changed the grid")
	}
}

func TestTerminalStateFreezesGrid(t *testing.T) {
	won := mustParse(t, `
		.O
		..
	`)
	won.Flag(1, 0)
	won.Reveal(0, 0)
	won.Reveal(0, 1)
	won.Reveal(1, 1)
	if !won.CheckWin() {
		t.Fatalf("CheckWin = false with every safe cell revealed")
	}

	lost := mustParse(t, `
		.O
		..
	`)
	lost.Reveal(0, 0)
	lost.Reveal(1, 0)
	if lost.State() != Lost {
		t.Fatalf("state = %v, want lost", lost.State())
	}

	for _, grid := range []*Grid{won, lost} {
		state, before, flags := grid.State(), grid.String(), grid.NumFlags()

		for _, point := range grid.Points() {
			grid.Reveal(point.X, point.Y)
			grid.Flag(point.X, point.Y)
		}
		grid.CheckWin()

		if grid.State() != state || grid.String() != before || grid.NumFlags() != flags {
			t.Fatalf("%v grid changed after terminal state:\n%s\nwas:\n%s", state, grid.String(), before)
		}
	}
}

func TestUnrevealedInvariantUnderRandomPlay(t *testing.T) {
	rnd := rand.New(rand.NewSource(99))

	for game := 0; game < 20; game++ {
		grid, err := New(9, 7, 10, rand.New(rand.NewSource(int64(game))))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		for move := 0; move < 150; move++ {
			grid.CheckWin()

			x, y := rnd.Intn(11)-1, rnd.Intn(9)-1
			if rnd.Intn(4) == 0 {
				grid.Flag(x, y)
			} else {
				grid.Reveal(x, y)
			}

			if got, want := grid.NumUnrevealed(), countUnrevealed(grid); got != want {
				t.Fatalf("game %d move %d: NumUnrevealed = %d, counted %d", game, move, got, want)
			}
			if got := countMines(grid); got != grid.NumMines() {
				t.Fatalf("game %d move %d: %d mines on grid, NumMines = %d", game, move, got, grid.NumMines())
			}
		}
	}
}

func TestParseRejectsBadLayouts(t *testing.T) {
	cases := []struct {
		name   string
		layout string
	}{
		{"empty", ""},
		{"ragged", "...\n.."},
		{"all mines", "OO\n**"},
		{"non-ascii", "é.\n..."},
		{"non-ascii same width", "é\n.."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.layout); errors.Cause(err) != ErrInvalidLayout {
				t.Fatalf("Parse(%q) err = %v, want %v", tc.layout, err, ErrInvalidLayout)
			}
		})
	}
}
