package minefield

import (
	"math/rand"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Parse builds a grid from rows of ASCII text, one character per cell. "*" and "O"
// are mines; any other character is a safe, unrevealed cell. The grid starts
// in FirstMove with a fixed random source, so a first-move regeneration is
// reproducible.
func Parse(layout string) (*Grid, error) {
	rows := strings.Split(strings.TrimSpace(layout), "\n")
	for i, row := range rows {
		rows[i] = strings.TrimSpace(row)
	}

	height := len(rows)
	width := len(rows[0])
	if width == 0 {
		return nil, errors.Wrap(ErrInvalidLayout, "empty layout")
	}

	grid := newEmptyGrid(width, height, rand.New(rand.NewSource(1)))
	for y, row := range rows {
		if len(row) != width {
			return nil, errors.Wrapf(ErrInvalidLayout, "row %d has %d cells, expected %d", y, len(row), width)
		}

		for x := 0; x < len(row); x++ {
			c := row[x]
			if c >= utf8.RuneSelf {
				return nil, errors.Wrapf(ErrInvalidLayout, "row %d has a non-ASCII cell at byte %d", y, x)
			}
			if c == '*' || c == 'O' {
				grid.cells[y][x].isMine = true
				grid.numMines++
			}
		}
	}

	if grid.numMines >= grid.NumCells() {
		return nil, errors.Wrap(ErrInvalidLayout, "layout has no safe cell")
	}

	return grid, nil
}

// String dumps the grid one row per line: "#" unrevealed, "f" flagged,
// "O" hidden mine, "F" flagged mine, "*" revealed mine, "." or a digit for
// revealed safe cells.
func (grid *Grid) String() string {
	var builder strings.Builder
	for y, row := range grid.cells {
		if y > 0 {
			builder.WriteByte('\n')
		}
		for x, cell := range row {
			builder.WriteString(cell.serialize(grid.AdjacencyCount(x, y)))
		}
	}
	return builder.String()
}
