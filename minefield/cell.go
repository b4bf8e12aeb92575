package minefield

import "fmt"

type Point struct {
	X, Y int
}

func (point Point) String() string {
	return fmt.Sprintf("(%d, %d)", point.X, point.Y)
}

func (point Point) Add(other Point) Point {
	return Point{point.X + other.X, point.Y + other.Y}
}

// Cell is a single square of the grid. The grid hands out copies, so a Cell
// can be inspected freely but never mutated from outside the package.
type Cell struct {
	isMine, isRevealed, isFlagged bool
}

func (cell Cell) IsMine() bool {
	return cell.isMine
}

func (cell Cell) IsRevealed() bool {
	return cell.isRevealed
}

func (cell Cell) IsFlagged() bool {
	return cell.isFlagged
}

// serialize renders the cell as a single character. Revealed safe cells are
// written as their adjacency count, with zero shown as "."
func (cell Cell) serialize(numMines int) string {
	switch {
	case cell.isMine:
		switch {
		case cell.isRevealed:
			return "*"
		case cell.isFlagged:
			return "F"
		default:
			return "O"
		}
	case cell.isFlagged:
		return "f"
	case cell.isRevealed:
		if numMines == 0 {
			return "."
		}
		return fmt.Sprint(numMines)
	default:
		return "#"
	}
}
