package minefield

import (
	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"
)

// Reveal uncovers the cell at (x, y), cascading through every connected
// zero-adjacency region. On the first move a mine is never revealed: the grid
// is regenerated with the target left out of the mine placement.
func (grid *Grid) Reveal(x, y int) {
	if grid.state.IsOver() {
		return
	}

	cell := grid.cellAt(x, y)
	if cell == nil || cell.isRevealed || cell.isFlagged {
		return
	}

	if grid.state == FirstMove && cell.isMine {
		grid.regenerateAvoiding(Point{x, y})
		log.WithFields(logrus.Fields{
			"x": x,
			"y": y,
		}).Debug("first move hit a mine; regenerated grid")
	}

	grid.state = InGame
	grid.flood(Point{x, y})
}

// flood reveals start and, while revealed cells have no adjacent mines, their
// neighbours. Points may be pushed more than once; revisits are skipped.
func (grid *Grid) flood(start Point) {
	var work deque.Deque
	work.PushBack(start)

	for work.Len() > 0 {
		point := work.PopBack().(Point)

		cell := grid.cellAt(point.X, point.Y)
		if cell == nil || cell.isRevealed || cell.isFlagged {
			continue
		}

		cell.isRevealed = true
		grid.numUnrevealed--

		if cell.isMine {
			grid.lose(point)
			return
		}

		if grid.AdjacencyCount(point.X, point.Y) == 0 {
			for _, neighbor := range grid.Neighbors(point) {
				work.PushBack(neighbor)
			}
		}
	}
}

// Flag toggles the flag on an unrevealed cell. Flags are markers only; they
// never count towards winning.
func (grid *Grid) Flag(x, y int) {
	if grid.state.IsOver() {
		return
	}

	cell := grid.cellAt(x, y)
	if cell == nil || cell.isRevealed {
		return
	}

	cell.isFlagged = !cell.isFlagged
	if cell.isFlagged {
		grid.numFlags++
	} else {
		grid.numFlags--
	}
}

// CheckWin transitions an in-progress game to Won once every safe cell has
// been revealed. It returns whether the game is won.
func (grid *Grid) CheckWin() bool {
	if grid.state == InGame && grid.numUnrevealed <= grid.numMines {
		grid.state = Won
		grid.revealAll()
	}
	return grid.state == Won
}

func (grid *Grid) lose(detonated Point) {
	grid.state = Lost
	grid.detonated = detonated
	grid.hasDetonated = true
	grid.revealAll()
}

func (grid *Grid) revealAll() {
	for y := range grid.cells {
		for x := range grid.cells[y] {
			grid.cells[y][x].isRevealed = true
		}
	}
	grid.numUnrevealed = 0
}
