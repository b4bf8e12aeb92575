package random

import (
	"github.com/they4kman/tilesweep/game"
	"github.com/they4kman/tilesweep/minefield"
)

// Director reveals cells in a random order fixed when the game starts
type Director struct {
	grid  *minefield.Grid
	order []minefield.Point
}

func (director *Director) Init(grid *minefield.Grid) {
	director.grid = grid
	director.order = grid.Points()

	grid.Rand().Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}

func (director *Director) Act() []game.CellAction {
	if point, ok := director.Next(); ok {
		return []game.CellAction{game.RevealAt(point)}
	}
	return nil
}

// Next returns the first point of the shuffled order still worth clicking
func (director *Director) Next() (minefield.Point, bool) {
	// Revealed cells stay revealed, so they are dropped for good
	for len(director.order) > 0 {
		point := director.order[0]
		if cell, _ := director.grid.CellAt(point.X, point.Y); !cell.IsRevealed() {
			break
		}
		director.order = director.order[1:]
	}

	for _, point := range director.order {
		cell, _ := director.grid.CellAt(point.X, point.Y)
		if !cell.IsRevealed() && !cell.IsFlagged() {
			return point, true
		}
	}
	return minefield.Point{}, false
}
