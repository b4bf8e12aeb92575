package game

import (
	"fmt"

	"github.com/they4kman/tilesweep/minefield"
)

type ActionKind int

const (
	Reveal ActionKind = iota
	Flag
)

// CellAction is a single move against the grid, made either by the player or
// by a Director
type CellAction struct {
	Kind  ActionKind
	Point minefield.Point
}

func RevealAt(point minefield.Point) CellAction {
	return CellAction{Kind: Reveal, Point: point}
}

func FlagAt(point minefield.Point) CellAction {
	return CellAction{Kind: Flag, Point: point}
}

func (action CellAction) String() string {
	switch action.Kind {
	case Reveal:
		return fmt.Sprintf("Reveal%v", action.Point)
	case Flag:
		return fmt.Sprintf("Flag%v", action.Point)
	default:
		return fmt.Sprintf("Action(%d)%v", action.Kind, action.Point)
	}
}

func (action CellAction) Apply(grid *minefield.Grid) {
	switch action.Kind {
	case Reveal:
		grid.Reveal(action.Point.X, action.Point.Y)
	case Flag:
		grid.Flag(action.Point.X, action.Point.Y)
	}
}
