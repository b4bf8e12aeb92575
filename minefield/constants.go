package minefield

import "github.com/pkg/errors"

type State int

const (
	FirstMove State = iota
	InGame
	Won
	Lost
)

func (state State) String() string {
	switch state {
	case FirstMove:
		return "first-move"
	case InGame:
		return "in-game"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// IsOver reports whether the state is terminal
func (state State) IsOver() bool {
	return state == Won || state == Lost
}

var (
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
	ErrInvalidMineCount  = errors.New("mine count must not be negative")
	ErrInvalidLayout     = errors.New("invalid grid layout")
)

// Offsets of the 8 cells surrounding a cell
var neighborOffsets = [8]Point{
	{-1, -1},
	{0, -1},
	{1, -1},
	{1, 0},
	{1, 1},
	{0, 1},
	{-1, 1},
	{-1, 0},
}
