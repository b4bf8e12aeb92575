package game

import (
	"math"

	"github.com/faiface/pixel"
	"github.com/gammazero/deque"
	"github.com/they4kman/tilesweep/minefield"
)

type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// PointerEvent is a pointer button press, in window coordinates (origin at
// the bottom-left, as pixel reports them)
type PointerEvent struct {
	Pos    pixel.Vec
	Button Button
}

// Input queues pointer events between frames and turns them into cell
// actions
type Input struct {
	tileSize   int
	gridHeight int

	events  deque.Deque
	quit    bool
	restart bool
}

func NewInput(tileSize, gridHeight int) *Input {
	return &Input{
		tileSize:   tileSize,
		gridHeight: gridHeight,
	}
}

func (input *Input) Push(event PointerEvent) {
	input.events.PushBack(event)
}

func (input *Input) Pending() int {
	return input.events.Len()
}

// Close marks the input as finished; the main loop stops once it sees this
func (input *Input) Close() {
	input.quit = true
}

func (input *Input) Quit() bool {
	return input.quit
}

// RequestRestart asks for a new game; only honoured once the current game
// is over
func (input *Input) RequestRestart() {
	input.restart = true
}

func (input *Input) takeRestart() bool {
	restart := input.restart
	input.restart = false
	return restart
}

// Drain converts every queued event to an action, in arrival order
func (input *Input) Drain() []CellAction {
	actions := make([]CellAction, 0, input.events.Len())
	for input.events.Len() > 0 {
		event := input.events.PopFront().(PointerEvent)
		if action, ok := input.translate(event); ok {
			actions = append(actions, action)
		}
	}
	return actions
}

func (input *Input) translate(event PointerEvent) (CellAction, bool) {
	point := ScreenToGrid(event.Pos, input.tileSize, input.gridHeight)

	switch event.Button {
	case ButtonPrimary:
		return RevealAt(point), true
	case ButtonSecondary:
		return FlagAt(point), true
	default:
		return CellAction{}, false
	}
}

// ScreenToGrid converts a window position to grid coordinates. Pixel's y axis
// points up, while row 0 of the grid is drawn at the top of the board.
func ScreenToGrid(pos pixel.Vec, tileSize, gridHeight int) minefield.Point {
	boardTop := float64(gridHeight * tileSize)
	x := math.Floor(pos.X / float64(tileSize))
	y := math.Floor((boardTop - pos.Y) / float64(tileSize))
	return minefield.Point{X: int(x), Y: int(y)}
}
