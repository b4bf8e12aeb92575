package game

import "github.com/they4kman/tilesweep/minefield"

// Director plays the game in place of (or alongside) the human player
type Director interface {
	/**
	 * Initialize the director for a freshly generated grid
	 */
	Init(*minefield.Grid)

	/**
	 * Decide the next moves. An empty result means the director has nothing
	 * to do this step.
	 */
	Act() []CellAction
}
