package minefield

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("pkg", "minefield")

type Grid struct {
	width, height int // in number of cells
	numMines      int
	cells         [][]Cell

	state         State
	numUnrevealed int
	numFlags      int

	detonated    Point
	hasDetonated bool

	rand *rand.Rand
}

// Validate checks grid parameters, returning the mine count to use. Mine
// counts above width*height-1 are capped, so the first move can always be
// safe.
func Validate(width, height, numMines int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, errors.Wrapf(ErrInvalidDimensions, "got %dx%d", width, height)
	}
	if numMines < 0 {
		return 0, errors.Wrapf(ErrInvalidMineCount, "got %d", numMines)
	}
	if maxMines := width*height - 1; numMines > maxMines {
		return maxMines, nil
	}
	return numMines, nil
}

// New allocates a width x height grid and places numMines mines. A nil rnd
// falls back to a time-seeded source.
func New(width, height, numMines int, rnd *rand.Rand) (*Grid, error) {
	numMines, err := Validate(width, height, numMines)
	if err != nil {
		return nil, err
	}

	grid := newEmptyGrid(width, height, rnd)
	grid.numMines = numMines
	grid.Regenerate()

	return grid, nil
}

func newEmptyGrid(width, height int, rnd *rand.Rand) *Grid {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	grid := &Grid{
		width:  width,
		height: height,
		cells:  make([][]Cell, height),
		rand:   rnd,
	}
	for y := range grid.cells {
		grid.cells[y] = make([]Cell, width)
	}
	grid.reset()

	return grid
}

func (grid *Grid) reset() {
	for y := range grid.cells {
		for x := range grid.cells[y] {
			grid.cells[y][x] = Cell{}
		}
	}

	grid.state = FirstMove
	grid.numUnrevealed = grid.width * grid.height
	grid.numFlags = 0
	grid.hasDetonated = false
}

// Regenerate clears every cell and places a fresh set of mines, returning the
// grid to FirstMove.
func (grid *Grid) Regenerate() {
	grid.placeMines(-1)
}

// regenerateAvoiding places a fresh set of mines with none at point
func (grid *Grid) regenerateAvoiding(point Point) {
	grid.placeMines(point.Y*grid.width + point.X)
}

// placeMines resets the grid and fills numMines random cells, never the cell
// at index skip. numMines never exceeds the number of candidate cells.
func (grid *Grid) placeMines(skip int) {
	grid.reset()

	// Store cell indexes, to shuffle and fill mines
	cellIndexes := make([]int, 0, grid.width*grid.height)
	for i := 0; i < grid.width*grid.height; i++ {
		if i != skip {
			cellIndexes = append(cellIndexes, i)
		}
	}
	grid.rand.Shuffle(len(cellIndexes), func(i, j int) {
		cellIndexes[i], cellIndexes[j] = cellIndexes[j], cellIndexes[i]
	})

	for _, idx := range cellIndexes[:grid.numMines] {
		grid.cells[idx/grid.width][idx%grid.width].isMine = true
	}
}

func (grid *Grid) Width() int {
	return grid.width
}

func (grid *Grid) Height() int {
	return grid.height
}

func (grid *Grid) NumCells() int {
	return grid.width * grid.height
}

func (grid *Grid) NumMines() int {
	return grid.numMines
}

func (grid *Grid) NumUnrevealed() int {
	return grid.numUnrevealed
}

func (grid *Grid) NumFlags() int {
	return grid.numFlags
}

func (grid *Grid) State() State {
	return grid.state
}

// Rand exposes the grid's random source, so players of the grid can share
// its seed.
func (grid *Grid) Rand() *rand.Rand {
	return grid.rand
}

// Detonated returns the mine whose reveal lost the game, if any
func (grid *Grid) Detonated() (Point, bool) {
	return grid.detonated, grid.hasDetonated
}

func (grid *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < grid.width && y < grid.height
}

func (grid *Grid) CellAt(x, y int) (Cell, bool) {
	if cell := grid.cellAt(x, y); cell != nil {
		return *cell, true
	}
	return Cell{}, false
}

func (grid *Grid) cellAt(x, y int) *Cell {
	if grid.InBounds(x, y) {
		return &grid.cells[y][x]
	}
	return nil
}

// Neighbors returns the in-bounds points surrounding point
func (grid *Grid) Neighbors(point Point) []Point {
	neighbors := make([]Point, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		neighbor := point.Add(offset)
		if grid.InBounds(neighbor.X, neighbor.Y) {
			neighbors = append(neighbors, neighbor)
		}
	}
	return neighbors
}

// Points returns every point of the grid in row-major order
func (grid *Grid) Points() []Point {
	points := make([]Point, 0, grid.NumCells())
	for y := 0; y < grid.height; y++ {
		for x := 0; x < grid.width; x++ {
			points = append(points, Point{x, y})
		}
	}
	return points
}

// AdjacencyCount returns the number of mines among the cells surrounding
// (x, y). Out-of-bounds neighbours count as empty.
func (grid *Grid) AdjacencyCount(x, y int) int {
	count := 0
	for _, neighbor := range grid.Neighbors(Point{x, y}) {
		if grid.cells[neighbor.Y][neighbor.X].isMine {
			count++
		}
	}
	return count
}
