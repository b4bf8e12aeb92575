package constraint

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/tilesweep/director/random"
	"github.com/they4kman/tilesweep/game"
	"github.com/they4kman/tilesweep/minefield"
	"github.com/they4kman/tilesweep/util/collections"
)

var log = logrus.WithField("pkg", "director/constraint")

// Director plays from what is visible on the board: every revealed number
// constrains its hidden neighbours. Sure moves are preferred, then the least
// risky cell, then a random one.
type Director struct {
	grid     *minefield.Grid
	fallback random.Director

	observations []*Observation
}

// Observation records that numMines mines remain hidden among cells, as seen
// from the revealed cell at origin
type Observation struct {
	origin   minefield.Point
	numMines int
	cells    collections.Set[minefield.Point]
}

func (observation Observation) String() string {
	cells := make([]string, 0, len(observation.cells))
	for _, point := range sortedPoints(observation.cells) {
		cells = append(cells, point.String())
	}
	return fmt.Sprintf("Obs[%8s, %d ε %s]", observation.origin, observation.numMines, strings.Join(cells, ", "))
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func (director *Director) Init(grid *minefield.Grid) {
	director.grid = grid
	director.observations = nil
	director.fallback.Init(grid)
}

func (director *Director) Act() []game.CellAction {
	director.observe()

	actors := []func() []game.CellAction{
		director.actDeliberate,
		director.actLowestProbability,
		director.actRandom,
	}
	for _, actor := range actors {
		if actions := actor(); len(actions) > 0 {
			return actions
		}
	}
	return nil
}

// observe rebuilds the observations from the revealed numbers on the board
func (director *Director) observe() {
	grid := director.grid
	director.observations = director.observations[:0]

	for _, point := range grid.Points() {
		cell, _ := grid.CellAt(point.X, point.Y)
		if !cell.IsRevealed() || cell.IsMine() {
			continue
		}

		numMines := grid.AdjacencyCount(point.X, point.Y)
		if numMines == 0 {
			continue
		}

		hidden := make(collections.Set[minefield.Point])
		for _, neighbor := range grid.Neighbors(point) {
			neighborCell, _ := grid.CellAt(neighbor.X, neighbor.Y)
			switch {
			case neighborCell.IsRevealed():
			case neighborCell.IsFlagged():
				numMines--
			default:
				hidden.Add(neighbor)
			}
		}

		// Nothing left to learn, or the flags around it are wrong
		if len(hidden) == 0 || numMines < 0 || numMines > len(hidden) {
			continue
		}

		director.observations = append(director.observations, &Observation{
			origin:   point,
			numMines: numMines,
			cells:    hidden,
		})
	}
}

func (director *Director) actDeliberate() []game.CellAction {
	flags := make(collections.Set[minefield.Point])
	reveals := make(collections.Set[minefield.Point])

	for _, observation := range director.observations {
		switch observation.numMines {
		case len(observation.cells):
			for point := range observation.cells {
				flags.Add(point)
			}
		case 0:
			for point := range observation.cells {
				reveals.Add(point)
			}
		}
	}

	if conflicts := reveals.Intersection(flags); len(conflicts) > 0 {
		log.WithField("cells", len(conflicts)).Debug("contradicting observations; skipping those cells")
		for point := range conflicts {
			reveals.Remove(point)
			flags.Remove(point)
		}
	}

	actions := make([]game.CellAction, 0, len(flags)+len(reveals))
	for _, point := range sortedPoints(flags) {
		actions = append(actions, game.FlagAt(point))
	}
	for _, point := range sortedPoints(reveals) {
		actions = append(actions, game.RevealAt(point))
	}
	return actions
}

func (director *Director) actLowestProbability() []game.CellAction {
	// A cell is as risky as the most pessimistic observation covering it
	cellProbabilities := make(map[minefield.Point]float64)
	for _, observation := range director.observations {
		probability := observation.MineProbability()
		for point := range observation.cells {
			if past, ok := cellProbabilities[point]; !ok || probability > past {
				cellProbabilities[point] = probability
			}
		}
	}
	if len(cellProbabilities) == 0 {
		return nil
	}

	lowestProbability := math.Inf(1)
	for _, probability := range cellProbabilities {
		lowestProbability = math.Min(lowestProbability, probability)
	}

	lowestProbabilityCells := make(collections.Set[minefield.Point])
	for point, probability := range cellProbabilities {
		if probability <= lowestProbability {
			lowestProbabilityCells.Add(point)
		}
	}

	candidates := sortedPoints(lowestProbabilityCells)
	director.grid.Rand().Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	log.WithFields(logrus.Fields{
		"cell":        candidates[0],
		"probability": lowestProbability,
	}).Debug("guessing lowest-probability cell")

	return []game.CellAction{game.RevealAt(candidates[0])}
}

func (director *Director) actRandom() []game.CellAction {
	return director.fallback.Act()
}

// sortedPoints orders a set of points row by row, so moves are reproducible
func sortedPoints(set collections.Set[minefield.Point]) []minefield.Point {
	points := make([]minefield.Point, 0, len(set))
	for point := range set {
		points = append(points, point)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
	return points
}
