package game

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/tilesweep/minefield"
)

// Session owns the grid for the lifetime of the window and advances it one
// frame at a time
type Session struct {
	config GameConfig
	grid   *minefield.Grid
	input  *Input

	director       Director
	lastDirectorAt time.Time

	// Whether the end of the current game has been reported
	announced bool
}

func NewSession(config GameConfig, grid *minefield.Grid) *Session {
	session := &Session{
		config:   config,
		grid:     grid,
		input:    NewInput(config.TileSize, grid.Height()),
		director: config.Director,
	}
	session.startGame()

	return session
}

func (session *Session) Grid() *minefield.Grid {
	return session.grid
}

func (session *Session) Input() *Input {
	return session.input
}

func (session *Session) startGame() {
	if session.director != nil {
		session.director.Init(session.grid)
	}

	log.WithFields(logrus.Fields{
		"width":  session.grid.Width(),
		"height": session.grid.Height(),
		"mines":  session.grid.NumMines(),
	}).Info("new game")
}

// Tick advances the game by one frame: the win check runs first, then queued
// input and finally the director
func (session *Session) Tick(now time.Time) {
	grid := session.grid
	grid.CheckWin()

	if grid.State().IsOver() {
		session.announceEnd()

		// Clicks on a finished board are dropped
		session.input.Drain()

		if session.input.takeRestart() {
			session.Restart()
		}
		return
	}

	for _, action := range session.input.Drain() {
		log.WithField("action", action).Debug("player action")
		action.Apply(grid)
	}

	if session.director != nil && now.Sub(session.lastDirectorAt) >= session.config.DirectorInterval {
		session.lastDirectorAt = now
		for _, action := range session.director.Act() {
			log.WithField("action", action).Debug("director action")
			action.Apply(grid)
		}
	}

	// A restart request mid-game is ignored
	session.input.takeRestart()
}

// Restart regenerates the grid in place for a new game
func (session *Session) Restart() {
	session.grid.Regenerate()
	session.announced = false
	session.startGame()
}

func (session *Session) announceEnd() {
	if session.announced {
		return
	}
	session.announced = true

	grid := session.grid
	entry := log.WithFields(logrus.Fields{
		"width":  grid.Width(),
		"height": grid.Height(),
		"mines":  grid.NumMines(),
		"flags":  grid.NumFlags(),
	})

	switch grid.State() {
	case minefield.Won:
		entry.Info("You won!")
	case minefield.Lost:
		if point, ok := grid.Detonated(); ok {
			entry = entry.WithField("detonated", point)
		}
		entry.Info("Game over!")
	}

	log.Debugf("final grid:\n%s", grid)
}
