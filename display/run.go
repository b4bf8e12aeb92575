package display

import (
	"fmt"
	"time"

	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/tilesweep/game"
)

const title = "Minesweeper"

var log = logrus.WithField("pkg", "display")

var buttons = []struct {
	glButton pixelgl.Button
	button   game.Button
}{
	{pixelgl.MouseButtonLeft, game.ButtonPrimary},
	{pixelgl.MouseButtonRight, game.ButtonSecondary},
}

// Run opens the game window and plays until it is closed. It must be called
// from within pixelgl.Run.
func Run(config game.GameConfig) error {
	grid, err := config.CreateGrid()
	if err != nil {
		return errors.Wrap(err, "creating grid")
	}
	session := game.NewSession(config, grid)
	renderer := game.NewRenderer(config.Theme, config.TileSize)

	win, err := pixelgl.NewWindow(pixelgl.WindowConfig{
		Title:  title,
		Bounds: renderer.Bounds(session.Grid()),
	})
	if err != nil {
		return errors.Wrap(err, "creating window")
	}
	defer win.Destroy()

	input := session.Input()

	frames := 0
	second := time.NewTicker(time.Second)
	defer second.Stop()

	for !input.Quit() {
		win.Update()
		if win.Closed() {
			input.Close()
			continue
		}

		pollEvents(win, input)

		session.Tick(time.Now())

		win.Clear(config.Theme.Background)
		renderer.Draw(win, session.Grid())

		frames++
		select {
		case <-second.C:
			win.SetTitle(fmt.Sprintf("%s | FPS: %d", title, frames))
			frames = 0
		default:
		}

		time.Sleep(config.FrameDelay)
	}

	log.Debug("window closed")
	return nil
}

// pollEvents queues the pointer presses of the current frame
func pollEvents(win *pixelgl.Window, input *game.Input) {
	// Start a new game with Enter
	if win.JustPressed(pixelgl.KeyEnter) {
		input.RequestRestart()
	}

	if !win.MouseInsideWindow() {
		return
	}

	pos := win.MousePosition()
	for _, mapping := range buttons {
		if win.JustPressed(mapping.glButton) {
			input.Push(game.PointerEvent{Pos: pos, Button: mapping.button})
		}
	}
}
