package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/text"
	"github.com/they4kman/tilesweep/minefield"
	"golang.org/x/image/font/basicfont"
)

const (
	headerHeight   = 40
	minWindowWidth = 200
	bannerScale    = 2
)

// Renderer draws a grid from scratch every frame; it keeps no cell state of
// its own
type Renderer struct {
	theme    Theme
	tileSize int

	imd     *imdraw.IMDraw
	atlas   *text.Atlas
	numbers *text.Text
	header  *text.Text
	banner  *text.Text
}

func NewRenderer(theme Theme, tileSize int) *Renderer {
	atlas := text.NewAtlas(basicfont.Face7x13, text.ASCII)

	return &Renderer{
		theme:    theme,
		tileSize: tileSize,
		imd:      imdraw.New(nil),
		atlas:    atlas,
		numbers:  text.New(pixel.ZV, atlas),
		header:   text.New(pixel.ZV, atlas),
		banner:   text.New(pixel.ZV, atlas),
	}
}

// Bounds is the window area needed to show the grid and its header
func (renderer *Renderer) Bounds(grid *minefield.Grid) pixel.Rect {
	return pixel.R(
		0, 0,
		math.Max(float64(grid.Width()*renderer.tileSize), minWindowWidth),
		float64(grid.Height()*renderer.tileSize+headerHeight),
	)
}

// CellRect is the on-screen rectangle of a grid cell; row 0 is the top row
func (renderer *Renderer) CellRect(grid *minefield.Grid, point minefield.Point) pixel.Rect {
	tile := float64(renderer.tileSize)
	origin := pixel.V(float64(point.X)*tile, float64(grid.Height()-1-point.Y)*tile)
	return pixel.Rect{Min: origin, Max: origin.Add(pixel.V(tile, tile))}
}

// Banner returns the end-of-game message and its colour
func (renderer *Renderer) Banner(grid *minefield.Grid) (string, color.RGBA, bool) {
	switch grid.State() {
	case minefield.Won:
		return "You won!", renderer.theme.Win, true
	case minefield.Lost:
		return "Game over!", renderer.theme.Lose, true
	default:
		return "", color.RGBA{}, false
	}
}

func (renderer *Renderer) Draw(target pixel.Target, grid *minefield.Grid) {
	renderer.imd.Clear()
	renderer.numbers.Clear()
	renderer.numbers.Color = renderer.theme.Font

	for _, point := range grid.Points() {
		rect := renderer.CellRect(grid, point)

		renderer.imd.Color = renderer.theme.CellColor(grid, point)
		renderer.imd.Push(rect.Min, rect.Max)
		renderer.imd.Rectangle(0) // 0 = filled

		renderer.imd.Color = renderer.theme.Border
		renderer.imd.Push(rect.Min, rect.Max)
		renderer.imd.Rectangle(1)

		cell, _ := grid.CellAt(point.X, point.Y)
		if !cell.IsRevealed() || cell.IsMine() {
			continue
		}
		if numMines := grid.AdjacencyCount(point.X, point.Y); numMines > 0 {
			label := fmt.Sprint(numMines)
			bounds := renderer.numbers.BoundsOf(label)
			renderer.numbers.Dot = rect.Center().Sub(pixel.V(bounds.W()/2, renderer.atlas.LineHeight()/4))
			fmt.Fprint(renderer.numbers, label)
		}
	}

	renderer.imd.Draw(target)
	renderer.numbers.Draw(target, pixel.IM)

	renderer.drawHeader(target, grid)
	renderer.drawBanner(target, grid)
}

func (renderer *Renderer) drawHeader(target pixel.Target, grid *minefield.Grid) {
	boardTop := float64(grid.Height() * renderer.tileSize)

	renderer.header.Clear()
	renderer.header.Color = renderer.theme.Border
	renderer.header.Dot = pixel.V(12, boardTop+headerHeight/2-renderer.atlas.LineHeight()/4)
	fmt.Fprintf(renderer.header, "%03d", grid.NumMines()-grid.NumFlags())
	renderer.header.Draw(target, pixel.IM)
}

func (renderer *Renderer) drawBanner(target pixel.Target, grid *minefield.Grid) {
	message, messageColor, ok := renderer.Banner(grid)
	if !ok {
		return
	}

	board := pixel.R(0, 0, float64(grid.Width()*renderer.tileSize), float64(grid.Height()*renderer.tileSize))
	center := board.Center()

	renderer.banner.Clear()
	renderer.banner.Color = messageColor
	bounds := renderer.banner.BoundsOf(message)
	renderer.banner.Dot = center.Sub(pixel.V(bounds.W()/2, renderer.atlas.LineHeight()/4))
	fmt.Fprint(renderer.banner, message)

	half := pixel.V(bounds.W()*bannerScale/2+12, renderer.atlas.LineHeight()*bannerScale/2+8)

	renderer.imd.Clear()
	renderer.imd.Color = renderer.theme.Background
	renderer.imd.Push(center.Sub(half), center.Add(half))
	renderer.imd.Rectangle(0)
	renderer.imd.Color = messageColor
	renderer.imd.Push(center.Sub(half), center.Add(half))
	renderer.imd.Rectangle(2)
	renderer.imd.Draw(target)

	renderer.banner.Draw(target, pixel.IM.Scaled(center, bannerScale))
}
