package game

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/they4kman/tilesweep/minefield"
	"golang.org/x/image/colornames"
)

const numNumberColors = 10

type Theme struct {
	Background color.RGBA
	Font       color.RGBA
	Border     color.RGBA
	Tile       color.RGBA
	Mine       color.RGBA
	Flag       color.RGBA
	Win        color.RGBA
	Lose       color.RGBA

	// Revealed safe cells, indexed by adjacency count. The last entry also
	// catches any count outside the table.
	Numbers [numNumberColors]color.RGBA
}

func hex(rgb uint32) color.RGBA {
	return color.RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff}
}

func DefaultTheme() Theme {
	return Theme{
		Background: colornames.Gainsboro,
		Font:       hex(0xCCCCCC),
		Border:     colornames.Black,
		Tile:       hex(0xAAAAAA),
		Mine:       hex(0x0C0C0C),
		Flag:       colornames.Yellow,
		Win:        colornames.Lime,
		Lose:       colornames.Red,
		Numbers: [numNumberColors]color.RGBA{
			hex(0x777777),
			colornames.Blue,
			colornames.Green,
			colornames.Red,
			hex(0x000060),
			hex(0x600000),
			colornames.Teal,
			colornames.Purple,
			hex(0x777777),
			colornames.White,
		},
	}
}

func (theme Theme) NumberColor(adjacency int) color.RGBA {
	if adjacency < 0 || adjacency >= numNumberColors {
		return theme.Numbers[numNumberColors-1]
	}
	return theme.Numbers[adjacency]
}

// CellColor picks the fill colour of the cell at point from its state alone
func (theme Theme) CellColor(grid *minefield.Grid, point minefield.Point) color.RGBA {
	cell, _ := grid.CellAt(point.X, point.Y)

	switch {
	case !cell.IsRevealed() && cell.IsFlagged():
		return theme.Flag
	case !cell.IsRevealed():
		return theme.Tile
	case cell.IsMine():
		if detonated, ok := grid.Detonated(); ok && detonated == point {
			return theme.Lose
		}
		return theme.Mine
	default:
		return theme.NumberColor(grid.AdjacencyCount(point.X, point.Y))
	}
}

// ParseColor accepts "#RRGGBB", "0xRRGGBB" or a colornames name
func ParseColor(value string) (color.RGBA, error) {
	value = strings.TrimSpace(value)

	lower := strings.ToLower(value)
	if named, ok := colornames.Map[lower]; ok {
		return named, nil
	}

	digits := strings.TrimPrefix(strings.TrimPrefix(lower, "#"), "0x")
	if len(digits) != 6 {
		return color.RGBA{}, errors.Errorf("invalid colour %q", value)
	}
	rgb, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "invalid colour %q", value)
	}
	return hex(uint32(rgb)), nil
}
