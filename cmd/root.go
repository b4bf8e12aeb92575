package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/tilesweep/director/constraint"
	"github.com/they4kman/tilesweep/director/random"
	"github.com/they4kman/tilesweep/display"
	"github.com/they4kman/tilesweep/game"
)

const version = "1.1.0"

var (
	dimensions   = dimensionsValue{Width: 32, Height: 16}
	numMines     = 64
	seed         int64
	tileSize     = 32
	configPath   string
	directorName = newDirectorValue("none")
	logLevel     = "info"
)

var rootCmd = &cobra.Command{
	Use:     "tilesweep",
	Short:   "Play Minesweeper",
	Version: version,
	Long: `tilesweep is a Minesweeper game. Left click reveals a cell, right click
toggles a flag, Enter starts a new game once the current one is over.

Play on the default 32x16 grid with 64 mines
	tilesweep

Play on a 16x16 grid with 40 mines
	tilesweep -d 16 16 -m 40

Let the computer play
	tilesweep --director constraint
`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Arguments parsed fine; further errors are not usage errors
		cmd.SilenceUsage = true

		gameConfig, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		var runErr error
		pixelgl.Run(func() {
			runErr = display.Run(gameConfig)
		})
		return runErr
	},
}

func Execute() {
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildConfig layers the config file, then explicitly set flags, over the
// defaults
func buildConfig(cmd *cobra.Command) (game.GameConfig, error) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return game.GameConfig{}, errors.Wrap(err, "invalid --log-level")
	}
	logrus.SetLevel(level)

	gameConfig := game.NewGameConfig()
	if configPath != "" {
		if err := gameConfig.LoadConfigFile(configPath); err != nil {
			return gameConfig, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dimensions") {
		gameConfig.Width, gameConfig.Height = dimensions.Width, dimensions.Height
	}
	if flags.Changed("mines") {
		gameConfig.NumMines = numMines
	}
	if flags.Changed("seed") {
		gameConfig.Seed = seed
	}
	if flags.Changed("tile-size") {
		gameConfig.TileSize = tileSize
	}
	gameConfig.Director = directorName.director()

	if err := gameConfig.Validate(); err != nil {
		return gameConfig, err
	}

	logrus.WithFields(logrus.Fields{
		"width":    gameConfig.Width,
		"height":   gameConfig.Height,
		"mines":    gameConfig.NumMines,
		"seed":     gameConfig.Seed,
		"director": directorName.String(),
	}).Debug("starting")

	return gameConfig, nil
}

// normalizeArgs rewrites the two-argument "-d <width> <height>" form into
// "--dimensions=<width>x<height>", which a single flag value can hold
func normalizeArgs(args []string) []string {
	normalized := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if (arg == "-d" || arg == "--dimensions") && i+2 < len(args) && isInteger(args[i+1]) && isInteger(args[i+2]) {
			normalized = append(normalized, fmt.Sprintf("--dimensions=%sx%s", args[i+1], args[i+2]))
			i += 2
			continue
		}
		normalized = append(normalized, arg)
	}
	return normalized
}

func isInteger(arg string) bool {
	_, err := strconv.Atoi(arg)
	return err == nil
}

type dimensionsValue struct {
	Width, Height int
}

func (value *dimensionsValue) String() string {
	return fmt.Sprintf("%dx%d", value.Width, value.Height)
}

func (value *dimensionsValue) Set(s string) error {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == 'x' || r == ','
	})
	if len(parts) != 2 {
		return fmt.Errorf("expected <width>x<height>, got %q", s)
	}

	width, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("invalid width %q", parts[0])
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("invalid height %q", parts[1])
	}

	value.Width, value.Height = width, height
	return nil
}

func (value *dimensionsValue) Type() string {
	return "dimensions"
}

type directorValue string

var directors = map[string]func() game.Director{
	"none":       func() game.Director { return nil },
	"random":     func() game.Director { return &random.Director{} },
	"constraint": func() game.Director { return &constraint.Director{} },
}

func newDirectorValue(name string) *directorValue {
	value := directorValue(name)
	return &value
}

func (value *directorValue) String() string {
	return string(*value)
}

func (value *directorValue) Set(name string) error {
	if _, isValid := directors[name]; isValid {
		*value = directorValue(name)
		return nil
	}
	return fmt.Errorf("invalid director")
}

func (value *directorValue) Type() string {
	return "director"
}

func (value *directorValue) director() game.Director {
	return directors[string(*value)]()
}

func init() {
	rootCmd.Flags().VarP(&dimensions, "dimensions", "d", "Grid size in cells, as -d <width> <height> or --dimensions <width>x<height>")
	rootCmd.Flags().IntVarP(&numMines, "mines", "m", numMines, "Number of mines to place on the grid")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (defaults to the current time)")
	rootCmd.Flags().IntVar(&tileSize, "tile-size", tileSize, "Size of a tile, in pixels")
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.Flags().Var(directorName, "director", `Let the computer play.
none: play manually
random: reveal random cells
constraint: deduce moves from the revealed numbers, guessing only when stuck`)
	rootCmd.Flags().StringVar(&logLevel, "log-level", logLevel, "Log level (debug, info, warn, error)")
}
