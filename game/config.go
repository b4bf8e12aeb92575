package game

import (
	"image/color"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/tilesweep/minefield"
	"gopkg.in/yaml.v2"
)

var log = logrus.WithField("pkg", "game")

type GameConfig struct {
	Width, Height int
	NumMines      int

	Seed int64

	// Size of a tile, in pixels
	TileSize int
	// Pause between frames of the main loop
	FrameDelay time.Duration

	Theme Theme

	Director Director
	// Time between two director steps
	DirectorInterval time.Duration
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Width:            32,
		Height:           16,
		NumMines:         64,
		Seed:             time.Now().UnixNano(),
		TileSize:         32,
		FrameDelay:       5 * time.Millisecond,
		Theme:            DefaultTheme(),
		Director:         nil,
		DirectorInterval: 250 * time.Millisecond,
	}
}

// Validate checks the grid parameters, capping the mine count when there
// would be no room left for a safe first move
func (config *GameConfig) Validate() error {
	numMines, err := minefield.Validate(config.Width, config.Height, config.NumMines)
	if err != nil {
		return err
	}
	if numMines != config.NumMines {
		log.WithFields(logrus.Fields{
			"requested": config.NumMines,
			"capped":    numMines,
		}).Warn("too many mines for the grid; capping")
		config.NumMines = numMines
	}
	if config.TileSize <= 0 {
		return errors.Errorf("tile size must be positive, got %d", config.TileSize)
	}
	return nil
}

func (config GameConfig) CreateGrid() (*minefield.Grid, error) {
	return minefield.New(config.Width, config.Height, config.NumMines, rand.New(rand.NewSource(config.Seed)))
}

// fileConfig mirrors the YAML config file. Pointers distinguish "absent" from
// zero values.
type fileConfig struct {
	Width            *int           `yaml:"width"`
	Height           *int           `yaml:"height"`
	NumMines         *int           `yaml:"mines"`
	Seed             *int64         `yaml:"seed"`
	TileSize         *int           `yaml:"tile_size"`
	FrameDelay       *time.Duration `yaml:"frame_delay"`
	DirectorInterval *time.Duration `yaml:"director_interval"`
	Theme            themeConfig    `yaml:"theme"`
}

type themeConfig struct {
	Background string   `yaml:"background"`
	Font       string   `yaml:"font"`
	Border     string   `yaml:"border"`
	Tile       string   `yaml:"tile"`
	Mine       string   `yaml:"mine"`
	Flag       string   `yaml:"flag"`
	Win        string   `yaml:"win"`
	Lose       string   `yaml:"lose"`
	Numbers    []string `yaml:"numbers,flow"`
}

// LoadConfigFile overlays the values present in a YAML config file onto config
func (config *GameConfig) LoadConfigFile(path string) error {
	in, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}
	if err := config.LoadConfig(in); err != nil {
		return errors.Wrapf(err, "loading %s", path)
	}

	log.WithField("path", path).Debug("loaded config file")
	return nil
}

func (config *GameConfig) LoadConfig(in []byte) error {
	var file fileConfig
	if err := yaml.UnmarshalStrict(in, &file); err != nil {
		return errors.Wrap(err, "parsing config")
	}

	if file.Width != nil {
		config.Width = *file.Width
	}
	if file.Height != nil {
		config.Height = *file.Height
	}
	if file.NumMines != nil {
		config.NumMines = *file.NumMines
	}
	if file.Seed != nil {
		config.Seed = *file.Seed
	}
	if file.TileSize != nil {
		config.TileSize = *file.TileSize
	}
	if file.FrameDelay != nil {
		config.FrameDelay = *file.FrameDelay
	}
	if file.DirectorInterval != nil {
		config.DirectorInterval = *file.DirectorInterval
	}

	return file.Theme.apply(&config.Theme)
}

func (themeCfg themeConfig) apply(theme *Theme) error {
	fields := []struct {
		name  string
		value string
		dest  *color.RGBA
	}{
		{"background", themeCfg.Background, &theme.Background},
		{"font", themeCfg.Font, &theme.Font},
		{"border", themeCfg.Border, &theme.Border},
		{"tile", themeCfg.Tile, &theme.Tile},
		{"mine", themeCfg.Mine, &theme.Mine},
		{"flag", themeCfg.Flag, &theme.Flag},
		{"win", themeCfg.Win, &theme.Win},
		{"lose", themeCfg.Lose, &theme.Lose},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		parsed, err := ParseColor(field.value)
		if err != nil {
			return errors.Wrapf(err, "theme.%s", field.name)
		}
		*field.dest = parsed
	}

	if len(themeCfg.Numbers) > numNumberColors {
		return errors.Errorf("theme.numbers has %d entries, at most %d allowed", len(themeCfg.Numbers), numNumberColors)
	}
	for i, value := range themeCfg.Numbers {
		parsed, err := ParseColor(value)
		if err != nil {
			return errors.Wrapf(err, "theme.numbers[%d]", i)
		}
		theme.Numbers[i] = parsed
	}

	return nil
}
