// Package config provides YAML-based game configuration loading and
// environment defaults for the snake CLI.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/wrapsnake/internal/core"
)

// AutoSize asks the game to fit the board to the screen.
const AutoSize = 0

// CenterSpawn places the head at the centre of the board.
const CenterSpawn = -1

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid   GridConfig   `yaml:"grid"`
	Snake  BodyConfig   `yaml:"snake"`
	Rules  RulesConfig  `yaml:"rules"`
	Colors ColorsConfig `yaml:"colors"`
}

// GridConfig defines the board.
type GridConfig struct {
	Size  int `yaml:"size"`  // 0 = fit to screen
	Spawn int `yaml:"spawn"` // -1 = centre
}

// BodyConfig defines the snake at spawn and its pace.
type BodyConfig struct {
	InitialLength  int `yaml:"initial_length"`
	MoveEveryTicks int `yaml:"move_every_ticks"`
}

// RulesConfig toggles end-of-game conditions.
type RulesConfig struct {
	Terminal bool `yaml:"terminal"`
}

// ColorsConfig names the colours used to draw the board.
type ColorsConfig struct {
	Head   string `yaml:"head"`
	Body   string `yaml:"body"`
	Reward string `yaml:"reward"`
	Border string `yaml:"border"`
}

// Palette is ColorsConfig resolved to screen colours.
type Palette struct {
	Head, Body, Reward, Border core.Color
}

// DefaultSnakeConfig returns the built-in configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Size:  AutoSize,
			Spawn: CenterSpawn,
		},
		Snake: BodyConfig{
			InitialLength:  3,
			MoveEveryTicks: 6,
		},
		Rules: RulesConfig{
			Terminal: true,
		},
		Colors: ColorsConfig{
			Head:   "bright_green",
			Body:   "green",
			Reward: "bright_red",
			Border: "gray",
		},
	}
}

// Validate checks the configuration for values the game cannot run with.
func (c SnakeConfig) Validate() error {
	var errs []error

	if c.Grid.Size != AutoSize && c.Grid.Size < 2 {
		errs = append(errs, fmt.Errorf("grid.size %d must be 0 or at least 2", c.Grid.Size))
	}
	if c.Snake.InitialLength < 2 {
		errs = append(errs, fmt.Errorf("snake.initial_length %d must be at least 2", c.Snake.InitialLength))
	}
	if c.Snake.MoveEveryTicks < 1 {
		errs = append(errs, fmt.Errorf("snake.move_every_ticks %d must be at least 1", c.Snake.MoveEveryTicks))
	}
	if c.Grid.Spawn < CenterSpawn {
		errs = append(errs, fmt.Errorf("grid.spawn %d must be -1 or a cell index", c.Grid.Spawn))
	}
	if c.Grid.Size >= 2 && c.Snake.InitialLength >= 2 && c.Grid.Spawn >= CenterSpawn {
		if _, err := c.SpawnFor(c.Grid.Size); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := c.Palette(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid snake config: %w", errors.Join(errs...))
	}
	return nil
}

// SpawnFor resolves the head cell on a board of the given size. The body
// extends towards lower indices, so the spawn must be at least
// initial_length-1, and the body must leave room on the board.
func (c SnakeConfig) SpawnFor(size int) (int, error) {
	capacity := size * size
	length := c.Snake.InitialLength
	if length >= capacity {
		return 0, fmt.Errorf("snake.initial_length %d does not fit a %dx%d board", length, size, size)
	}

	spawn := c.Grid.Spawn
	if spawn == CenterSpawn {
		spawn = (size/2)*size + size/2
		spawn = max(spawn, length-1)
	}
	if spawn < length-1 || spawn >= capacity {
		return 0, fmt.Errorf("grid.spawn %d must be in [%d, %d) for initial_length %d", spawn, length-1, capacity, length)
	}
	return spawn, nil
}

// Palette resolves colour names. Empty names fall back to the default colour.
func (c SnakeConfig) Palette() (Palette, error) {
	var p Palette
	fields := []struct {
		key  string
		name string
		dst  *core.Color
	}{
		{"colors.head", c.Colors.Head, &p.Head},
		{"colors.body", c.Colors.Body, &p.Body},
		{"colors.reward", c.Colors.Reward, &p.Reward},
		{"colors.border", c.Colors.Border, &p.Border},
	}
	for _, f := range fields {
		if f.name == "" {
			continue
		}
		col, ok := core.ParseColor(f.name)
		if !ok {
			return p, fmt.Errorf("%s: unknown colour %q", f.key, f.name)
		}
		*f.dst = col
	}
	return p, nil
}
