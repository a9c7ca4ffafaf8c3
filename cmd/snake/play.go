package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wrapsnake/internal/config"
	"github.com/vovakirdan/wrapsnake/internal/core"
	"github.com/vovakirdan/wrapsnake/internal/games/snake"
	"github.com/vovakirdan/wrapsnake/internal/platform/tui"
	"github.com/vovakirdan/wrapsnake/internal/registry"
	"github.com/vovakirdan/wrapsnake/internal/storage"
)

var (
	flagConfig string
	flagSize   int
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal. The variant defaults to "snake".

Controls:
  Arrows/WASD/HJKL  - Steer (the first key starts the game)
  Enter/Space       - Start
  P                 - Pause
  R                 - Restart (after game over)
  Ctrl+S            - Save a text screenshot to ~/.snake/screenshots
  Q/Ctrl+C          - Quit

Configuration is read from --config, then ~/.snake/configs/snake.yaml, then
./configs/snake.yaml, then the built-in defaults.

Examples:
  snake play
  snake play snake_classic
  snake play --size 16
  snake play --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", env.ConfigPath, "Path to custom config YAML")
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Board edge length (0 = from config)")
}

// loadConfig reads the game config through the search order and applies
// --size when the command has it and it was given.
func loadConfig(cmd *cobra.Command) (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return config.SnakeConfig{}, err
	}
	if cmd.Flags().Changed("size") {
		cfg.Grid.Size = flagSize
		if err := cfg.Validate(); err != nil {
			return config.SnakeConfig{}, err
		}
	}
	return cfg, nil
}

// useConfig loads the config and makes it the one registry-created games use.
func useConfig(cmd *cobra.Command) (config.SnakeConfig, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return config.SnakeConfig{}, err
	}
	snake.SetDefaultConfig(cfg)
	return cfg, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := variantArg(args)
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q; run 'snake list' to see variants", gameID)
	}

	cfg, err := useConfig(cmd)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	if size := cfg.Grid.Size; size != config.AutoSize && (size*2+2 > width || size+4 > height) {
		logger.Warn("board does not fit the terminal", "size", size, "width", width, "height", height)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "error", err)
		store = nil
	}

	runErr := tui.Run(game, store, core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}, tui.WithLogger(logger))

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}
