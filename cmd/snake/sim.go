package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wrapsnake/internal/config"
	"github.com/vovakirdan/wrapsnake/internal/games/snake"
	"github.com/vovakirdan/wrapsnake/internal/platform/headless"
	"github.com/vovakirdan/wrapsnake/internal/registry"
)

// defaultSimSize is used when neither --size nor the config fixes the board.
const defaultSimSize = 10

var (
	flagSimSteps  int
	flagSimSize   int
	flagSimSpawn  int
	flagSimMoves  string
	flagSimFrames bool
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Run a headless game",
	Long: `Play a game without a terminal UI, one move per step, and print the
final board. Moves are one character per step: u, d, l, r turn and '.'
keeps the heading. Growth and status changes are logged.

Board legend: H head, o body, * reward, . empty.

Examples:
  snake sim --size 8 --steps 30
  snake sim --size 6 --spawn 14 --moves rr.dd.ll --frames
  snake sim snake_classic --seed 42 --steps 200`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimSteps, "steps", 100, "Number of steps to run")
	simCmd.Flags().IntVar(&flagSimSize, "size", defaultSimSize, "Board edge length (overrides config; 10 when config fits to screen)")
	simCmd.Flags().IntVar(&flagSimSpawn, "spawn", config.CenterSpawn, "Head cell at spawn (-1 = centre)")
	simCmd.Flags().StringVar(&flagSimMoves, "moves", "", "Moves, one per step (u/d/l/r/.)")
	simCmd.Flags().BoolVar(&flagSimFrames, "frames", false, "Print the board after every step")
	simCmd.Flags().StringVar(&flagConfig, "config", env.ConfigPath, "Path to custom config YAML")
}

func runSim(cmd *cobra.Command, args []string) error {
	gameID := variantArg(args)
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q; run 'snake list' to see variants", gameID)
	}

	cfg, err := simConfig(cmd)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	out := cmd.OutOrStdout()
	logger.Debug("simulating", "variant", gameID, "size", cfg.Grid.Size, "steps", flagSimSteps, "seed", seed)

	res, err := headless.Run(headless.Options{
		Variant: snake.Variant(gameID),
		Config:  cfg,
		Steps:   flagSimSteps,
		Seed:    seed,
		Moves:   flagSimMoves,
		Frames:  flagSimFrames,
		Out:     out,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, res.Board)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "steps %d  score %d  length %d  status %s  heading %s  seed %d\n",
		res.Steps, res.Final.Score, len(res.Final.Body), res.Final.Status, res.Final.Heading, seed)
	if res.Rejected > 0 {
		fmt.Fprintf(out, "%d turn(s) rejected as reversals\n", res.Rejected)
	}
	return nil
}

// simConfig loads the config and applies --size and --spawn only when given.
// A config that fits the board to the screen gets defaultSimSize.
func simConfig(cmd *cobra.Command) (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return config.SnakeConfig{}, err
	}

	switch {
	case cmd.Flags().Changed("size"):
		cfg.Grid.Size = flagSimSize
	case cfg.Grid.Size == config.AutoSize:
		cfg.Grid.Size = defaultSimSize
	}
	if cmd.Flags().Changed("spawn") {
		cfg.Grid.Spawn = flagSimSpawn
	}
	return cfg, nil
}
