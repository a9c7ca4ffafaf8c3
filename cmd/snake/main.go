// snake is a wraparound snake game for the terminal.
//
// Usage:
//
//	snake play [variant]     - Play in this terminal (default: snake)
//	snake sim                - Run a headless game and print the board
//	snake scores [variant]   - Show high scores
//	snake serve              - Start the SSH server
//	snake list               - List variants
//
// Global flags:
//
//	--fps <rate>        - Tick rate (default: 60)
//	--seed <value>      - RNG seed for reproducible games
//	--db <path>         - Scores database (default: ~/.snake/scores.db)
//	--log-level <level> - debug, info, warn or error
//
// SNAKE_DB, SNAKE_CONFIG and SNAKE_LOG_LEVEL, read from the environment or
// a .env file, replace the built-in flag defaults.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wrapsnake/internal/config"
	_ "github.com/vovakirdan/wrapsnake/internal/games/snake"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	logger *log.Logger
)

// env supplies flag defaults; it is read before any flag is defined.
var env, envErr = config.LoadEnv(config.Env{
	DBPath:   "~/.snake/scores.db",
	LogLevel: "info",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Wraparound snake in your terminal",
	Long: `Snake on a board whose edges wrap around: leave on the right, come back
on the left. Eat to grow; in the standard variant, running into yourself
ends the run and filling the board wins it.

Examples:
  snake play
  snake play snake_classic --size 12
  snake sim --size 8 --steps 40 --moves rrdd --frames
  snake scores --tui
  snake serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "snake",
			Level:           level,
		})
		if envErr != nil {
			logger.Warn("could not load .env", "error", envErr)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", env.DBPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// variantArg returns the variant named on the command line, or the default.
func variantArg(args []string) string {
	if len(args) == 0 {
		return "snake"
	}
	return args[0]
}
