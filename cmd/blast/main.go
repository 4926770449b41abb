// blast is a tile-popping puzzle for the terminal.
//
// Usage:
//
//	blast list               - List available modes
//	blast play [mode]        - Play a mode (menu when no mode is given)
//	blast menu               - Start menu to pick modes interactively
//	blast serve              - Start SSH server for remote play
//	blast api                - Start the HTTP/WebSocket API
//	blast scores [mode]      - Show high scores
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.blast/results.db)
//	--config <path>       - Load a custom blast.yaml
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/games/blast"
	"github.com/vovakirdan/tui-blast/internal/registry"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

var (
	logger     = log.New(io.Discard)
	logFile    *os.File
	baseConfig = config.DefaultBlastConfig()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blast",
	Short: "Blast - pop tile groups in your terminal",
	Long: `Blast is a tap-to-pop tile puzzle. Tap a group of two or more
same-coloured pieces to clear it, break the bricks next to it and earn
bombs and chain items for bigger groups. Clear every brick before the
moves run out.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  api      - Start the HTTP/WebSocket API
  scores   - View high scores

Examples:
  blast play
  blast play blast_zen --seed 42
  blast serve --ssh :2222
  blast api --addr :8080
  blast scores blast`,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blast/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom blast.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup builds the logger and loads the board configuration before any
// subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	// Interactive commands own the terminal, so they only log to a file.
	var out io.Writer = os.Stderr
	if interactive(cmd, args) {
		out = io.Discard
	}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	}
	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           level,
		Prefix:          "blast",
	})

	cfg, err := config.LoadBlast(flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	baseConfig = cfg

	defaults := cfg
	config.ApplyBlastPreset(&defaults, preset)
	blast.SetConfig(defaults)
	blast.SetLogger(logger)
	return nil
}

func teardown(_ *cobra.Command, _ []string) {
	if logFile != nil {
		_ = logFile.Close()
	}
}

func interactive(cmd *cobra.Command, args []string) bool {
	switch cmd.Name() {
	case "play", "menu":
		return true
	case "scores":
		return len(args) == 0
	default:
		return false
	}
}

// newGame builds a game for a mode with a difficulty preset applied over the
// loaded configuration. An empty difficulty falls back to --difficulty.
func newGame(gameID, difficulty string) (registry.Game, error) {
	if !registry.Exists(gameID) {
		return nil, fmt.Errorf("unknown mode %q", gameID)
	}
	if difficulty == "" {
		difficulty = flagDifficulty
	}
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return nil, err
	}
	cfg := baseConfig
	config.ApplyBlastPreset(&cfg, preset)
	return blast.NewWithConfig(blast.Mode(gameID), cfg, logger), nil
}

// optionalResults opens the results database. Games still run without one,
// so failures are only logged.
func optionalResults() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("results will not be saved", "db", flagDBPath, "error", err)
		return nil
	}
	return store
}

// gameSeed returns --seed, or a time-based seed when it is zero.
func gameSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
