// arena is a rock-paper-scissors particle simulation for the terminal.
//
// Usage:
//
//	arena play               - Watch a scenario play out
//	arena menu               - Pick scenarios interactively
//	arena run                - Run a match headless and print the result
//	arena history            - Show recent matches and win tallies
//	arena scenarios          - List available scenarios
//	arena serve              - Start SSH server for remote viewing
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: from config)
//	--seed <value>      - Set RNG seed for reproducible matches
//	--db <path>         - Set database path (default: ~/.arena/arena.db)
//	--config <path>     - Use a custom arena config YAML
//	--theme <name>      - Glyph theme: default, letters, mono
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write interactive session logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rps-arena/internal/config"
	"github.com/vovakirdan/rps-arena/internal/platform/tui"
	"github.com/vovakirdan/rps-arena/internal/registry"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagTheme    string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "RPS Arena - rock, paper and scissors fight it out in your terminal",
	Long: `RPS Arena is a particle simulation where rocks, papers and scissors
bounce around an arena. On contact the winning kind converts the loser,
until a single kind is left.

Available commands:
  play       - Watch a scenario directly
  menu       - Interactive scenario picker
  run        - Run a match without a UI
  history    - View recent matches and win tallies
  scenarios  - Show all scenarios
  serve      - Start SSH server for remote viewing

Examples:
  arena scenarios
  arena play --scenario swarm
  arena play --rock 30 --paper 10 --scissors 10
  arena run --scenario duel --seed 7
  arena serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arena/arena.db", "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Glyph theme: default, letters, mono")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs of interactive sessions to this file")

	// Add subcommands
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadArena loads the arena config and registers the scenarios it defines.
func loadArena() config.ArenaConfig {
	cfg, err := config.LoadArena(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	registry.RegisterConfig(cfg.Scenarios)
	return cfg
}

// loadTheme resolves the --theme flag.
func loadTheme() tui.Theme {
	theme, err := tui.ThemeByName(flagTheme)
	if err != nil {
		fail("%v", err)
	}
	return theme
}

// newLogger builds a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("invalid log level %q", flagLogLevel)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// sessionLogger returns the logger for full-screen commands. Logs go to
// --log-file when set, since anything on stderr would tear the UI.
// The returned function closes the file.
func sessionLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fail("cannot open log file: %v", err)
	}
	return newLogger(f, "arena"), func() { f.Close() }
}
