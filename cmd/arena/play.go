package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rps-arena/internal/core"
	"github.com/vovakirdan/rps-arena/internal/platform/tui"
	"github.com/vovakirdan/rps-arena/internal/registry"
	"github.com/vovakirdan/rps-arena/internal/sim"
	"github.com/vovakirdan/rps-arena/internal/storage"
)

var (
	flagScenario  string
	flagRock      int
	flagPaper     int
	flagScissors  int
	flagAutoStart bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Watch a scenario play out",
	Long: `Open the arena with the given scenario and watch it play out.

Population flags override the scenario's starting counts. Without
--scenario or any population flag the config's spawn counts are used.

Controls:
  Space/Enter  - Start (or start a new match after game over)
  P            - Pause/resume
  R            - Reshuffle with a new seed
  Esc/B        - Leave
  Q/Ctrl+C     - Quit

Examples:
  arena play
  arena play --scenario swarm
  arena play --rock 40 --paper 5 --scissors 5 --seed 12
  arena play --theme letters --auto`,
	Run: runPlay,
}

func init() {
	addPopulationFlags(playCmd)
	playCmd.Flags().BoolVar(&flagAutoStart, "auto", false, "Start the match immediately")
}

// addPopulationFlags registers the scenario selection flags on cmd.
func addPopulationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagScenario, "scenario", "", "Scenario ID (see 'arena scenarios')")
	cmd.Flags().IntVar(&flagRock, "rock", -1, "Starting rocks (overrides scenario)")
	cmd.Flags().IntVar(&flagPaper, "paper", -1, "Starting papers (overrides scenario)")
	cmd.Flags().IntVar(&flagScissors, "scissors", -1, "Starting scissors (overrides scenario)")
}

// resolveScenario builds the scenario selected by the population flags.
func resolveScenario(spawn sim.Counts) (registry.Scenario, error) {
	sc := registry.Scenario{ID: "custom", Title: "Custom", Population: spawn}
	if flagScenario != "" {
		var err error
		sc, err = registry.Get(flagScenario)
		if err != nil {
			return sc, err
		}
	}

	overridden := false
	if flagRock >= 0 {
		sc.Population.Rock, overridden = flagRock, true
	}
	if flagPaper >= 0 {
		sc.Population.Paper, overridden = flagPaper, true
	}
	if flagScissors >= 0 {
		sc.Population.Scissors, overridden = flagScissors, true
	}
	if overridden && flagScenario != "" {
		sc.Title += " (custom)"
	}
	return sc, nil
}

// terminalConfig returns the runtime config for the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, _ []string) {
	arenaCfg := loadArena()
	theme := loadTheme()

	spawn := arenaCfg.Spawn
	scenario, err := resolveScenario(sim.Counts{Rock: spawn.Rock, Paper: spawn.Paper, Scissors: spawn.Scissors})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'arena scenarios' to see available scenarios.")
		os.Exit(1)
	}

	logger, closeLog := sessionLogger()
	defer closeLog()

	// Open match storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match database: %v\n", err)
		// Continue without storage - the arena still works
		store = nil
	}

	runErr := tui.Run(tui.ArenaOptions{
		Config:    arenaCfg,
		Runtime:   terminalConfig(),
		Scenario:  scenario,
		Store:     store,
		Logger:    logger,
		Theme:     theme,
		Source:    "play",
		AutoStart: flagAutoStart,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fail("running arena: %v", runErr)
	}
}
