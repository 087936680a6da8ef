package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rps-arena/internal/platform/tui"
	"github.com/vovakirdan/rps-arena/internal/registry"
	"github.com/vovakirdan/rps-arena/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arena with a scenario picker menu",
	Long: `Start the arena in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a scenario.
Leaving a match returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select scenario
  Tab          - Match history
  Q            - Quit

Examples:
  arena menu
  arena menu --fps 30
  arena menu --db ./arena.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	arenaCfg := loadArena()
	theme := loadTheme()

	logger, closeLog := sessionLogger()
	defer closeLog()

	// Open match storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match database: %v\n", err)
		store = nil
	}

	cfg := terminalConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsHistory {
			goBack, histErr := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from history
		}

		scenario, err := registry.Get(menuResult.ScenarioID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		// Fresh seed for each match unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(tui.ArenaOptions{
			Config:   arenaCfg,
			Runtime:  cfg,
			Scenario: scenario,
			Store:    store,
			Logger:   logger,
			Theme:    theme,
			Source:   "play",
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running arena: %v\n", err)
		}
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
