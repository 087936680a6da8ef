package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rps-arena/internal/registry"
	"github.com/vovakirdan/rps-arena/internal/storage"
)

var (
	flagHistoryScenario string
	flagHistoryLimit    int
	flagHistoryClear    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent matches and win tallies",
	Long: `Display the most recent matches and how often each kind has won.

Examples:
  arena history
  arena history --scenario duel
  arena history --limit 50
  arena history --scenario swarm --clear`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryScenario, "scenario", "", "Only show matches of this scenario")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of matches to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the matching history instead of showing it")
}

func runHistory(_ *cobra.Command, _ []string) {
	loadArena()

	scenario := flagHistoryScenario
	title := "All scenarios"
	if scenario != "" {
		sc, err := registry.Get(scenario)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'arena scenarios' to see available scenarios.")
			os.Exit(1)
		}
		title = sc.Title
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening match database: %v", err)
	}
	defer store.Close()

	if flagHistoryClear {
		n, err := store.ClearMatches(scenario)
		if err != nil {
			store.Close()
			fail("clearing history: %v", err)
		}
		fmt.Printf("Deleted %d matches.\n", n)
		return
	}

	matches, err := store.RecentMatches(scenario, flagHistoryLimit)
	if err != nil {
		store.Close()
		fail("retrieving matches: %v", err)
	}
	tally, err := store.WinTally(scenario)
	if err != nil {
		store.Close()
		fail("retrieving tally: %v", err)
	}

	fmt.Printf("Match History - %s\n", title)
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Run 'arena play' or 'arena run' to record the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-10s  %-11s  %-9s  %-8s  %s\n", "Date", "Scenario", "R/P/S", "Winner", "Time", "Source")
	fmt.Printf("  %-16s  %-10s  %-11s  %-9s  %-8s  %s\n", "----", "--------", "-----", "------", "----", "------")

	for _, m := range matches {
		winner := m.Winner
		if winner == "" || winner == "none" {
			winner = "-"
		}
		fmt.Printf("  %-16s  %-10s  %-11s  %-9s  %-8s  %s\n",
			m.CreatedAt().Format("2006-01-02 15:04"),
			m.Scenario,
			fmt.Sprintf("%d/%d/%d", m.Rock, m.Paper, m.Scissors),
			winner,
			fmt.Sprintf("%.1fs", m.Duration().Seconds()),
			m.Source,
		)
	}

	// Show tally
	fmt.Println()
	fmt.Printf("Wins: rock %d, paper %d, scissors %d (%d unfinished, %d total)\n",
		tally.Rock, tally.Paper, tally.Scissors, tally.Unfinished, tally.Total())
}
