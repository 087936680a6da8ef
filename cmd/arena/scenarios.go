package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rps-arena/internal/registry"
)

var scenariosCmd = &cobra.Command{
	Use:     "scenarios",
	Aliases: []string{"list"},
	Short:   "List all available scenarios",
	Long:    `Shows the built-in scenarios and those defined in the arena config.`,
	Run:     runScenarios,
}

func runScenarios(_ *cobra.Command, _ []string) {
	loadArena()
	scenarios := registry.List()

	if len(scenarios) == 0 {
		fmt.Println("No scenarios available.")
		return
	}

	fmt.Println("Available scenarios:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, s := range scenarios {
		maxIDLen = max(maxIDLen, len(s.ID))
		maxTitleLen = max(maxTitleLen, len(s.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %5s  %5s  %8s\n", maxIDLen, "ID", maxTitleLen, "Title", "Rock", "Paper", "Scissors")
	fmt.Printf("  %-*s  %-*s  %5s  %5s  %8s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "-----", "--------")

	for _, s := range scenarios {
		p := s.Population
		fmt.Printf("  %-*s  %-*s  %5d  %5d  %8d\n", maxIDLen, s.ID, maxTitleLen, s.Title, p.Rock, p.Paper, p.Scissors)
	}

	fmt.Println()
	fmt.Println("Run 'arena play --scenario <id>' to watch one.")
}
