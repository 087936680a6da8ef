// Package registry provides a global registry of arena scenarios.
// Built-in scenarios register themselves in init(); scenarios from the
// config file are added at startup, so the platform can list and start
// them without hardcoded populations.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/rps-arena/internal/config"
	"github.com/vovakirdan/rps-arena/internal/sim"
)

// Scenario is a named starting population.
type Scenario struct {
	// ID is a unique identifier (e.g., "classic", "duel").
	// Used for CLI flags and match history.
	ID string

	// Title is a human-readable name for display.
	Title string

	// Population is passed to the simulation's Init.
	Population sim.Counts
}

var (
	scenarios = make(map[string]Scenario)
	mu        sync.RWMutex
)

func init() {
	Register(Scenario{ID: "classic", Title: "Classic", Population: sim.Counts{Rock: 20, Paper: 20, Scissors: 20}})
	Register(Scenario{ID: "duel", Title: "Duel", Population: sim.Counts{Rock: 1, Paper: 1, Scissors: 1}})
	Register(Scenario{ID: "swarm", Title: "Swarm", Population: sim.Counts{Rock: 60, Paper: 60, Scissors: 60}})
	Register(Scenario{ID: "underdog", Title: "Underdog Rock", Population: sim.Counts{Rock: 5, Paper: 25, Scissors: 25}})
}

// Register adds a scenario to the registry.
// Panics if a scenario with the same ID is already registered.
func Register(s Scenario) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := scenarios[s.ID]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", s.ID))
	}
	if s.Title == "" {
		s.Title = s.ID
	}
	scenarios[s.ID] = s
}

// RegisterConfig adds the scenarios declared in the config file.
// A config scenario with a built-in ID replaces the built-in.
func RegisterConfig(list []config.ScenarioConfig) {
	mu.Lock()
	defer mu.Unlock()

	for _, c := range list {
		title := c.Title
		if title == "" {
			title = c.ID
		}
		scenarios[c.ID] = Scenario{
			ID:         c.ID,
			Title:      title,
			Population: sim.Counts{Rock: c.Rock, Paper: c.Paper, Scissors: c.Scissors},
		}
	}
}

// List returns all registered scenarios, sorted by ID.
func List() []Scenario {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Scenario, 0, len(scenarios))
	for _, s := range scenarios {
		result = append(result, s)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the scenario with the given ID.
// Returns an error if the ID is not registered.
func Get(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := scenarios[id]
	if !ok {
		return Scenario{}, fmt.Errorf("registry: unknown scenario %q", id)
	}
	return s, nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := scenarios[id]
	return ok
}
