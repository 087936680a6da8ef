package registry

import (
	"testing"

	"github.com/vovakirdan/rps-arena/internal/config"
	"github.com/vovakirdan/rps-arena/internal/sim"
)

func TestBuiltinScenarios(t *testing.T) {
	s, err := Get("classic")
	if err != nil {
		t.Fatalf("Get(classic) failed: %v", err)
	}
	if s.Population != (sim.Counts{Rock: 20, Paper: 20, Scissors: 20}) {
		t.Errorf("classic population = %+v", s.Population)
	}
	if !Exists("duel") || !Exists("swarm") {
		t.Error("expected duel and swarm to be registered")
	}
}

func TestListSorted(t *testing.T) {
	list := List()
	if len(list) < 4 {
		t.Fatalf("expected at least 4 scenarios, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("no-such-scenario"); err == nil {
		t.Error("expected error for unknown scenario")
	}
	if Exists("no-such-scenario") {
		t.Error("Exists() = true for unknown scenario")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register(Scenario{ID: "classic"})
}

func TestRegisterConfig(t *testing.T) {
	RegisterConfig([]config.ScenarioConfig{
		{ID: "test-lopsided", Rock: 1, Paper: 2, Scissors: 40},
	})

	s, err := Get("test-lopsided")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if s.Title != "test-lopsided" {
		t.Errorf("title = %q, expected ID fallback", s.Title)
	}
	if s.Population != (sim.Counts{Rock: 1, Paper: 2, Scissors: 40}) {
		t.Errorf("population = %+v", s.Population)
	}
}
