package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rps-arena/internal/config"
	"github.com/vovakirdan/rps-arena/internal/sim"
	"github.com/vovakirdan/rps-arena/internal/storage"
)

var (
	flagWidth    float64
	flagHeight   float64
	flagMaxTicks int
	flagNoSave   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a match headless and print the result",
	Long: `Run a match without a UI. Frames advance by timing.fixed_step seconds
until a single kind is left or the frame budget runs out.

The result is printed and stored in the match history.

Examples:
  arena run
  arena run --scenario swarm --seed 99
  arena run --rock 1 --paper 1 --scissors 1 --width 200 --height 200
  arena run --max-ticks 600 --no-save`,
	Run: runRun,
}

func init() {
	addPopulationFlags(runCmd)
	runCmd.Flags().Float64Var(&flagWidth, "width", 800, "Arena width in units")
	runCmd.Flags().Float64Var(&flagHeight, "height", 600, "Arena height in units")
	runCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 0, "Frame budget (0 = timing.max_ticks from config)")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the match")
}

func runRun(_ *cobra.Command, _ []string) {
	arenaCfg := loadArena()
	logger := newLogger(os.Stderr, "arena")

	spawn := arenaCfg.Spawn
	scenario, err := resolveScenario(sim.Counts{Rock: spawn.Rock, Paper: spawn.Paper, Scissors: spawn.Scissors})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'arena scenarios' to see available scenarios.")
		os.Exit(1)
	}
	if flagWidth <= 0 || flagHeight <= 0 {
		fail("arena size must be positive, got %vx%v", flagWidth, flagHeight)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	maxTicks := flagMaxTicks
	if maxTicks <= 0 {
		maxTicks = arenaCfg.Timing.MaxTicks
	}
	step := time.Duration(arenaCfg.Timing.FixedStep * float64(time.Second))

	viewport := arenaCfg.Viewport.Classify(int(flagWidth / arenaCfg.Viewport.CellWidth))
	sched := sim.NewManualScheduler(time.Unix(0, 0))
	s := sim.New(arenaCfg, flagWidth, flagHeight, sim.Options{
		Scheduler: sched,
		Viewport:  viewport,
		Seed:      seed,
		Logger:    logger,
	})
	s.Init(scenario.Population)

	logger.Info("running match", "scenario", scenario.ID, "seed", seed, "population", s.Initial().String())
	res := sim.RunHeadless(s, sched, step, maxTicks)

	printResult(scenario.Title, seed, viewport, s.Initial(), res)

	if flagNoSave {
		return
	}
	saveRun(scenario.ID, seed, s, res)
}

// printResult writes a short report of a headless run.
func printResult(title string, seed int64, viewport config.Viewport, initial sim.Counts, res sim.RunResult) {
	fmt.Printf("Scenario: %s\n", title)
	fmt.Printf("Seed:     %d\n", seed)
	fmt.Printf("Viewport: %s\n", viewport)
	fmt.Printf("Start:    %s\n", initial)
	fmt.Printf("End:      %s\n", res.Stats.Counts)
	fmt.Printf("Frames:   %d (%.1fs simulated)\n", res.Frames, res.Elapsed.Seconds())
	fmt.Println()

	switch {
	case res.TimedOut:
		fmt.Println("No winner before the frame budget ran out.")
	case res.Stats.Winner == sim.None:
		fmt.Println("No winner: the arena is empty.")
	default:
		fmt.Printf("Winner: %s\n", res.Stats.Winner)
	}
}

// saveRun records the run in the match history. Storage problems are
// reported but do not fail the command.
func saveRun(scenarioID string, seed int64, s *sim.Simulation, res sim.RunResult) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match database: %v\n", err)
		return
	}
	defer store.Close()

	initial := s.Initial()
	rec, err := store.SaveMatch(storage.MatchRecord{
		Scenario:   scenarioID,
		Seed:       seed,
		Rock:       initial.Rock,
		Paper:      initial.Paper,
		Scissors:   initial.Scissors,
		Winner:     res.Stats.Winner.String(),
		Ticks:      int64(s.Ticks()), //#nosec G115 -- tick count fits in int64
		DurationMs: s.Elapsed().Milliseconds(),
		Source:     "run",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save match: %v\n", err)
		return
	}
	fmt.Printf("Saved as %s\n", rec.MatchID)
}
