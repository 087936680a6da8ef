package sim

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/rps-arena/internal/config"
	"github.com/vovakirdan/rps-arena/internal/core"
)

const frame = time.Second / 60

type recorder struct {
	stats    []Stats
	gameOver []Kind
	frames   int
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnStats:    func(s Stats) { r.stats = append(r.stats, s) },
		OnGameOver: func(k Kind) { r.gameOver = append(r.gameOver, k) },
		OnFrame:    func(Snapshot) { r.frames++ },
	}
}

func (r *recorder) lastStats() Stats {
	if len(r.stats) == 0 {
		return Stats{}
	}
	return r.stats[len(r.stats)-1]
}

func newTestSim(w, h float64, seed int64) (*Simulation, *ManualScheduler, *recorder) {
	sched := NewManualScheduler(time.Unix(0, 0))
	rec := &recorder{}
	s := New(config.DefaultArenaConfig(), w, h, Options{
		Scheduler: sched,
		Hooks:     rec.hooks(),
		Seed:      seed,
	})
	return s, sched, rec
}

func TestInitPopulation(t *testing.T) {
	s, _, rec := newTestSim(800, 600, 1)
	s.Init(Counts{Rock: 3, Paper: 4, Scissors: 5})

	if s.Len() != 12 {
		t.Fatalf("expected 12 entities, got %d", s.Len())
	}
	want := []Kind{Rock, Rock, Rock, Paper, Paper, Paper, Paper, Scissors, Scissors, Scissors, Scissors, Scissors}
	for i, k := range want {
		e := s.Entity(i)
		if e.Kind != k {
			t.Errorf("entity %d kind = %s, expected %s", i, e.Kind, k)
		}
		if e.Radius != 19 {
			t.Errorf("entity %d radius = %f, expected 19", i, e.Radius)
		}
		if math.Abs(e.Speed()-60) > 1e-9 {
			t.Errorf("entity %d speed = %f, expected 60", i, e.Speed())
		}
		if e.Pos.X < 20 || e.Pos.X > 780 || e.Pos.Y < 20 || e.Pos.Y > 580 {
			t.Errorf("entity %d spawned outside margins at %+v", i, e.Pos)
		}
	}

	if s.State() != StateIdle {
		t.Errorf("state = %s, expected idle", s.State())
	}
	if got := rec.lastStats(); got.Counts != (Counts{Rock: 3, Paper: 4, Scissors: 5}) || got.Winner != None {
		t.Errorf("published stats = %+v", got)
	}
}

func TestInitNegativeCounts(t *testing.T) {
	s, _, _ := newTestSim(400, 300, 1)
	s.Init(Counts{Rock: -3, Paper: 2, Scissors: 0})

	if s.Len() != 2 {
		t.Fatalf("expected 2 entities, got %d", s.Len())
	}
	if s.Stats().Counts != (Counts{Paper: 2}) {
		t.Errorf("stats = %+v", s.Stats())
	}
	if s.Initial() != (Counts{Paper: 2}) {
		t.Errorf("initial = %+v", s.Initial())
	}
}

func TestInitSmallArenaSpawnsAtCenter(t *testing.T) {
	s, _, _ := newTestSim(30, 30, 1)
	s.Init(Counts{Rock: 1})
	if e := s.Entity(0); e.Pos != core.V(15, 15) {
		t.Errorf("spawn = %+v, expected arena center", e.Pos)
	}
}

func TestStartSingleKindEndsImmediately(t *testing.T) {
	s, sched, rec := newTestSim(800, 600, 1)
	s.Init(Counts{Rock: 5})
	s.Start()

	if s.State() != StateTerminal {
		t.Fatalf("state = %s, expected terminal", s.State())
	}
	if len(rec.gameOver) != 1 || rec.gameOver[0] != Rock {
		t.Errorf("game over notifications = %v, expected [rock]", rec.gameOver)
	}
	if sched.Pending() != 0 {
		t.Errorf("expected no pending frame, got %d", sched.Pending())
	}
	if rec.frames != 0 {
		t.Errorf("expected no frames, got %d", rec.frames)
	}
	if s.Stats().Winner != Rock {
		t.Errorf("Stats().Winner = %s, expected rock", s.Stats().Winner)
	}

	// Terminal is sticky until Init
	s.Start()
	sched.Advance(frame)
	if len(rec.gameOver) != 1 || s.Ticks() != 0 {
		t.Error("Start after game over must do nothing")
	}
}

func TestStartEmptyArenaKeepsRunning(t *testing.T) {
	s, sched, rec := newTestSim(800, 600, 1)
	s.Init(Counts{})
	s.Start()

	if s.State() != StateRunning {
		t.Fatalf("state = %s, expected running", s.State())
	}
	sched.Advance(frame)
	sched.Advance(frame)
	if s.Ticks() != 2 || len(rec.gameOver) != 0 {
		t.Errorf("ticks = %d, game over = %v", s.Ticks(), rec.gameOver)
	}
}

func TestStartTwiceSchedulesOneFrame(t *testing.T) {
	s, sched, _ := newTestSim(800, 600, 1)
	s.Init(Counts{Rock: 2, Paper: 2})
	s.Start()
	s.Start()

	if sched.Pending() != 1 {
		t.Errorf("expected 1 pending frame, got %d", sched.Pending())
	}
}

func TestStopIsIdempotentAndCancelsFrame(t *testing.T) {
	s, sched, rec := newTestSim(800, 600, 1)
	s.Init(Counts{Rock: 3, Paper: 3, Scissors: 3})
	s.Start()
	sched.Advance(frame)
	ticks := s.Ticks()

	s.Stop()
	s.Stop()

	if s.State() != StateIdle {
		t.Errorf("state = %s, expected idle", s.State())
	}
	if sched.Pending() != 0 {
		t.Errorf("expected pending frame to be cancelled, got %d", sched.Pending())
	}
	sched.Advance(frame)
	if s.Ticks() != ticks || rec.frames != int(ticks) {
		t.Errorf("simulation stepped after Stop: ticks %d -> %d", ticks, s.Ticks())
	}

	// Resume
	s.Start()
	sched.Advance(frame)
	if s.Ticks() != ticks+1 {
		t.Errorf("expected resume to step once, ticks = %d", s.Ticks())
	}
}

func TestStopBeforeStart(t *testing.T) {
	s, sched, _ := newTestSim(800, 600, 1)
	s.Stop()
	s.Init(Counts{Rock: 1, Paper: 1})
	s.Stop()
	if s.State() != StateIdle || sched.Pending() != 0 {
		t.Errorf("state = %s, pending = %d", s.State(), sched.Pending())
	}
}

func TestInitWhileRunningStops(t *testing.T) {
	s, sched, _ := newTestSim(800, 600, 1)
	s.Init(Counts{Rock: 3, Paper: 3, Scissors: 3})
	s.Start()
	s.Init(Counts{Rock: 3, Paper: 3, Scissors: 3})

	if s.State() != StateIdle || sched.Pending() != 0 {
		t.Errorf("state = %s, pending = %d", s.State(), sched.Pending())
	}
}

func TestRockConvertsScissorsOnFirstStep(t *testing.T) {
	s, sched, rec := newTestSim(400, 300, 1)
	s.Place([]Entity{
		{Pos: core.V(100, 100), Vel: core.V(60, 0), Kind: Rock, Radius: 19},
		{Pos: core.V(110, 100), Vel: core.V(-60, 0), Kind: Scissors, Radius: 19},
	})
	energy := func() float64 {
		a, b := s.Entity(0), s.Entity(1)
		return a.Vel.Dot(a.Vel) + b.Vel.Dot(b.Vel)
	}
	before := energy()

	s.Start()
	if s.State() != StateRunning {
		t.Fatalf("two kinds should keep running, state = %s", s.State())
	}

	sched.Advance(frame)

	if got := energy(); math.Abs(got-before) > 1e-9 {
		t.Errorf("kinetic energy %f -> %f", before, got)
	}
	if a, b := s.Entity(0), s.Entity(1); a.Vel.X >= 0 || b.Vel.X <= 0 {
		t.Errorf("head-on pair should rebound, velocities %+v %+v", a.Vel, b.Vel)
	}

	if got := rec.lastStats(); got.Counts != (Counts{Rock: 2}) {
		t.Errorf("stats = %+v, expected rock=2", got)
	}
	if len(rec.gameOver) != 1 || rec.gameOver[0] != Rock {
		t.Errorf("game over = %v, expected [rock]", rec.gameOver)
	}
	if s.State() != StateTerminal || sched.Pending() != 0 {
		t.Errorf("state = %s, pending = %d", s.State(), sched.Pending())
	}
	if rec.frames != 1 {
		t.Errorf("expected the final frame to be rendered once, got %d", rec.frames)
	}
}

func TestConversionPublishesStats(t *testing.T) {
	s, _, rec := newTestSim(400, 300, 1)
	s.Place([]Entity{
		{Pos: core.V(100, 100), Kind: Paper, Radius: 19},
		{Pos: core.V(110, 100), Kind: Rock, Radius: 19},
		{Pos: core.V(300, 200), Kind: Scissors, Radius: 19},
	})
	published := len(rec.stats)

	s.Tick(1.0 / 60.0)

	if len(rec.stats) != published+1 {
		t.Fatalf("expected one stats update, got %d", len(rec.stats)-published)
	}
	if got := rec.lastStats(); got.Counts != (Counts{Paper: 2, Scissors: 1}) || got.Winner != None {
		t.Errorf("stats = %+v", got)
	}
	if s.State() == StateTerminal {
		t.Error("two kinds remain, match should continue")
	}
}

func TestConservationAndContainment(t *testing.T) {
	const w, h = 800.0, 600.0
	s, _, _ := newTestSim(w, h, 42)
	s.Init(Counts{Rock: 20, Paper: 20, Scissors: 20})

	energy := func() float64 {
		sum := 0.0
		for i := range s.Len() {
			e := s.Entity(i)
			sum += e.Vel.LenSq()
		}
		return sum
	}
	start := energy()

	for step := range 600 {
		s.Tick(1.0 / 60.0)

		if got := s.Stats().Total(); got != 60 {
			t.Fatalf("step %d: population = %d, expected 60", step, got)
		}
		for i := range s.Len() {
			e := s.Entity(i)
			if e.Pos.X < e.Radius-eps || e.Pos.X > w-e.Radius+eps ||
				e.Pos.Y < e.Radius-eps || e.Pos.Y > h-e.Radius+eps {
				t.Fatalf("step %d: entity %d outside arena at %+v", step, i, e.Pos)
			}
		}
		if got := energy(); math.Abs(got-start) > 1e-6*start {
			t.Fatalf("step %d: kinetic energy %f -> %f", step, start, got)
		}
	}
}

func TestDeterministicBySeed(t *testing.T) {
	run := func(seed int64) Snapshot {
		s, _, _ := newTestSim(800, 600, seed)
		s.Init(Counts{Rock: 15, Paper: 15, Scissors: 15})
		for range 300 {
			s.Tick(1.0 / 60.0)
		}
		return s.Snapshot()
	}

	a, b := run(99), run(99)
	if a.Hash() != b.Hash() {
		t.Errorf("same seed produced different states: %d vs %d", a.Hash(), b.Hash())
	}
	if c := run(100); c.Hash() == a.Hash() {
		t.Error("different seeds produced identical states")
	}
}

func TestTickDeltaClamping(t *testing.T) {
	place := func(s *Simulation) {
		s.Place([]Entity{
			{Pos: core.V(100, 100), Vel: core.V(60, 0), Kind: Rock, Radius: 19},
			{Pos: core.V(300, 200), Vel: core.V(0, 0), Kind: Paper, Radius: 19},
		})
	}
	tests := []struct {
		name  string
		dt    float64
		wantX float64
	}{
		{"zero", 0, 100},
		{"negative", -1, 100},
		{"nan", math.NaN(), 100},
		{"normal", 0.05, 103},
		{"clamped", 10, 106}, // max_frame_delta 0.1
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _, _ := newTestSim(800, 600, 1)
			place(s)
			s.Tick(tc.dt)
			if got := s.Entity(0).Pos.X; !near(got, tc.wantX) {
				t.Errorf("x = %f, expected %f", got, tc.wantX)
			}
		})
	}
}

func TestFrameDeltaFromScheduler(t *testing.T) {
	s, sched, _ := newTestSim(800, 600, 1)
	s.Place([]Entity{
		{Pos: core.V(100, 100), Vel: core.V(60, 0), Kind: Rock, Radius: 19},
		{Pos: core.V(300, 200), Kind: Paper, Radius: 19},
	})
	s.Start()
	sched.Advance(50 * time.Millisecond)

	if got := s.Entity(0).Pos.X; !near(got, 103) {
		t.Errorf("x = %f, expected 103 after 50ms", got)
	}
}

func TestResizeAppliesNextStep(t *testing.T) {
	s, _, _ := newTestSim(800, 600, 1)
	s.Place([]Entity{
		{Pos: core.V(500, 500), Vel: core.V(60, 60), Kind: Rock, Radius: 19},
		{Pos: core.V(50, 50), Kind: Paper, Radius: 19},
	})

	s.Resize(100, 100)
	if s.Bounds() != (Bounds{Width: 100, Height: 100}) {
		t.Fatalf("bounds = %+v", s.Bounds())
	}
	if s.Entity(0).Pos != core.V(500, 500) {
		t.Fatal("Resize must not move entities")
	}

	s.Tick(0)
	e := s.Entity(0)
	if !near(e.Pos.X, 81) || !near(e.Pos.Y, 81) {
		t.Errorf("position = %+v, expected (81, 81)", e.Pos)
	}
	if e.Vel != core.V(-60, -60) {
		t.Errorf("velocity = %+v, expected reflected", e.Vel)
	}
}

func TestSetViewportChangesRadius(t *testing.T) {
	s, _, _ := newTestSim(800, 600, 1)
	s.Init(Counts{Rock: 2, Paper: 2})

	s.SetViewport(config.ViewportCompact)
	s.Tick(0)
	for i := range s.Len() {
		if r := s.Entity(i).Radius; r != 14 {
			t.Errorf("entity %d radius = %f, expected 14", i, r)
		}
	}

	s.SetViewport(config.ViewportNormal)
	s.Init(Counts{Scissors: 1})
	if r := s.Entity(0).Radius; r != 19 {
		t.Errorf("radius after Init = %f, expected 19", r)
	}
}

func TestTickAfterGameOverIsNoop(t *testing.T) {
	s, _, rec := newTestSim(400, 300, 1)
	s.Place([]Entity{
		{Pos: core.V(100, 100), Vel: core.V(60, 0), Kind: Rock, Radius: 19},
		{Pos: core.V(110, 100), Kind: Scissors, Radius: 19},
	})
	s.Tick(1.0 / 60.0)
	if s.State() != StateTerminal {
		t.Fatalf("state = %s, expected terminal", s.State())
	}
	snap := s.Snapshot()

	s.Tick(1.0 / 60.0)
	if after := s.Snapshot(); after.Hash() != snap.Hash() {
		t.Error("Tick after game over changed state")
	}
	if len(rec.gameOver) != 1 {
		t.Errorf("game over fired %d times", len(rec.gameOver))
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s, _, _ := newTestSim(400, 300, 1)
	s.Init(Counts{Rock: 1, Paper: 1})
	snap := s.Snapshot()
	snap.Entities[0].X = -1000

	if s.Entity(0).Pos.X == -1000 {
		t.Error("snapshot shares memory with the simulation")
	}
	if snap.Width != 400 || snap.Height != 300 || snap.Counts.Total() != 2 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestRunHeadless(t *testing.T) {
	s, sched, rec := newTestSim(200, 200, 1)
	s.Place([]Entity{
		{Pos: core.V(50, 100), Vel: core.V(60, 0), Kind: Rock, Radius: 19},
		{Pos: core.V(150, 100), Vel: core.V(-60, 0), Kind: Scissors, Radius: 19},
	})

	res := RunHeadless(s, sched, frame, 1000)

	if res.TimedOut {
		t.Fatal("run should finish before the frame budget")
	}
	if res.Stats.Winner != Rock || res.Stats.Rock != 2 {
		t.Errorf("stats = %+v, expected rock to win with 2", res.Stats)
	}
	// Gap of 62 closes at 120 units/s
	if res.Frames < 25 || res.Frames > 40 {
		t.Errorf("frames = %d, expected about 31", res.Frames)
	}
	if res.Elapsed != time.Duration(res.Frames)*frame {
		t.Errorf("elapsed = %v for %d frames", res.Elapsed, res.Frames)
	}
	if len(rec.gameOver) != 1 {
		t.Errorf("game over fired %d times", len(rec.gameOver))
	}
}

func TestRunHeadlessTimeout(t *testing.T) {
	s, sched, _ := newTestSim(400, 400, 1)
	s.Place([]Entity{
		{Pos: core.V(50, 50), Kind: Rock, Radius: 19},
		{Pos: core.V(300, 300), Kind: Scissors, Radius: 19},
	})

	res := RunHeadless(s, sched, frame, 10)

	if !res.TimedOut || res.Frames != 10 {
		t.Errorf("result = %+v, expected timeout after 10 frames", res)
	}
	if s.State() != StateIdle || sched.Pending() != 0 {
		t.Errorf("state = %s, pending = %d after timeout", s.State(), sched.Pending())
	}
	if res.Stats.Winner != None {
		t.Errorf("winner = %s, expected none", res.Stats.Winner)
	}
}

func TestElapsedAccumulatesClampedDelta(t *testing.T) {
	s, _, _ := newTestSim(800, 600, 1)
	s.Place([]Entity{
		{Pos: core.V(100, 100), Kind: Rock, Radius: 19},
		{Pos: core.V(300, 200), Kind: Paper, Radius: 19},
	})
	s.Tick(0.05)
	s.Tick(10)
	s.Tick(-1)

	if d := s.Elapsed() - 150*time.Millisecond; d < -time.Millisecond || d > time.Millisecond {
		t.Errorf("Elapsed() = %v, expected 150ms", s.Elapsed())
	}

	s.Init(Counts{Rock: 1, Paper: 1})
	if s.Elapsed() != 0 {
		t.Errorf("Elapsed() after Init = %v", s.Elapsed())
	}
}

func TestRestartFromGameOverHookKeepsOneFrame(t *testing.T) {
	sched := NewManualScheduler(time.Unix(0, 0))
	restarts := 0
	var s *Simulation
	s = New(config.DefaultArenaConfig(), 800, 600, Options{
		Scheduler: sched,
		Seed:      3,
		Hooks: Hooks{
			OnGameOver: func(Kind) {
				if restarts == 0 {
					restarts++
					s.Init(Counts{Rock: 3, Paper: 3, Scissors: 3})
					s.Start()
				}
			},
		},
	})
	s.Place([]Entity{
		{Pos: core.V(100, 100), Vel: core.V(60, 0), Kind: Rock, Radius: 19},
		{Pos: core.V(110, 100), Vel: core.V(-60, 0), Kind: Scissors, Radius: 19},
	})
	s.Start()
	sched.Advance(frame)

	if restarts != 1 || s.State() != StateRunning {
		t.Fatalf("restarts = %d, state = %s", restarts, s.State())
	}
	if got := sched.Pending(); got != 1 {
		t.Fatalf("pending frames after restart = %d, expected 1", got)
	}

	for want := uint64(1); want <= 3; want++ {
		sched.Advance(frame)
		if s.Ticks() != want {
			t.Fatalf("ticks = %d after %d frames, expected one step per frame", s.Ticks(), want)
		}
	}

	s.Stop()
	if got := sched.Pending(); got != 0 {
		t.Errorf("pending frames after Stop = %d, expected 0", got)
	}
}

func TestStopFromStatsHookSkipsWinCheck(t *testing.T) {
	sched := NewManualScheduler(time.Unix(0, 0))
	var gameOver []Kind
	var s *Simulation
	s = New(config.DefaultArenaConfig(), 400, 300, Options{
		Scheduler: sched,
		Hooks: Hooks{
			OnStats: func(Stats) {
				if s.State() == StateRunning {
					s.Stop()
				}
			},
			OnGameOver: func(k Kind) { gameOver = append(gameOver, k) },
		},
	})
	s.Place([]Entity{
		{Pos: core.V(100, 100), Vel: core.V(60, 0), Kind: Rock, Radius: 19},
		{Pos: core.V(110, 100), Vel: core.V(-60, 0), Kind: Scissors, Radius: 19},
	})
	s.Start()
	sched.Advance(frame)

	if s.State() != StateIdle {
		t.Errorf("state = %s, expected idle after Stop inside the step", s.State())
	}
	if len(gameOver) != 0 {
		t.Errorf("game over notifications = %v, expected none", gameOver)
	}
	if sched.Pending() != 0 {
		t.Errorf("pending frames = %d, expected 0", sched.Pending())
	}

	// The conversion stands; starting again settles the match.
	s.Start()
	if s.State() != StateTerminal || len(gameOver) != 1 || gameOver[0] != Rock {
		t.Errorf("state = %s, game over = %v", s.State(), gameOver)
	}
}
