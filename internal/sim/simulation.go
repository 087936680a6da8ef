package sim

import (
	"io"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rps-arena/internal/config"
	"github.com/vovakirdan/rps-arena/internal/core"
)

// State is the lifecycle state of a simulation.
type State int

const (
	StateIdle     State = iota // Initialized or stopped; no frame pending
	StateRunning               // A frame is pending or executing
	StateTerminal              // One kind remains; only Init leaves this state
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTerminal:
		return "terminal"
	default:
		return "idle"
	}
}

// Bounds is the arena size in simulation units.
type Bounds struct {
	Width  float64
	Height float64
}

// Hooks are the collaborators notified by the simulation.
// Every hook is optional and runs synchronously on the simulation goroutine.
type Hooks struct {
	// OnStats receives the counts after Init and after every conversion.
	OnStats func(Stats)
	// OnGameOver receives the winner once per match.
	OnGameOver func(winner Kind)
	// OnFrame receives a snapshot after every step.
	OnFrame func(Snapshot)
}

// Options configures a Simulation.
type Options struct {
	Scheduler FrameScheduler // Defaults to a ManualScheduler at the zero time
	Hooks     Hooks
	Viewport  config.Viewport
	Seed      int64
	Logger    *log.Logger // Defaults to a discarding logger
}

// Simulation owns the entity population and advances it one step per frame.
// All methods except Resize and SetViewport must be called from the
// goroutine that runs the scheduler's callbacks.
type Simulation struct {
	cfg    config.ArenaConfig
	sched  FrameScheduler
	hooks  Hooks
	logger *log.Logger
	rng    *rand.Rand

	bounds   atomic.Pointer[Bounds]
	viewport atomic.Int32

	entities []Entity
	radius   float64

	state     State
	frame     FrameID
	pending   bool
	lastFrame time.Time
	tick      uint64
	elapsed   float64
	winner    Kind
	initial   Counts
}

// New creates an idle simulation with an empty arena of width x height units.
func New(cfg config.ArenaConfig, width, height float64, opts Options) *Simulation {
	if opts.Scheduler == nil {
		opts.Scheduler = NewManualScheduler(time.Time{})
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Simulation{
		cfg:    cfg,
		sched:  opts.Scheduler,
		hooks:  opts.Hooks,
		logger: opts.Logger,
		rng:    rand.New(rand.NewSource(opts.Seed)), //#nosec G404 -- simulation RNG, not security
		radius: cfg.Entity.RadiusFor(opts.Viewport),
	}
	s.Resize(width, height)
	s.SetViewport(opts.Viewport)
	return s
}

// Init discards the current population and spawns a fresh one: all rocks,
// then all papers, then all scissors. Negative counts are treated as zero.
// A running simulation is stopped first. Stats are published afterwards.
func (s *Simulation) Init(pop Counts) {
	s.Stop()

	pop = pop.normalized()
	s.applyViewport()
	b := s.Bounds()

	s.entities = make([]Entity, 0, pop.Total())
	for _, k := range Kinds {
		for range pop.Of(k) {
			pos := core.V(s.spawnCoord(b.Width), s.spawnCoord(b.Height))
			s.entities = append(s.entities, NewEntity(pos, k, s.radius, s.cfg.Entity.Speed, s.rng))
		}
	}

	s.state = StateIdle
	s.winner = None
	s.tick = 0
	s.elapsed = 0
	s.initial = pop

	s.logger.Debug("arena initialized", "population", pop.String(), "width", b.Width, "height", b.Height)
	s.publishStats()
}

// spawnCoord draws a coordinate uniformly inside [margin, extent-margin].
func (s *Simulation) spawnCoord(extent float64) float64 {
	m := s.cfg.Spawn.Margin
	span := extent - 2*m
	if span < 0 {
		return extent / 2
	}
	return s.rng.Float64()*span + m
}

// Start begins stepping. It is a no-op unless the simulation is idle.
// If a single kind is already present the match ends immediately and no
// frame is scheduled.
func (s *Simulation) Start() {
	if s.state != StateIdle {
		return
	}
	s.state = StateRunning
	s.lastFrame = s.sched.Now()
	s.logger.Debug("simulation started", "entities", len(s.entities))

	if s.checkWin() {
		return
	}
	s.requestFrame()
}

// Stop halts stepping and cancels any pending frame. Calling it again, or
// on an idle or finished simulation, changes nothing.
func (s *Simulation) Stop() {
	s.cancelFrame()
	if s.state == StateRunning {
		s.state = StateIdle
		s.logger.Debug("simulation stopped", "tick", s.tick)
	}
}

func (s *Simulation) requestFrame() {
	s.frame = s.sched.RequestFrame(s.onFrame)
	s.pending = true
}

func (s *Simulation) cancelFrame() {
	if s.pending {
		s.sched.CancelFrame(s.frame)
		s.pending = false
	}
}

// onFrame is the scheduler callback for one frame.
func (s *Simulation) onFrame(now time.Time) {
	s.pending = false
	if s.state != StateRunning {
		return
	}

	dt := now.Sub(s.lastFrame).Seconds()
	s.lastFrame = now
	s.Tick(dt)

	// A hook may already have restarted the match and requested a frame.
	if s.state == StateRunning && !s.pending {
		s.requestFrame()
	}
}

// Tick advances the simulation by dt seconds: integrate and bounce every
// entity, resolve all overlapping pairs in index order, check for a winner,
// then hand a snapshot to the frame hook. It does nothing once terminal.
//
// Tick is the step the frame callback runs. It can also be called directly
// on an idle simulation to drive it without a scheduler; a winner found that
// way ends the match from Idle. If a hook stops or re-inits the simulation
// during the step, the remaining pairs and the win check are skipped.
//
// Negative or NaN dt is treated as zero and dt above the configured maximum
// frame delta is clamped to it.
func (s *Simulation) Tick(dt float64) {
	if s.state == StateTerminal {
		return
	}
	entry := s.state
	dt = s.clampDelta(dt)

	s.applyViewport()
	b := s.Bounds()

	for i := range s.entities {
		s.entities[i].Update(dt, b.Width, b.Height)
	}
	if !s.resolveCollisions(entry) {
		// Stopped or re-initialized by a hook.
		if s.hooks.OnFrame != nil {
			s.hooks.OnFrame(s.Snapshot())
		}
		return
	}
	for i := range s.entities {
		s.entities[i].contain(b.Width, b.Height)
	}

	s.tick++
	s.elapsed += dt
	s.checkWin()

	if s.hooks.OnFrame != nil {
		s.hooks.OnFrame(s.Snapshot())
	}
}

func (s *Simulation) clampDelta(dt float64) float64 {
	if dt < 0 || math.IsNaN(dt) {
		return 0
	}
	if limit := s.cfg.Timing.MaxFrameDelta; limit > 0 && dt > limit {
		return limit
	}
	return dt
}

// resolveCollisions visits every unordered pair once, lower index first.
// Later pairs see the positions, velocities and kinds left by earlier ones.
// It returns false, leaving the remaining pairs alone, when the stats hook
// moved the simulation out of state or replaced its population.
func (s *Simulation) resolveCollisions(state State) bool {
	entities := s.entities
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			a, b := &entities[i], &entities[j]
			if !Overlapping(a, b) {
				continue
			}
			from := [2]Kind{a.Kind, b.Kind}
			if _, converted := Collide(a, b); converted {
				s.logger.Debug("conversion", "tick", s.tick, "a", from[0], "b", from[1], "now", a.Kind)
				s.publishStats()
				if s.state != state || !sameSlice(s.entities, entities) {
					return false
				}
			}
		}
	}
	return true
}

func sameSlice(a, b []Entity) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}

// checkWin ends the match when exactly one kind remains.
func (s *Simulation) checkWin() bool {
	winner := s.count().Sole()
	if winner == None {
		return false
	}

	s.cancelFrame()
	s.state = StateTerminal
	s.winner = winner
	s.logger.Info("match over", "winner", winner, "tick", s.tick, "initial", s.initial.String())

	if s.hooks.OnGameOver != nil {
		s.hooks.OnGameOver(winner)
	}
	return true
}

func (s *Simulation) publishStats() {
	if s.hooks.OnStats != nil {
		s.hooks.OnStats(Stats{Counts: s.count()})
	}
}

func (s *Simulation) count() Counts {
	var c Counts
	for i := range s.entities {
		c.add(s.entities[i].Kind)
	}
	return c
}

// Resize updates the arena size used from the next step on. Entities are
// not moved; anything outside is pushed back by the wall rule.
// Safe to call from any goroutine.
func (s *Simulation) Resize(width, height float64) {
	s.bounds.Store(&Bounds{Width: max(0, width), Height: max(0, height)})
}

// Bounds returns the current arena size.
func (s *Simulation) Bounds() Bounds {
	return *s.bounds.Load()
}

// SetViewport switches the viewport class. The matching entity radius is
// applied to every entity at the start of the next step or Init.
// Safe to call from any goroutine.
func (s *Simulation) SetViewport(v config.Viewport) {
	s.viewport.Store(int32(v)) //#nosec G115 -- viewport is a small enum
}

// Viewport returns the current viewport class.
func (s *Simulation) Viewport() config.Viewport {
	return config.Viewport(s.viewport.Load())
}

func (s *Simulation) applyViewport() {
	r := s.cfg.Entity.RadiusFor(s.Viewport())
	if r == s.radius {
		return
	}
	s.radius = r
	for i := range s.entities {
		s.entities[i].Radius = r
	}
}

// Stats returns the current counts. Winner is set once the match is over.
func (s *Simulation) Stats() Stats {
	return Stats{Counts: s.count(), Winner: s.winner}
}

// State returns the lifecycle state.
func (s *Simulation) State() State {
	return s.state
}

// Winner returns the winning kind, or None while the match is open.
func (s *Simulation) Winner() Kind {
	return s.winner
}

// Ticks returns the number of steps taken since Init.
func (s *Simulation) Ticks() uint64 {
	return s.tick
}

// Elapsed returns the simulated time since Init, after delta clamping.
func (s *Simulation) Elapsed() time.Duration {
	return time.Duration(s.elapsed * float64(time.Second))
}

// Initial returns the population passed to the last Init, normalized.
func (s *Simulation) Initial() Counts {
	return s.initial
}

// Len returns the number of entities.
func (s *Simulation) Len() int {
	return len(s.entities)
}

// Entity returns a copy of entity i.
func (s *Simulation) Entity(i int) Entity {
	return s.entities[i]
}

// Place replaces the population with the given entities as-is, for setups
// that need exact positions and velocities rather than random spawns.
// The simulation is stopped and reset like Init.
func (s *Simulation) Place(entities []Entity) {
	s.Stop()
	s.entities = append(s.entities[:0:0], entities...)
	s.state = StateIdle
	s.winner = None
	s.tick = 0
	s.elapsed = 0
	s.initial = s.count()
	s.publishStats()
}
