package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rps-arena/internal/config"
	"github.com/vovakirdan/rps-arena/internal/core"
	"github.com/vovakirdan/rps-arena/internal/registry"
	"github.com/vovakirdan/rps-arena/internal/sim"
	"github.com/vovakirdan/rps-arena/internal/storage"
)

// Rows taken by the HUD and help lines around the arena.
const chromeRows = 2

// ArenaOptions configures an arena screen.
type ArenaOptions struct {
	Config    config.ArenaConfig
	Runtime   core.RuntimeConfig // Terminal size, tick rate and seed
	Scenario  registry.Scenario
	Store     *storage.Store // Optional; finished matches are saved here
	Logger    *log.Logger
	Theme     Theme
	Source    string // Recorded with saved matches
	AutoStart bool
}

// matchState is shared with the simulation hooks, which outlive model copies.
type matchState struct {
	stats sim.Stats
	over  bool
	saved bool
}

// ArenaModel is the Bubble Tea model that plays one scenario.
type ArenaModel struct {
	cfg        config.ArenaConfig
	runtime    core.RuntimeConfig
	scenario   registry.Scenario
	store      *storage.Store
	logger     *log.Logger
	theme      Theme
	source     string
	sim        *sim.Simulation
	sched      *sim.ManualScheduler
	match      *matchState
	layout     config.Layout
	screen     *core.Screen
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	help       help.Model
	quitting   bool
	backToMenu bool
}

// NewArenaModel creates the arena screen and spawns the scenario population.
func NewArenaModel(opts ArenaOptions) ArenaModel {
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = opts.Config.Timing.TickRate
	}
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		def := core.DefaultConfig()
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Theme.Glyphs == nil {
		opts.Theme = DefaultTheme()
	}

	m := ArenaModel{
		cfg:        opts.Config,
		runtime:    opts.Runtime,
		scenario:   opts.Scenario,
		store:      opts.Store,
		logger:     opts.Logger,
		theme:      opts.Theme,
		source:     opts.Source,
		sched:      sim.NewManualScheduler(time.Now()),
		match:      &matchState{},
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
	}
	m.layout = m.cfg.Viewport.Fit(arenaCells(m.runtime.ScreenW, m.runtime.ScreenH))
	m.screen = core.NewScreen(m.layout.Cols+2, m.layout.Rows+2)
	m.respawn()

	if opts.AutoStart {
		m.sim.Start()
	}
	return m
}

// arenaCells returns the cells available to the arena interior on a
// terminal of w x h cells.
func arenaCells(w, h int) (cols, rows int) {
	return max(0, w-2), max(0, h-2-chromeRows)
}

// respawn builds a fresh simulation for the current seed and populates it.
func (m *ArenaModel) respawn() {
	if m.sim != nil {
		m.sim.Stop()
	}
	*m.match = matchState{}
	match := m.match

	m.sim = sim.New(m.cfg, m.layout.Width, m.layout.Height, sim.Options{
		Scheduler: m.sched,
		Viewport:  m.layout.Viewport,
		Seed:      m.runtime.Seed,
		Logger:    m.logger,
		Hooks: sim.Hooks{
			OnStats: func(s sim.Stats) { match.stats = s },
			OnGameOver: func(k sim.Kind) {
				match.over = true
				match.stats.Winner = k
			},
		},
	})
	m.sim.Init(m.scenario.Population)
	m.logger.Debug("arena spawned", "scenario", m.scenario.ID, "seed", m.runtime.Seed, "viewport", m.layout.Viewport)
}

// Init starts the tick loop.
func (m ArenaModel) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m ArenaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Actions other than quit and back are
// applied on the next tick.
func (m ArenaModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.sim.Stop()
		m.saveAbandoned()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.sim.Stop()
		m.saveAbandoned()
		m.backToMenu = true
		m.inputFrame.Clear()
	}
	return m, nil
}

// resize refits the arena without restarting the match.
func (m *ArenaModel) resize(w, h int) {
	m.runtime.ScreenW = w
	m.runtime.ScreenH = h
	m.layout = m.cfg.Viewport.Fit(arenaCells(w, h))
	m.screen.Resize(m.layout.Cols+2, m.layout.Rows+2)
	m.sim.Resize(m.layout.Width, m.layout.Height)
	m.sim.SetViewport(m.layout.Viewport)
}

// handleTick applies pending input, grants the simulation its frame and
// saves the match once it is decided.
func (m ArenaModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	switch {
	case m.inputFrame.Has(core.ActionRestart):
		m.saveAbandoned()
		m.runtime.Seed = time.Now().UnixNano()
		m.respawn()

	case m.inputFrame.Has(core.ActionStart):
		if m.sim.State() == sim.StateTerminal {
			m.runtime.Seed = time.Now().UnixNano()
			m.respawn()
		}
		m.sim.Start()

	case m.inputFrame.Has(core.ActionPause):
		switch {
		case m.sim.State() == sim.StateRunning:
			m.sim.Stop()
		case m.sim.State() == sim.StateIdle && m.sim.Ticks() > 0:
			m.sim.Start()
		}
	}
	m.inputFrame.Clear()

	grantFrames(m.sched, now)
	m.saveResult()

	return m, tickCmd(m.runtime.TickRate)
}

// saveResult records the finished match once.
func (m *ArenaModel) saveResult() {
	if m.match.over {
		m.record()
	}
}

// saveAbandoned records a match that was left before it was decided.
// Matches that never ran a frame are not recorded.
func (m *ArenaModel) saveAbandoned() {
	if !m.match.over && m.sim.Ticks() > 0 {
		m.record()
	}
}

func (m *ArenaModel) record() {
	if m.match.saved {
		return
	}
	m.match.saved = true
	if m.store == nil {
		return
	}

	initial := m.sim.Initial()
	rec := storage.MatchRecord{
		Scenario:   m.scenario.ID,
		Seed:       m.runtime.Seed,
		Rock:       initial.Rock,
		Paper:      initial.Paper,
		Scissors:   initial.Scissors,
		Winner:     m.sim.Winner().String(),
		Ticks:      int64(m.sim.Ticks()), //#nosec G115 -- tick count fits in int64
		DurationMs: m.sim.Elapsed().Milliseconds(),
		Source:     m.source,
	}
	if _, err := m.store.SaveMatch(rec); err != nil {
		m.logger.Warn("could not save match", "error", err)
	}
}

// View renders the current state to a string for display.
func (m ArenaModel) View() string {
	if m.quitting {
		return ""
	}

	DrawArena(m.screen, m.sim.Snapshot(), m.cfg.Viewport, m.theme)

	body := lipgloss.JoinVertical(lipgloss.Left,
		RenderHUD(m.match.stats, m.scenario.Title, m.theme),
		RenderScreen(m.screen),
		m.theme.HUDControls.Render(m.help.View(m.keyMapper.Keys())),
	)
	return lipgloss.PlaceHorizontal(m.runtime.ScreenW, lipgloss.Center, body)
}

// Stats returns the counts last published by the simulation.
func (m ArenaModel) Stats() sim.Stats {
	return m.match.stats
}

// Simulation returns the running simulation.
func (m ArenaModel) Simulation() *sim.Simulation {
	return m.sim
}

// Layout returns the current arena layout.
func (m ArenaModel) Layout() config.Layout {
	return m.layout
}

// IsQuitting returns true if user requested to quit entirely.
func (m ArenaModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m ArenaModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single scenario.
func Run(opts ArenaOptions) error {
	model := NewArenaModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
