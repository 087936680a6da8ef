// Package config provides YAML-based arena configuration loading and
// viewport classification for the simulation.
package config

// ArenaConfig contains all configuration for an arena run.
type ArenaConfig struct {
	Entity    EntityConfig     `yaml:"entity"`
	Spawn     SpawnConfig      `yaml:"spawn"`
	Viewport  ViewportConfig   `yaml:"viewport"`
	Timing    TimingConfig     `yaml:"timing"`
	Scenarios []ScenarioConfig `yaml:"scenarios"`
}

// EntityConfig defines the kinematic parameters shared by all entities.
type EntityConfig struct {
	Speed         float64 `yaml:"speed"`          // Units per second
	Radius        float64 `yaml:"radius"`         // Radius on normal viewports
	CompactRadius float64 `yaml:"compact_radius"` // Radius on compact viewports
}

// SpawnConfig defines where entities appear and the default population.
type SpawnConfig struct {
	Margin   float64 `yaml:"margin"`
	Rock     int     `yaml:"rock"`
	Paper    int     `yaml:"paper"`
	Scissors int     `yaml:"scissors"`
}

// ViewportConfig defines how a terminal maps onto the arena.
type ViewportConfig struct {
	CompactWidth float64 `yaml:"compact_width"` // Arena units
	Ratio        float64 `yaml:"ratio"`
	CompactRatio float64 `yaml:"compact_ratio"`
	CellWidth    float64 `yaml:"cell_width"`  // Arena units per column
	CellHeight   float64 `yaml:"cell_height"` // Arena units per row
}

// TimingConfig defines frame pacing.
type TimingConfig struct {
	TickRate      int     `yaml:"tick_rate"`
	MaxFrameDelta float64 `yaml:"max_frame_delta"` // Seconds, 0 = unclamped
	FixedStep     float64 `yaml:"fixed_step"`      // Seconds per headless frame
	MaxTicks      int     `yaml:"max_ticks"`       // Headless frame budget
}

// ScenarioConfig is a user-defined named starting population.
type ScenarioConfig struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Rock     int    `yaml:"rock"`
	Paper    int    `yaml:"paper"`
	Scissors int    `yaml:"scissors"`
}
