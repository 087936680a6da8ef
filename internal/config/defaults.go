package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultArenaConfig returns the default arena configuration.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Entity: EntityConfig{
			Speed:         60,
			Radius:        19,
			CompactRadius: 14,
		},
		Spawn: SpawnConfig{
			Margin:   20,
			Rock:     20,
			Paper:    20,
			Scissors: 20,
		},
		Viewport: ViewportConfig{
			CompactWidth: 768,
			Ratio:        0.7,
			CompactRatio: 0.95,
			CellWidth:    8,
			CellHeight:   16,
		},
		Timing: TimingConfig{
			TickRate:      60,
			MaxFrameDelta: 0.1,
			FixedStep:     1.0 / 60.0,
			MaxTicks:      108000, // 30 minutes at 60fps
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultArenaYAML
}
