package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadArena loads the arena configuration.
// Search order: customPath -> ~/.arena/configs/arena.yaml -> ./configs/arena.yaml -> embedded default
//
// Files are decoded on top of DefaultArenaConfig, so a file only needs the
// keys it changes.
func LoadArena(customPath string) (ArenaConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultArenaConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultArenaConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("arena.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "arena.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultArenaYAML)
	if err != nil {
		return DefaultArenaConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (ArenaConfig, error) {
	cfg := DefaultArenaConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c ArenaConfig) Validate() error {
	switch {
	case c.Entity.Speed < 0:
		return fmt.Errorf("config: entity.speed must be >= 0, got %g", c.Entity.Speed)
	case c.Entity.Radius <= 0:
		return fmt.Errorf("config: entity.radius must be > 0, got %g", c.Entity.Radius)
	case c.Entity.CompactRadius <= 0:
		return fmt.Errorf("config: entity.compact_radius must be > 0, got %g", c.Entity.CompactRadius)
	case c.Spawn.Margin < 0:
		return fmt.Errorf("config: spawn.margin must be >= 0, got %g", c.Spawn.Margin)
	case c.Viewport.Ratio <= 0 || c.Viewport.Ratio > 1:
		return fmt.Errorf("config: viewport.ratio must be in (0, 1], got %g", c.Viewport.Ratio)
	case c.Viewport.CompactRatio <= 0 || c.Viewport.CompactRatio > 1:
		return fmt.Errorf("config: viewport.compact_ratio must be in (0, 1], got %g", c.Viewport.CompactRatio)
	case c.Viewport.CellWidth <= 0 || c.Viewport.CellHeight <= 0:
		return fmt.Errorf("config: viewport cell size must be > 0, got %gx%g", c.Viewport.CellWidth, c.Viewport.CellHeight)
	case c.Timing.TickRate <= 0:
		return fmt.Errorf("config: timing.tick_rate must be > 0, got %d", c.Timing.TickRate)
	case c.Timing.MaxFrameDelta < 0:
		return fmt.Errorf("config: timing.max_frame_delta must be >= 0, got %g", c.Timing.MaxFrameDelta)
	case c.Timing.FixedStep <= 0:
		return fmt.Errorf("config: timing.fixed_step must be > 0, got %g", c.Timing.FixedStep)
	}

	seen := make(map[string]bool, len(c.Scenarios))
	for _, s := range c.Scenarios {
		if s.ID == "" {
			return fmt.Errorf("config: scenario without id")
		}
		if seen[s.ID] {
			return fmt.Errorf("config: duplicate scenario %q", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arena", "configs", filename)
}
