package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFlappy loads the game configuration.
// Search order: customPath -> ~/.flappy/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default
// Only a custom path reports read or parse errors; the other locations are best-effort.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("flappy.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "flappy.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultFlappyYAML)
	if err != nil {
		return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result,
// so a file only needs the keys it changes.
func Parse(data []byte) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FlappyConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return FlappyConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML. Recorded runs keep this so a replay uses the
// geometry it was played with.
func Marshal(cfg FlappyConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}

// Validate checks that the configuration describes a playable field.
// Every generated obstacle pair must have a non-negative top segment and a
// bottom segment with positive height.
func (c FlappyConfig) Validate() error {
	var errs []error

	if c.Playfield.Width <= 0 || c.Playfield.Height <= 0 {
		errs = append(errs, fmt.Errorf("playfield must be positive, got %dx%d", c.Playfield.Width, c.Playfield.Height))
	}
	if c.Physics.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("physics.gravity must be positive, got %d", c.Physics.Gravity))
	}
	if c.Physics.JumpImpulse >= 0 {
		errs = append(errs, fmt.Errorf("physics.jump_impulse must be negative, got %d", c.Physics.JumpImpulse))
	}
	if c.Physics.PipeSpeed <= 0 {
		errs = append(errs, fmt.Errorf("physics.pipe_speed must be positive, got %d", c.Physics.PipeSpeed))
	}
	if c.Actor.Size <= 0 || c.Actor.Size >= c.Playfield.Height {
		errs = append(errs, fmt.Errorf("actor.size must be in (0, %d), got %d", c.Playfield.Height, c.Actor.Size))
	}
	if c.Actor.X < 0 || c.Actor.X+c.Actor.Size > c.Playfield.Width {
		errs = append(errs, fmt.Errorf("actor.x must keep the actor on the playfield, got %d", c.Actor.X))
	}
	if c.Obstacles.Width <= 0 || c.Obstacles.Gap <= 0 {
		errs = append(errs, fmt.Errorf("obstacles.width and obstacles.gap must be positive, got %d and %d", c.Obstacles.Width, c.Obstacles.Gap))
	}
	if c.Obstacles.MinTop < 0 || c.Obstacles.TopRange <= 0 {
		errs = append(errs, fmt.Errorf("obstacles.min_top must be >= 0 and obstacles.top_range > 0, got %d and %d", c.Obstacles.MinTop, c.Obstacles.TopRange))
	}
	if maxTop := c.Obstacles.MinTop + c.Obstacles.TopRange - 1; maxTop+c.Obstacles.Gap >= c.Playfield.Height {
		errs = append(errs, fmt.Errorf("obstacles: tallest top segment %d plus gap %d leaves no bottom segment in height %d", maxTop, c.Obstacles.Gap, c.Playfield.Height))
	}
	if c.Timing.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick_rate must be positive, got %d", c.Timing.TickRate))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", "configs", filename)
}
