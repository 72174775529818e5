package sim

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("sim: invalid config")

const (
	DefaultTickRate = 60
	DefaultSteps    = 600
)

// Config describes a headless simulation run.
type Config struct {
	// Level and Level3D name levels to load; either or both may be set.
	Level   string `yaml:"level"`
	Level3D string `yaml:"level3d"`
	// SpawnLevelEntities spawns the bodies placed in the levels.
	SpawnLevelEntities bool `yaml:"spawn_level_entities"`

	// Timestep in seconds. When zero it is derived from TickRate.
	Timestep float64 `yaml:"timestep"`
	TickRate int     `yaml:"tick_rate"`
	Steps    int     `yaml:"steps"`
	Workers  int     `yaml:"workers"`
	// Scripts disables controller scripts when set to false.
	Scripts *bool `yaml:"scripts"`

	Bodies []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	Name     string    `yaml:"name"`
	Prefab   string    `yaml:"prefab"`
	Position []float64 `yaml:"position"`
	Velocity []float64 `yaml:"velocity"`
	Script   string    `yaml:"script"`
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("sim: read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("sim: unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate fills defaults and rejects unusable settings.
func (c *Config) Validate() error {
	if c.TickRate == 0 {
		c.TickRate = DefaultTickRate
	}
	if c.Timestep == 0 {
		c.Timestep = 1 / float64(c.TickRate)
	}
	if c.Steps == 0 {
		c.Steps = DefaultSteps
	}
	switch {
	case c.TickRate < 0:
		return fmt.Errorf("%w: tick_rate %d", ErrInvalidConfig, c.TickRate)
	case !(c.Timestep > 0):
		return fmt.Errorf("%w: timestep %v", ErrInvalidConfig, c.Timestep)
	case c.Steps < 0:
		return fmt.Errorf("%w: steps %d", ErrInvalidConfig, c.Steps)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}
	for i, b := range c.Bodies {
		if b.Prefab == "" {
			return fmt.Errorf("%w: body %d has no prefab", ErrInvalidConfig, i)
		}
	}
	return nil
}

func (c Config) scriptsEnabled() bool {
	return c.Scripts == nil || *c.Scripts
}
