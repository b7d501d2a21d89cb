package config

import (
	"fmt"
	"os"

	"github.com/san-kum/yeewave/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGridSize         = 100000
	DefaultDz               = 0.5
	DefaultFPS              = 60
	DefaultProgressInterval = 100
	DefaultMinChunk         = 4096

	// TicksPerCell sets the run length: 8 ticks per grid point.
	TicksPerCell = 8
)

type Config struct {
	GridSize         int     `yaml:"grid_size"`
	Dz               float64 `yaml:"dz"`
	FPS              int     `yaml:"fps"`
	ProgressInterval int     `yaml:"progress_interval"`
	Workers          int     `yaml:"workers"`
	MinChunk         int     `yaml:"min_chunk"`
}

func DefaultConfig() *Config {
	return &Config{
		GridSize:         DefaultGridSize,
		Dz:               DefaultDz,
		FPS:              DefaultFPS,
		ProgressInterval: DefaultProgressInterval,
		MinChunk:         DefaultMinChunk,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base; keys absent from the file keep the
// base values. base is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field; Workers == 0 means one per CPU. grid_size
// must be even so the pulse peak lands exactly on ex[N/2].
func (c *Config) Validate() error {
	switch {
	case c.GridSize < 4:
		return fmt.Errorf("%w: grid_size %d < 4", dynamo.ErrParameterBounds, c.GridSize)
	case c.GridSize%2 != 0:
		return fmt.Errorf("%w: grid_size %d must be even", dynamo.ErrParameterBounds, c.GridSize)
	case c.Dz <= 0:
		return fmt.Errorf("%w: dz %g must be positive", dynamo.ErrParameterBounds, c.Dz)
	case c.FPS < 1:
		return fmt.Errorf("%w: fps %d < 1", dynamo.ErrParameterBounds, c.FPS)
	case c.ProgressInterval < 1:
		return fmt.Errorf("%w: progress_interval %d < 1", dynamo.ErrParameterBounds, c.ProgressInterval)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d < 0", dynamo.ErrParameterBounds, c.Workers)
	case c.MinChunk < 1:
		return fmt.Errorf("%w: min_chunk %d < 1", dynamo.ErrParameterBounds, c.MinChunk)
	}
	return nil
}

// TotalTicks is the fixed iteration budget of a run.
func (c *Config) TotalTicks() int {
	return TicksPerCell * c.GridSize
}
