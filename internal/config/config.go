package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hwen/knotsim/internal/entity"
	"github.com/hwen/knotsim/internal/knot"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 20.0
)

type Config struct {
	Dt       float64        `yaml:"dt"`
	Duration float64        `yaml:"duration"`
	Seed     int64          `yaml:"seed"`
	Entities []EntityConfig `yaml:"entities"`
}

type EntityConfig struct {
	Name  string     `yaml:"name"`
	Path  string     `yaml:"path"`
	Phase float64    `yaml:"phase"`
	World int        `yaml:"world"`
	Color [4]float64 `yaml:"color,flow"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Entities: []EntityConfig{
			{Name: "circle", Path: "circle", World: 0, Color: [4]float64{1, 1, 1, 1}},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Entities = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.Entities) == 0 {
		cfg.Entities = DefaultConfig().Entities
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", c.Duration)
	}
	for _, ec := range c.Entities {
		if ec.World < 0 || ec.World >= knot.Worlds {
			return fmt.Errorf("entity %q: world %d out of range [0, %d)", ec.Name, ec.World, knot.Worlds)
		}
		if _, err := entity.NewPath(ec.Path, 0); err != nil {
			return fmt.Errorf("entity %q: %w", ec.Name, err)
		}
	}
	return nil
}

// BuildEntities turns the entity configs into live entities.
func (c *Config) BuildEntities() ([]*entity.Entity, error) {
	out := make([]*entity.Entity, 0, len(c.Entities))
	for _, ec := range c.Entities {
		path, err := entity.NewPath(ec.Path, ec.Phase)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", ec.Name, err)
		}
		e := entity.New(ec.Name, ec.World, path)
		e.Color = ec.Color
		out = append(out, e)
	}
	return out, nil
}
