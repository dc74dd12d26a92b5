package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fluidsim/internal/lbm"
)

const (
	DefaultWidth     = 64
	DefaultHeight    = 48
	DefaultViscosity = 0.02
	DefaultSteps     = 2000
	DefaultBatch     = 10
	DefaultScene     = "block"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Width         int           `yaml:"width"`
	Height        int           `yaml:"height"`
	Viscosity     float64       `yaml:"viscosity"`
	Variant       string        `yaml:"variant"`
	Density       float64       `yaml:"density"`
	Gravity       GravityConfig `yaml:"gravity"`
	MaxVelocity   float64       `yaml:"max_velocity"`
	MassFlowRate  float64       `yaml:"mass_flow_rate"`
	Steps         int           `yaml:"steps"`
	Batch         int           `yaml:"batch"`
	Scene         string        `yaml:"scene"`
	ValidateState bool          `yaml:"validate_state"`
}

type GravityConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Viscosity:    DefaultViscosity,
		Variant:      lbm.FreeSurface.String(),
		Density:      lbm.DefaultDensity,
		Gravity:      GravityConfig{X: lbm.DefaultGravity.X, Y: lbm.DefaultGravity.Y},
		MaxVelocity:  lbm.DefaultMaxVelocity,
		MassFlowRate: lbm.DefaultMassFlowRate,
		Steps:        DefaultSteps,
		Batch:        DefaultBatch,
		Scene:        DefaultScene,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the run-level fields. Grid and viscosity errors are left
// to lbm.New so both layers report the same sentinel.
func (c *Config) Validate() error {
	if _, err := lbm.ParseVariant(c.Variant); err != nil {
		return err
	}
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, c.Steps)
	}
	if c.Batch <= 0 {
		return fmt.Errorf("%w: batch must be positive, got %d", ErrInvalidConfig, c.Batch)
	}
	if c.Density <= 0 {
		return fmt.Errorf("%w: density must be positive, got %v", ErrInvalidConfig, c.Density)
	}
	if c.MaxVelocity < 0 || c.MassFlowRate < 0 {
		return fmt.Errorf("%w: max_velocity and mass_flow_rate must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Options translates the config into engine options.
func (c *Config) Options() ([]lbm.Option, error) {
	v, err := lbm.ParseVariant(c.Variant)
	if err != nil {
		return nil, err
	}
	opts := []lbm.Option{
		lbm.WithVariant(v),
		lbm.WithDensity(c.Density),
		lbm.WithMassFlowRate(c.MassFlowRate),
	}
	if v == lbm.FreeSurface {
		opts = append(opts,
			lbm.WithGravity(c.gravity()),
			lbm.WithMaxVelocity(c.MaxVelocity),
		)
	}
	return opts, nil
}

// SetParam overrides one numeric field by its yaml name.
func (c *Config) SetParam(name string, v float64) error {
	switch name {
	case "viscosity":
		c.Viscosity = v
	case "density":
		c.Density = v
	case "gravity_x":
		c.Gravity.X = v
	case "gravity_y":
		c.Gravity.Y = v
	case "max_velocity":
		c.MaxVelocity = v
	case "mass_flow_rate":
		c.MassFlowRate = v
	case "width":
		c.Width = int(v)
	case "height":
		c.Height = int(v)
	case "steps":
		c.Steps = int(v)
	default:
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidConfig, name)
	}
	return nil
}
