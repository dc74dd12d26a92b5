package config

import (
	"slices"

	"github.com/san-kum/fluidsim/internal/lattice"
)

func (c *Config) gravity() lattice.Vec2 {
	return lattice.Vec2{X: c.Gravity.X, Y: c.Gravity.Y}
}

// Presets holds named configurations per scene.
var Presets = map[string]map[string]*Config{
	"block": {
		"default": {
			Width: 64, Height: 64, Viscosity: 0.02, Variant: "free_surface", Density: 1,
			Gravity: GravityConfig{Y: -1e-6}, MaxVelocity: 0.001, MassFlowRate: 500,
			Steps: 2000, Batch: 10, Scene: "block",
		},
		"heavy": {
			Width: 64, Height: 64, Viscosity: 0.02, Variant: "free_surface", Density: 1,
			Gravity: GravityConfig{Y: -1e-4}, MaxVelocity: 0.05, MassFlowRate: 500,
			Steps: 3000, Batch: 10, Scene: "block",
		},
	},
	"dam_break": {
		"default": {
			Width: 96, Height: 48, Viscosity: 0.01, Variant: "free_surface", Density: 1,
			Gravity: GravityConfig{Y: -1e-4}, MaxVelocity: 0.1, MassFlowRate: 500,
			Steps: 4000, Batch: 20, Scene: "dam_break",
		},
		"viscous": {
			Width: 96, Height: 48, Viscosity: 0.1, Variant: "free_surface", Density: 1,
			Gravity: GravityConfig{Y: -1e-4}, MaxVelocity: 0.1, MassFlowRate: 500,
			Steps: 4000, Batch: 20, Scene: "dam_break",
		},
	},
	"drop": {
		"default": {
			Width: 64, Height: 64, Viscosity: 0.01, Variant: "free_surface", Density: 1,
			Gravity: GravityConfig{Y: -1e-4}, MaxVelocity: 0.1, MassFlowRate: 500,
			Steps: 3000, Batch: 10, Scene: "drop",
		},
	},
	"pool": {
		"calm": {
			Width: 64, Height: 32, Viscosity: 0.02, Variant: "free_surface", Density: 1,
			Gravity: GravityConfig{Y: -1e-5}, MaxVelocity: 0.01, MassFlowRate: 500,
			Steps: 1000, Batch: 10, Scene: "pool",
		},
	},
	"box": {
		"rest": {
			Width: 32, Height: 32, Viscosity: 0.1, Variant: "single_phase", Density: 1.2,
			Steps: 1000, Batch: 50, Scene: "box",
		},
	},
	"stirred": {
		"default": {
			Width: 64, Height: 64, Viscosity: 0.01, Variant: "single_phase", Density: 1,
			Steps: 2000, Batch: 20, Scene: "stirred",
		},
	},
}

// GetPreset returns a copy so callers can override fields.
func GetPreset(scene, name string) *Config {
	sp, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := sp[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(scene string) []string {
	sp, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(sp))
	for name := range sp {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func ListScenes() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
