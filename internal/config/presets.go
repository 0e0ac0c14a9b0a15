package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/ballsim/internal/dynamo"
)

var Presets = map[string]*Config{
	"animation": {
		Scenario: "animation", Gravity: 0.5, Dt: 0.1, Restitution: 0.75, RestThreshold: 0.5, Steps: 300,
		InitState: InitStateConfig{Y: 20.0, VY: 0.0},
		Render:    RenderConfig{Stride: 5, Glyph: "O"},
	},
	"stress": {
		Scenario: "stress", Gravity: 9.8, Dt: 0.01, Restitution: 0.8, RestThreshold: 0, Steps: 100_000_000,
		InitState: InitStateConfig{Y: 1000.0, VY: 0.0},
		Render:    RenderConfig{Stride: 1000, Glyph: "O"},
	},
	"elastic": {
		Scenario: "elastic", Gravity: 9.8, Dt: 0.01, Restitution: 1.0, RestThreshold: 0.5, Steps: 2000,
		InitState: InitStateConfig{Y: 10.0, VY: 0.0},
		Render:    RenderConfig{Stride: 10, Glyph: "O"},
	},
	"dead": {
		Scenario: "dead", Gravity: 9.8, Dt: 0.01, Restitution: 0.0, RestThreshold: 0, Steps: 500,
		InitState: InitStateConfig{Y: 5.0, VY: 0.0},
		Render:    RenderConfig{Stride: 5, Glyph: "O"},
	},
	"launch": {
		Scenario: "launch", Gravity: 0.5, Dt: 0.1, Restitution: 0.9, RestThreshold: 0.5, Steps: 600,
		InitState: InitStateConfig{Y: 0.0, VY: 6.0},
		Render:    RenderConfig{Stride: 5, Glyph: "O"},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// MustPreset is GetPreset with an error for unknown names.
func MustPreset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, name, ListPresets())
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
