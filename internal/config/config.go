package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/render"
)

const (
	DefaultGravity       = 0.5
	DefaultDt            = 0.1
	DefaultRestitution   = 0.75
	DefaultRestThreshold = 0.5
	DefaultSteps         = 300
	DefaultY             = 20.0
)

type Config struct {
	Scenario      string          `yaml:"scenario"`
	Gravity       float64         `yaml:"gravity"`
	Dt            float64         `yaml:"dt"`
	Restitution   float64         `yaml:"restitution"`
	RestThreshold float64         `yaml:"rest_threshold"`
	Steps         int             `yaml:"steps"`
	InitState     InitStateConfig `yaml:"init_state"`
	Render        RenderConfig    `yaml:"render"`
}

type InitStateConfig struct {
	Y  float64 `yaml:"y"`
	VY float64 `yaml:"vy"`
}

type RenderConfig struct {
	Stride int    `yaml:"stride"`
	Glyph  string `yaml:"glyph"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:      "animation",
		Gravity:       DefaultGravity,
		Dt:            DefaultDt,
		Restitution:   DefaultRestitution,
		RestThreshold: DefaultRestThreshold,
		Steps:         DefaultSteps,
		InitState: InitStateConfig{
			Y: DefaultY,
		},
		Render: RenderConfig{
			Stride: render.DefaultStride,
			Glyph:  string(render.DefaultGlyph),
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base, so keys missing from the file keep
// the values of base. base is modified in place.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

func (c *Config) BallConfig() physics.BallConfig {
	return physics.BallConfig{
		Gravity:       c.Gravity,
		TimeStep:      c.Dt,
		Restitution:   c.Restitution,
		RestThreshold: c.RestThreshold,
	}
}

// NewBall builds a ball from the physics fields and the initial state.
func (c *Config) NewBall() (*physics.Ball, error) {
	return physics.NewBall(c.BallConfig(), c.InitState.Y, c.InitState.VY)
}

func (c *Config) Validate() error {
	if err := c.BallConfig().Validate(); err != nil {
		return err
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must be non-negative, got %d", dynamo.ErrInvalidConfig, c.Steps)
	}
	if c.Render.Stride < 1 {
		return fmt.Errorf("%w: render stride must be at least 1, got %d", dynamo.ErrInvalidConfig, c.Render.Stride)
	}
	if len([]rune(c.Render.Glyph)) != 1 {
		return fmt.Errorf("%w: render glyph must be a single character, got %q", dynamo.ErrInvalidConfig, c.Render.Glyph)
	}
	return nil
}

// Glyph returns the render glyph, falling back to the default.
func (c *Config) Glyph() rune {
	r := []rune(c.Render.Glyph)
	if len(r) == 0 {
		return render.DefaultGlyph
	}
	return r[0]
}
