package physics

import (
	"fmt"
	"iter"
	"math"

	"github.com/san-kum/ballsim/internal/dynamo"
)

const (
	DefaultGravity       = 9.8
	DefaultTimeStep      = 0.01
	DefaultRestitution   = 1.0
	DefaultRestThreshold = 0.5
)

// BallConfig is fixed for the lifetime of a Ball.
// A RestThreshold of zero disables the rest clamp.
type BallConfig struct {
	Gravity       float64
	TimeStep      float64
	Restitution   float64
	RestThreshold float64
}

func DefaultBallConfig() BallConfig {
	return BallConfig{
		Gravity:       DefaultGravity,
		TimeStep:      DefaultTimeStep,
		Restitution:   DefaultRestitution,
		RestThreshold: DefaultRestThreshold,
	}
}

func (c BallConfig) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"gravity", c.Gravity},
		{"dt", c.TimeStep},
		{"restitution", c.Restitution},
		{"rest_threshold", c.RestThreshold},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", dynamo.ErrInvalidConfig, f.name, f.v)
		}
	}
	if c.TimeStep <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidConfig, c.TimeStep)
	}
	if c.Restitution < 0 || c.Restitution > 1 {
		return fmt.Errorf("%w: restitution must be in [0,1], got %f", dynamo.ErrInvalidConfig, c.Restitution)
	}
	if c.RestThreshold < 0 {
		return fmt.Errorf("%w: rest_threshold must be non-negative, got %f", dynamo.ErrInvalidConfig, c.RestThreshold)
	}
	return nil
}

// Ball is a single body moving on the vertical axis above a floor at y=0.
// It is owned by one caller and is not safe for concurrent use.
type Ball struct {
	cfg     BallConfig
	y, vy   float64
	y0, vy0 float64
	steps   int
}

var (
	_ dynamo.Stepper      = (*Ball)(nil)
	_ dynamo.Hamiltonian  = (*Ball)(nil)
	_ dynamo.Configurable = (*Ball)(nil)
)

func NewBall(cfg BallConfig, y0, vy0 float64) (*Ball, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateStart(y0, vy0); err != nil {
		return nil, err
	}
	return &Ball{cfg: cfg, y: y0, vy: vy0, y0: y0, vy0: vy0}, nil
}

func validateStart(y0, vy0 float64) error {
	if math.IsNaN(y0) || math.IsInf(y0, 0) || math.IsNaN(vy0) || math.IsInf(vy0, 0) {
		return fmt.Errorf("%w: start (y=%v, vy=%v)", dynamo.ErrInvalidState, y0, vy0)
	}
	if y0 < 0 {
		return fmt.Errorf("%w: start height below floor, got %f", dynamo.ErrInvalidState, y0)
	}
	return nil
}

// Step advances the ball by one time step and returns the new state.
// Velocity is updated before position (semi-implicit Euler); a floor
// contact clamps the position to zero and reflects the velocity.
func (b *Ball) Step() dynamo.Sample {
	dt := b.cfg.TimeStep

	b.vy = b.vy - b.cfg.Gravity*dt
	b.y = b.y + b.vy*dt

	bounced := false
	if b.y < 0 {
		bounced = true
		b.y = 0
		b.vy = b.vy * -1 * b.cfg.Restitution

		thr := b.cfg.RestThreshold
		if b.cfg.Restitution < 1 && b.vy > -thr && b.vy < thr {
			b.vy = 0
		}
	}

	s := dynamo.Sample{
		Step:     b.steps,
		Time:     float64(b.steps+1) * dt,
		Position: b.y,
		Velocity: b.vy,
		Bounced:  bounced,
	}
	b.steps++
	return s
}

// Run yields one sample per Step, lazily. The sequence is single-use:
// the step budget is shared across every range over it, so a second pass
// only yields what the first one left.
func (b *Ball) Run(steps int) iter.Seq[dynamo.Sample] {
	remaining := steps
	return func(yield func(dynamo.Sample) bool) {
		for remaining > 0 {
			remaining--
			if !yield(b.Step()) {
				return
			}
		}
	}
}

// Current returns the state without stepping. Before the first step its
// Step field is -1.
func (b *Ball) Current() dynamo.Sample {
	return dynamo.Sample{
		Step:     b.steps - 1,
		Time:     float64(b.steps) * b.cfg.TimeStep,
		Position: b.y,
		Velocity: b.vy,
	}
}

func (b *Ball) Position() float64  { return b.y }
func (b *Ball) Velocity() float64  { return b.vy }
func (b *Ball) Steps() int         { return b.steps }
func (b *Ball) Config() BallConfig { return b.cfg }

// Start returns the initial height and velocity the ball was built with.
func (b *Ball) Start() (float64, float64) { return b.y0, b.vy0 }

// Reset puts the ball back at its starting state.
func (b *Ball) Reset() {
	b.y, b.vy = b.y0, b.vy0
	b.steps = 0
}

// Energy is the mechanical energy per unit mass, measured from the floor.
func (b *Ball) Energy(s dynamo.Sample) float64 {
	return b.cfg.Gravity*s.Position + 0.5*s.Velocity*s.Velocity
}

func (b *Ball) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity":        b.cfg.Gravity,
		"dt":             b.cfg.TimeStep,
		"restitution":    b.cfg.Restitution,
		"rest_threshold": b.cfg.RestThreshold,
	}
}

// SetParam changes one configuration value. The new configuration is
// validated as a whole and left untouched on error.
func (b *Ball) SetParam(name string, value float64) error {
	cfg := b.cfg
	switch name {
	case "gravity":
		cfg.Gravity = value
	case "dt":
		cfg.TimeStep = value
	case "restitution":
		cfg.Restitution = value
	case "rest_threshold":
		cfg.RestThreshold = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	b.cfg = cfg
	return nil
}
