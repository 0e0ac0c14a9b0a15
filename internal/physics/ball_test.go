package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/ballsim/internal/dynamo"
)

func animationConfig() BallConfig {
	return BallConfig{Gravity: 0.5, TimeStep: 0.1, Restitution: 0.75, RestThreshold: 0.5}
}

func TestNewBall_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  BallConfig
	}{
		{"zero dt", BallConfig{Gravity: 9.8, TimeStep: 0, Restitution: 1}},
		{"negative dt", BallConfig{Gravity: 9.8, TimeStep: -0.1, Restitution: 1}},
		{"restitution above one", BallConfig{Gravity: 9.8, TimeStep: 0.01, Restitution: 1.2}},
		{"negative restitution", BallConfig{Gravity: 9.8, TimeStep: 0.01, Restitution: -0.1}},
		{"negative threshold", BallConfig{Gravity: 9.8, TimeStep: 0.01, Restitution: 1, RestThreshold: -1}},
		{"NaN gravity", BallConfig{Gravity: math.NaN(), TimeStep: 0.01, Restitution: 1}},
		{"Inf dt", BallConfig{Gravity: 9.8, TimeStep: math.Inf(1), Restitution: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBall(tt.cfg, 10, 0)
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestNewBall_InvalidStart(t *testing.T) {
	tests := []struct {
		name    string
		y0, vy0 float64
	}{
		{"below floor", -1, 0},
		{"NaN height", math.NaN(), 0},
		{"Inf velocity", 5, math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBall(DefaultBallConfig(), tt.y0, tt.vy0)
			if !errors.Is(err, dynamo.ErrInvalidState) {
				t.Errorf("expected ErrInvalidState, got %v", err)
			}
		})
	}
}

func TestBallStep_UpdateOrder(t *testing.T) {
	b, err := NewBall(animationConfig(), 20, 0)
	if err != nil {
		t.Fatal(err)
	}

	s := b.Step()

	wantV := 0.0 - 0.5*0.1
	wantY := 20.0 + wantV*0.1
	if s.Velocity != wantV {
		t.Errorf("velocity = %v, want %v", s.Velocity, wantV)
	}
	if s.Position != wantY {
		t.Errorf("position = %v, want %v", s.Position, wantY)
	}
	if s.Step != 0 || s.Bounced {
		t.Errorf("unexpected sample metadata: %+v", s)
	}
}

func TestBallScenario_FirstContact(t *testing.T) {
	cfg := animationConfig()
	b, err := NewBall(cfg, 20, 0)
	if err != nil {
		t.Fatal(err)
	}

	prev := b.Current()
	contact := -1
	for s := range b.Run(300) {
		if s.Bounced {
			contact = s.Step
			before := prev.Velocity - cfg.Gravity*cfg.TimeStep
			want := before * -1 * cfg.Restitution
			if s.Velocity != want {
				t.Errorf("rebound velocity = %v, want %v", s.Velocity, want)
			}
			if math.Abs(s.Velocity-3.3375) > 1e-9 {
				t.Errorf("rebound velocity = %v, want ~3.3375", s.Velocity)
			}
			break
		}
		prev = s
	}

	if contact != 88 {
		t.Errorf("first contact at step %d, want 88", contact)
	}
}

func TestBallRun_Length(t *testing.T) {
	tests := []struct {
		steps int
		want  int
	}{
		{0, 0},
		{-5, 0},
		{1, 1},
		{300, 300},
	}

	for _, tt := range tests {
		b, _ := NewBall(animationConfig(), 20, 0)
		n := 0
		for s := range b.Run(tt.steps) {
			if s.Step != n {
				t.Errorf("steps=%d: sample %d has Step %d", tt.steps, n, s.Step)
			}
			n++
		}
		if n != tt.want {
			t.Errorf("Run(%d) yielded %d samples, want %d", tt.steps, n, tt.want)
		}
	}
}

func TestBallRun_NotRestartable(t *testing.T) {
	b, _ := NewBall(animationConfig(), 20, 0)
	seq := b.Run(10)

	n := 0
	for range seq {
		n++
		if n == 4 {
			break
		}
	}
	for range seq {
		n++
	}
	for range seq {
		n++
	}

	if n != 10 {
		t.Errorf("expected 10 samples across all passes, got %d", n)
	}
	if b.Steps() != 10 {
		t.Errorf("expected ball to have taken 10 steps, got %d", b.Steps())
	}
}

func TestBallReset(t *testing.T) {
	b, _ := NewBall(animationConfig(), 20, 1)
	for range b.Run(50) {
	}
	b.Reset()

	cur := b.Current()
	if cur.Position != 20 || cur.Velocity != 1 || cur.Step != -1 || b.Steps() != 0 {
		t.Errorf("reset did not restore start state: %+v", cur)
	}
}

func TestBallEnergy(t *testing.T) {
	b, _ := NewBall(DefaultBallConfig(), 10, 0)
	e := b.Energy(dynamo.Sample{Position: 10, Velocity: 2})
	want := 9.8*10 + 0.5*4
	if math.Abs(e-want) > 1e-12 {
		t.Errorf("energy = %f, want %f", e, want)
	}
}

func TestBallSetParam(t *testing.T) {
	b, _ := NewBall(DefaultBallConfig(), 10, 0)

	if err := b.SetParam("restitution", 0.5); err != nil {
		t.Fatalf("SetParam failed: %v", err)
	}
	if b.Config().Restitution != 0.5 {
		t.Errorf("restitution = %f, want 0.5", b.Config().Restitution)
	}

	if err := b.SetParam("dt", 0); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if b.Config().TimeStep != DefaultTimeStep {
		t.Error("invalid SetParam should leave config untouched")
	}

	if err := b.SetParam("mass", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}

	params := b.GetParams()
	if len(params) != 4 || params["restitution"] != 0.5 {
		t.Errorf("unexpected params: %v", params)
	}
}
