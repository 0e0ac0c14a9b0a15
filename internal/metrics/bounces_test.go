package metrics

import (
	"testing"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/physics"
)

func TestBounces(t *testing.T) {
	m := NewBounces()
	for _, bounced := range []bool{false, true, false, true, true} {
		m.Observe(dynamo.Sample{Bounced: bounced})
	}
	if m.Value() != 3 {
		t.Errorf("expected 3 bounces, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestPeakHeight(t *testing.T) {
	tests := []struct {
		name      string
		positions []float64
		expected  float64
	}{
		{"empty", nil, 0},
		{"single", []float64{3}, 3},
		{"rising then falling", []float64{1, 4, 2}, 4},
		{"all zero", []float64{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPeakHeight()
			for _, p := range tt.positions {
				m.Observe(dynamo.Sample{Position: p})
			}
			if m.Value() != tt.expected {
				t.Errorf("expected peak %f, got %f", tt.expected, m.Value())
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	ball, _ := physics.NewBall(physics.DefaultBallConfig(), 1, 0)
	ms := Defaults(ball, 9.8)

	names := map[string]bool{}
	for _, m := range ms {
		names[m.Name()] = true
	}
	for _, want := range []string{"bounces", "peak_height", "energy", "energy_loss"} {
		if !names[want] {
			t.Errorf("missing default metric %q", want)
		}
	}
}
