package dynamo

import "math"

// Sample is the ball state right after one step.
// Step is the zero-based index of the step that produced it.
type Sample struct {
	Step     int
	Time     float64
	Position float64
	Velocity float64
	Bounced  bool
}

func (s Sample) IsValid() bool {
	for _, v := range [...]float64{s.Time, s.Position, s.Velocity} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Stepper advances a single body by one fixed time step.
type Stepper interface {
	Step() Sample
	Current() Sample
}

// Hamiltonian reports the specific mechanical energy of a sample.
type Hamiltonian interface {
	Energy(s Sample) float64
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample)
}
