package metrics

import (
	"math"

	"github.com/san-kum/ballsim/internal/dynamo"
)

// Energy is the mean specific mechanical energy g*y + vy^2/2 over all
// observed samples.
type Energy struct {
	name        string
	gravity     float64
	samples     int
	totalEnergy float64
}

func NewEnergy(gravity float64) *Energy {
	return &Energy{
		name:    "energy",
		gravity: gravity,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s dynamo.Sample) {
	e.totalEnergy += e.gravity*s.Position + 0.5*s.Velocity*s.Velocity
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyLoss is the fraction of the first observed energy that is gone by
// the last observed sample.
type EnergyLoss struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	samples       int
	dyn           dynamo.Hamiltonian
}

func NewEnergyLoss(dyn dynamo.Hamiltonian) *EnergyLoss {
	return &EnergyLoss{
		name: "energy_loss",
		dyn:  dyn,
	}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(s dynamo.Sample) {
	energy := e.dyn.Energy(s)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
	e.samples++
}

func (e *EnergyLoss) Value() float64 {
	if e.samples == 0 || e.initialEnergy == 0 {
		return 0
	}
	return (e.initialEnergy - e.currentEnergy) / math.Abs(e.initialEnergy)
}

func (e *EnergyLoss) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.samples = 0
}
