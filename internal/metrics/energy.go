package metrics

import (
	"math"

	"github.com/san-kum/yeewave/internal/physics"
)

// EnergyDrift tracks the field energy relative to the first observation.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
	history       []float64
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) OnTick(tick int, fs *physics.FieldState) {
	energy := fs.Energy()

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		rel := energy / e.initialEnergy
		e.history = append(e.history, rel)
		e.maxDrift = math.Max(e.maxDrift, math.Abs(rel-1))
	}
}

// Value is the largest relative deviation from the initial energy seen so far.
func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

// History holds E(t)/E(0) for every observation.
func (e *EnergyDrift) History() []float64 {
	return e.history
}

func (e *EnergyDrift) Samples() int { return e.samples }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
	e.history = nil
}
