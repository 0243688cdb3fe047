package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/twobody"
)

// EnergyDrift tracks the largest relative deviation of total energy from the
// first observed value.
type EnergyDrift struct {
	name          string
	params        twobody.Params
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(p twobody.Params) *EnergyDrift {
	return &EnergyDrift{
		name:   "energy_drift",
		params: p,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(t float64, s twobody.State) {
	energy := twobody.Energy(e.params, s)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 && !math.IsInf(e.initialEnergy, 0) {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
