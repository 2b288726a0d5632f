// Package metrics computes conservation diagnostics for propagated
// trajectories: total energy, angular momentum and linear momentum, and
// their drift relative to the initial state.
package metrics

import (
	"math"

	"github.com/san-kum/gravlab/internal/dynamo"
)

// nearZero guards the relative-drift division: quantities whose initial
// magnitude is below this are reported as absolute drift.
const nearZero = 1e-12

// EnergyDrift is a streaming metric tracking the maximum relative energy
// deviation from the first observed state.
type EnergyDrift struct {
	sys      dynamo.Hamiltonian
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(sys dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{sys: sys}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	energy := e.sys.Energy(x)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	drift := math.Abs(energy - e.initial)
	if math.Abs(e.initial) > nearZero {
		drift /= math.Abs(e.initial)
	}
	if drift > e.maxDrift {
		e.maxDrift = drift
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
