package metrics

import (
	"math"

	"github.com/san-kum/gravlab/internal/dynamo"
	"github.com/san-kum/gravlab/internal/gravity"
)

// Drift summarizes how far a conserved quantity strayed from its initial
// value over a trajectory. Max is the largest relative deviation, or the
// largest absolute deviation when the initial magnitude is ~0.
type Drift struct {
	Initial  float64
	Max      float64
	Absolute bool
}

// Report holds the conservation diagnostics of one trajectory.
type Report struct {
	Energy          Drift
	AngularMomentum Drift
	LinearMomentum  Drift
}

// NewReport runs a pure post-processing pass over the trajectory and
// reports the drift of each conserved quantity.
func NewReport(m *gravity.Model, traj *dynamo.Trajectory) Report {
	if traj.Len() == 0 {
		return Report{}
	}

	_, x0 := traj.At(0)
	e0 := m.Energy(x0)
	l0 := m.AngularMomentum(x0)
	p0 := m.LinearMomentum(x0)

	energy := newDrift(e0)
	angular := newDrift(l0.Norm())
	linear := newDrift(p0.Norm())

	for k := 1; k < traj.Len(); k++ {
		_, x := traj.At(k)
		energy.observe(math.Abs(m.Energy(x) - e0))
		angular.observe(m.AngularMomentum(x).Sub(l0).Norm())
		linear.observe(m.LinearMomentum(x).Sub(p0).Norm())
	}

	return Report{
		Energy:          energy,
		AngularMomentum: angular,
		LinearMomentum:  linear,
	}
}

func newDrift(initial float64) Drift {
	return Drift{
		Initial:  initial,
		Absolute: math.Abs(initial) <= nearZero,
	}
}

func (d *Drift) observe(deviation float64) {
	if !d.Absolute {
		deviation /= math.Abs(d.Initial)
	}
	if deviation > d.Max {
		d.Max = deviation
	}
}

// EnergySeries returns the total energy at every trajectory sample, for
// plotting.
func EnergySeries(m *gravity.Model, traj *dynamo.Trajectory) []float64 {
	series := make([]float64, traj.Len())
	for k := range series {
		_, x := traj.At(k)
		series[k] = m.Energy(x)
	}
	return series
}
