// Package integrators implements the time-integration schemes used to
// propagate gravitational systems. All steppers share the dynamo.Stepper
// contract: advance a flat state from t to t+h, or fail with a typed error.
//
// Explicit schemes (Euler, RK4, RK45, Leapfrog) evaluate the system's
// derivative at known states. Implicit schemes (InverseEuler, CrankNicolson)
// solve for the new state by fixed-point iteration.
package integrators

import "github.com/san-kum/gravlab/internal/dynamo"

// Euler is the explicit (forward) Euler scheme, order 1. For orbital motion
// its energy error grows monotonically.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, t, h float64) (dynamo.State, error) {
	dx, err := sys.Derive(x, t)
	if err != nil {
		return nil, err
	}
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + h*dx[i]
	}
	return result, nil
}
