package integrators

import "github.com/san-kum/gravlab/internal/dynamo"

// Leapfrog is the kick-drift-kick (velocity Verlet) scheme, order 2 and
// symplectic: orbital energy oscillates within a bounded band instead of
// drifting secularly.
//
// Each step recomputes the opening half-kick from the acceleration at the
// current positions, so the scheme is self-starting: no half-step velocity
// survives between calls and the first step needs no separate bootstrap.
//
// Requires the positions-first state layout: the first half of the state
// vector holds positions and the second half velocities, so the second half
// of the derivative holds accelerations.
type Leapfrog struct {
	scratch dynamo.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(sys dynamo.System, x dynamo.State, t, h float64) (dynamo.State, error) {
	n := len(x)
	half := n / 2

	if len(l.scratch) != n {
		l.scratch = make(dynamo.State, n)
	}

	dx, err := sys.Derive(x, t)
	if err != nil {
		return nil, err
	}

	result := make(dynamo.State, n)
	halfH := h * 0.5

	// Kick: advance velocities half a step using a(x_n).
	for i := 0; i < half; i++ {
		l.scratch[half+i] = x[half+i] + dx[half+i]*halfH
	}

	// Drift: advance positions a full step using the half-step velocities.
	for i := 0; i < half; i++ {
		result[i] = x[i] + l.scratch[half+i]*h
		l.scratch[i] = result[i]
	}

	dxNew, err := sys.Derive(l.scratch, t+h)
	if err != nil {
		return nil, err
	}

	// Kick: close the velocity update with a(x_{n+1}).
	for i := 0; i < half; i++ {
		result[half+i] = l.scratch[half+i] + dxNew[half+i]*halfH
	}

	return result, nil
}
