package integrators

import "github.com/san-kum/gravlab/internal/dynamo"

// CrankNicolson is the trapezoidal scheme, order 2. It averages the
// derivative at the old and new states,
//
//	x_{n+1} = x_n + (h/2)*(f(x_n, t) + f(x_{n+1}, t+h))
//
// and resolves the implicit dependence on x_{n+1} by fixed-point iteration,
// seeded with an explicit Euler predictor.
type CrankNicolson struct {
	FixedPoint
}

func NewCrankNicolson() *CrankNicolson {
	return &CrankNicolson{}
}

func (cn *CrankNicolson) Step(sys dynamo.System, x dynamo.State, t, h float64) (dynamo.State, error) {
	n := len(x)

	f0, err := sys.Derive(x, t)
	if err != nil {
		return nil, err
	}

	guess := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		guess[i] = x[i] + h*f0[i]
	}

	half := h * 0.5
	return cn.solve(guess, func(g dynamo.State) (dynamo.State, error) {
		fg, err := sys.Derive(g, t+h)
		if err != nil {
			return nil, err
		}
		next := make(dynamo.State, n)
		for i := 0; i < n; i++ {
			next[i] = x[i] + half*(f0[i]+fg[i])
		}
		return next, nil
	})
}
