package integrators

import "github.com/san-kum/gravlab/internal/dynamo"

const (
	// DefaultTolerance bounds the per-component change between successive
	// fixed-point iterates before a step is accepted.
	DefaultTolerance = 1e-12

	// DefaultMaxIterations caps the fixed-point loop; exceeding it fails the
	// step with a ConvergenceError.
	DefaultMaxIterations = 50
)

// FixedPoint holds the convergence parameters shared by the implicit
// schemes. The zero value is replaced by the package defaults.
type FixedPoint struct {
	Tolerance     float64
	MaxIterations int
}

func (fp FixedPoint) tolerance() float64 {
	if fp.Tolerance <= 0 {
		return DefaultTolerance
	}
	return fp.Tolerance
}

func (fp FixedPoint) maxIterations() int {
	if fp.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return fp.MaxIterations
}

// solve iterates guess -> update(guess) until successive iterates differ by
// less than the tolerance. update must return the full candidate new state.
func (fp FixedPoint) solve(guess dynamo.State, update func(dynamo.State) (dynamo.State, error)) (dynamo.State, error) {
	tol := fp.tolerance()
	maxIter := fp.maxIterations()

	residual := 0.0
	for i := 0; i < maxIter; i++ {
		next, err := update(guess)
		if err != nil {
			return nil, err
		}
		residual = next.MaxDiff(guess)
		guess = next
		if residual < tol {
			return guess, nil
		}
	}
	return nil, &dynamo.ConvergenceError{Iterations: maxIter, Residual: residual}
}

// InverseEuler is the implicit (backward) Euler scheme, order 1. It solves
//
//	x_{n+1} = x_n + h*f(x_{n+1}, t+h)
//
// by fixed-point iteration seeded with an explicit Euler predictor. The
// force is evaluated at the new state, which damps orbital energy
// unconditionally.
type InverseEuler struct {
	FixedPoint
}

func NewInverseEuler() *InverseEuler {
	return &InverseEuler{}
}

func (ie *InverseEuler) Step(sys dynamo.System, x dynamo.State, t, h float64) (dynamo.State, error) {
	n := len(x)

	f0, err := sys.Derive(x, t)
	if err != nil {
		return nil, err
	}

	guess := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		guess[i] = x[i] + h*f0[i]
	}

	return ie.solve(guess, func(g dynamo.State) (dynamo.State, error) {
		fg, err := sys.Derive(g, t+h)
		if err != nil {
			return nil, err
		}
		next := make(dynamo.State, n)
		for i := 0; i < n; i++ {
			next[i] = x[i] + h*fg[i]
		}
		return next, nil
	})
}
