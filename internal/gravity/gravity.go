// Package gravity implements Newtonian pairwise gravitation as a dynamo
// System. Force evaluation is exact: no softening length and no truncation,
// so coincident bodies are a fatal singular configuration rather than a
// smoothed-over one.
package gravity

import (
	"fmt"

	"github.com/san-kum/gravlab/internal/dynamo"
	"github.com/san-kum/gravlab/internal/vec"
)

// parallelThreshold is the body count above which the pairwise sum is
// spread across workers. Below it the serial symmetric kernel wins.
const parallelThreshold = 32

// Model is an N-body gravitational system. Masses, names and G are fixed at
// construction; the evolving positions and velocities live in the flat
// state vector passed to Derive.
type Model struct {
	masses []float64
	names  []string
	g      float64
}

// New validates the bodies and returns a Model. Non-positive masses and a
// non-positive gravitational constant are configuration errors.
func New(bodies []Body, g float64) (*Model, error) {
	if len(bodies) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 bodies, got %d", dynamo.ErrInvalidConfig, len(bodies))
	}
	if g <= 0 {
		return nil, fmt.Errorf("%w: gravitational constant must be positive, got %g", dynamo.ErrInvalidConfig, g)
	}

	m := &Model{
		masses: make([]float64, len(bodies)),
		names:  make([]string, len(bodies)),
		g:      g,
	}
	for i, b := range bodies {
		if b.Mass <= 0 {
			return nil, fmt.Errorf("%w: body %d (%q) has non-positive mass %g",
				dynamo.ErrInvalidConfig, i, b.Name, b.Mass)
		}
		m.masses[i] = b.Mass
		m.names[i] = b.Name
	}
	return m, nil
}

func (m *Model) N() int          { return len(m.masses) }
func (m *Model) Dim() int        { return 6 * len(m.masses) }
func (m *Model) G() float64      { return m.g }
func (m *Model) Names() []string { return m.names }

// Bodies reconstructs the per-body view of a flat state.
func (m *Model) Bodies(x dynamo.State) []Body {
	n := m.N()
	bodies := make([]Body, n)
	for i := 0; i < n; i++ {
		bodies[i] = Body{
			Name: m.names[i],
			Mass: m.masses[i],
			Pos:  position(x, n, i),
			Vel:  velocity(x, n, i),
		}
	}
	return bodies
}

// Derive returns [velocities | accelerations] for the given state. It is a
// pure function of x; a coincident body pair fails with a SingularError.
func (m *Model) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	n := m.N()
	dx := make(dynamo.State, len(x))

	// dr/dt = v
	copy(dx[:3*n], x[3*n:])

	acc, err := m.accelerations(x)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		dx[3*n+3*i] = acc[i].X
		dx[3*n+3*i+1] = acc[i].Y
		dx[3*n+3*i+2] = acc[i].Z
	}
	return dx, nil
}

// accelerations computes the net gravitational acceleration on every body.
func (m *Model) accelerations(x dynamo.State) ([]vec.Vec, error) {
	if m.N() >= parallelThreshold {
		return m.accelParallel(x)
	}
	return m.accelSerial(x)
}

// accelSerial walks unordered pairs once, applying the equal-and-opposite
// contributions to both bodies.
func (m *Model) accelSerial(x dynamo.State) ([]vec.Vec, error) {
	n := m.N()
	acc := make([]vec.Vec, n)

	for i := 0; i < n; i++ {
		ri := position(x, n, i)

		for j := i + 1; j < n; j++ {
			rj := position(x, n, j)

			d := rj.Sub(ri)
			r2 := d.NormSq()
			if r2 == 0 {
				return nil, &dynamo.SingularError{I: i, J: j}
			}

			r := d.Norm()
			inv3 := 1.0 / (r2 * r)

			acc[i] = acc[i].Add(d.Scale(m.g * m.masses[j] * inv3))
			acc[j] = acc[j].Add(d.Scale(-m.g * m.masses[i] * inv3))
		}
	}

	return acc, nil
}

// accelParallel computes full acceleration rows in parallel. Each body's sum
// is accumulated by exactly one worker in index order, so results are
// bit-identical between runs regardless of worker scheduling.
func (m *Model) accelParallel(x dynamo.State) ([]vec.Vec, error) {
	n := m.N()
	acc := make([]vec.Vec, n)
	errs := make([]error, n)

	dynamo.ParallelFor(n, 8, func(start, end int) {
		for i := start; i < end; i++ {
			ri := position(x, n, i)
			var sum vec.Vec

			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				rj := position(x, n, j)

				d := rj.Sub(ri)
				r2 := d.NormSq()
				if r2 == 0 {
					errs[i] = &dynamo.SingularError{I: min(i, j), J: max(i, j)}
					return
				}

				r := d.Norm()
				sum = sum.Add(d.Scale(m.g * m.masses[j] / (r2 * r)))
			}
			acc[i] = sum
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
