package gravity

import (
	"github.com/san-kum/gravlab/internal/dynamo"
	"github.com/san-kum/gravlab/internal/vec"
)

// Energy returns the total mechanical energy of a state: the kinetic sum
// plus the pairwise gravitational potential. A coincident pair yields -Inf
// through the division; callers checking conservation operate on states the
// propagator already accepted.
func (m *Model) Energy(x dynamo.State) float64 {
	n := m.N()
	ke := 0.0
	pe := 0.0

	for i := 0; i < n; i++ {
		vi := velocity(x, n, i)
		ke += 0.5 * m.masses[i] * vi.NormSq()

		ri := position(x, n, i)
		for j := i + 1; j < n; j++ {
			r := position(x, n, j).Sub(ri).Norm()
			pe -= m.g * m.masses[i] * m.masses[j] / r
		}
	}

	return ke + pe
}

// AngularMomentum returns the total angular momentum sum m_i (r_i x v_i).
// Planar systems carry it entirely in the Z component.
func (m *Model) AngularMomentum(x dynamo.State) vec.Vec {
	n := m.N()
	var l vec.Vec
	for i := 0; i < n; i++ {
		ri := position(x, n, i)
		vi := velocity(x, n, i)
		l = l.Add(ri.Cross(vi).Scale(m.masses[i]))
	}
	return l
}

// LinearMomentum returns the total linear momentum sum m_i v_i.
func (m *Model) LinearMomentum(x dynamo.State) vec.Vec {
	n := m.N()
	var p vec.Vec
	for i := 0; i < n; i++ {
		p = p.Add(velocity(x, n, i).Scale(m.masses[i]))
	}
	return p
}
