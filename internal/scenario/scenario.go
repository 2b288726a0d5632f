// Package scenario supplies named initial conditions for the propagator.
// Each builder is a pure function returning the bodies, the gravitational
// constant and a recommended step size and step count.
package scenario

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/gravlab/internal/gravity"
	"github.com/san-kum/gravlab/internal/vec"
)

// Figure8Period is the period of the figure-eight choreography in the
// normalized units (G = 1, equal unit masses) of its initial conditions.
const Figure8Period = 6.32591398

// Scenario bundles a named initial configuration with its recommended
// propagation parameters.
type Scenario struct {
	Name        string
	Description string
	Bodies      []gravity.Body
	G           float64
	Dt          float64
	Steps       int
	// Period is the orbital period of the configuration where one is known,
	// zero otherwise.
	Period float64
}

// Solar is a simplified solar system: Sun, Earth and Jupiter in the plane,
// in units of AU, years and solar masses (G = 4*pi^2). Planet speeds are the
// circular Keplerian values around the Sun.
func Solar() Scenario {
	g := 4 * math.Pi * math.Pi

	return Scenario{
		Name:        "solar",
		Description: "Sun, Earth and Jupiter (AU / years / solar masses)",
		G:           g,
		Dt:          1e-3,
		Steps:       20000,
		Period:      1.0, // Earth year
		Bodies: []gravity.Body{
			{Name: "Sun", Mass: 1.0},
			{Name: "Earth", Mass: 3.0e-6,
				Pos: vec.New(1.0, 0, 0),
				Vel: vec.New(0, math.Sqrt(g/1.0), 0)},
			{Name: "Jupiter", Mass: 9.5e-4,
				Pos: vec.New(5.2, 0, 0),
				Vel: vec.New(0, math.Sqrt(g/5.2), 0)},
		},
	}
}

// FigureEight is the three-body figure-eight choreography: three equal
// masses chasing each other along a planar eight-shaped curve.
func FigureEight() Scenario {
	return Scenario{
		Name:        "figure8",
		Description: "three equal masses on the figure-eight choreography",
		G:           1.0,
		Dt:          1e-3,
		Steps:       6500,
		Period:      Figure8Period,
		Bodies: []gravity.Body{
			{Name: "A", Mass: 1.0,
				Pos: vec.New(-0.97000436, 0.24308753, 0),
				Vel: vec.New(0.4662036850, 0.4323657300, 0)},
			{Name: "B", Mass: 1.0,
				Pos: vec.New(0, 0, 0),
				Vel: vec.New(-0.93240737, -0.86473146, 0)},
			{Name: "C", Mass: 1.0,
				Pos: vec.New(0.97000436, -0.24308753, 0),
				Vel: vec.New(0.4662036850, 0.4323657300, 0)},
		},
	}
}

// Trio is an asymmetric bound three-body configuration: unequal masses on a
// near-equilateral triangle with tangential velocities scaled well below the
// circular value, recentered so the center of mass rests at the origin with
// zero net momentum.
func Trio() Scenario {
	g := 1.0
	masses := []float64{1.0, 0.8, 1.2}
	names := []string{"A", "B", "C"}

	side := 2.0
	pos := []vec.Vec{
		vec.New(-side/2, -side/(2*math.Sqrt(3)), 0),
		vec.New(side/2, -side/(2*math.Sqrt(3)), 0),
		vec.New(0, side/math.Sqrt(3), 0),
	}

	total := 0.0
	for _, m := range masses {
		total += m
	}

	var com vec.Vec
	for i, p := range pos {
		com = com.Add(p.Scale(masses[i]))
	}
	com = com.Scale(1 / total)
	for i := range pos {
		pos[i] = pos[i].Sub(com)
	}

	// Tangential speeds scaled below the circular value so total energy is
	// negative but the bodies avoid close encounters.
	meanRadius := side / math.Sqrt(3)
	speed := 0.45 * math.Sqrt(g*total/meanRadius)

	vel := make([]vec.Vec, 3)
	for i, p := range pos {
		planar := math.Hypot(p.X, p.Y)
		if planar > 0 {
			vel[i] = vec.New(-p.Y/planar, p.X/planar, 0).Scale(speed)
		}
	}

	// Zero the net momentum.
	var p vec.Vec
	for i := range vel {
		p = p.Add(vel[i].Scale(masses[i]))
	}
	correction := p.Scale(1 / total)
	for i := range vel {
		vel[i] = vel[i].Sub(correction)
	}

	bodies := make([]gravity.Body, 3)
	for i := range bodies {
		bodies[i] = gravity.Body{Name: names[i], Mass: masses[i], Pos: pos[i], Vel: vel[i]}
	}

	return Scenario{
		Name:        "trio",
		Description: "asymmetric bound three-body triangle",
		G:           g,
		Dt:          1e-3,
		Steps:       15000,
		Bodies:      bodies,
	}
}

// Binary is an exact two-body circular orbit about the barycenter: a unit
// primary and a light secondary separated by one length unit. The test
// workhorse, since the orbital radii are conserved exactly.
func Binary() Scenario {
	g := 1.0
	m1, m2 := 1.0, 1e-3
	sep := 1.0
	total := m1 + m2
	omega := math.Sqrt(g * total / (sep * sep * sep))

	d1 := sep * m2 / total
	d2 := sep * m1 / total

	return Scenario{
		Name:        "binary",
		Description: "two-body circular orbit about the barycenter",
		G:           g,
		Dt:          1e-3,
		Steps:       6300,
		Period:      2 * math.Pi / omega,
		Bodies: []gravity.Body{
			{Name: "primary", Mass: m1,
				Pos: vec.New(-d1, 0, 0),
				Vel: vec.New(0, -omega*d1, 0)},
			{Name: "secondary", Mass: m2,
				Pos: vec.New(d2, 0, 0),
				Vel: vec.New(0, omega*d2, 0)},
		},
	}
}

// Collision places two bodies at the same point. Propagation must fail at
// step zero with a singular configuration.
func Collision() Scenario {
	return Scenario{
		Name:        "collision",
		Description: "two coincident bodies (degenerate)",
		G:           1.0,
		Dt:          0.01,
		Steps:       10,
		Bodies: []gravity.Body{
			{Name: "a", Mass: 1.0, Pos: vec.New(0.5, 0.5, 0)},
			{Name: "b", Mass: 1.0, Pos: vec.New(0.5, 0.5, 0)},
		},
	}
}

var builders = map[string]func() Scenario{
	"solar":     Solar,
	"figure8":   FigureEight,
	"trio":      Trio,
	"binary":    Binary,
	"collision": Collision,
}

// Get returns the named scenario.
func Get(name string) (Scenario, error) {
	fn, ok := builders[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario: %s (available: %v)", name, List())
	}
	return fn(), nil
}

// List returns the available scenario names, sorted.
func List() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
