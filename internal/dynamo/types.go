package dynamo

import "math"

// State is the flat state vector of a system: all positions first, then all
// velocities, matching the layout the steppers assume.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MaxDiff returns the largest absolute component-wise difference between s
// and other. Used as the residual of fixed-point iterations.
func (s State) MaxDiff(other State) float64 {
	max := 0.0
	for i := range s {
		d := math.Abs(s[i] - other[i])
		if d > max {
			max = d
		}
	}
	return max
}

// System is an ODE system dX/dt = f(X, t). Derive is a pure function of the
// state; it returns an error for physically degenerate configurations.
type System interface {
	Derive(x State, t float64) (State, error)
	Dim() int
}

// Hamiltonian is implemented by systems whose total energy can be computed
// from a state.
type Hamiltonian interface {
	Energy(x State) float64
}

// Stepper advances a system state from t to t+h. Steppers are pure step
// functions: they never mutate x and hold only scratch buffers.
type Stepper interface {
	Step(sys System, x State, t, h float64) (State, error)
}

// Metric accumulates a scalar observation over the course of a run.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// Observer is notified of every recorded state during a run.
type Observer interface {
	OnStep(x State, t float64)
}

// Config holds the per-run propagation parameters.
type Config struct {
	Dt    float64
	Steps int
	// Stride subsamples the recorded trajectory: a snapshot is kept every
	// Stride steps (plus the final state). Zero means record every step.
	Stride int
}

func DefaultConfig() Config {
	return Config{
		Dt:     0.01,
		Steps:  1000,
		Stride: 1,
	}
}

// Trajectory is the ordered state history of one run. It is append-only
// during propagation and never mutated afterwards.
type Trajectory struct {
	Times   []float64
	States  []State
	Metrics map[string]float64
}

func (tr *Trajectory) Len() int { return len(tr.States) }

// At returns the k-th recorded snapshot.
func (tr *Trajectory) At(k int) (float64, State) {
	return tr.Times[k], tr.States[k]
}

// Final returns the last recorded snapshot.
func (tr *Trajectory) Final() (float64, State) {
	return tr.At(tr.Len() - 1)
}
