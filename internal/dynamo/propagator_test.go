package dynamo

import (
	"context"
	"errors"
	"math"
	"testing"
)

// decay is dx/dt = -x with exact solution e^{-t}.
type decay struct{}

func (d *decay) Dim() int { return 1 }
func (d *decay) Derive(x State, t float64) (State, error) {
	return State{-x[0]}, nil
}

// eulerStep is a minimal stepper for propagator tests.
type eulerStep struct{}

func (e *eulerStep) Step(sys System, x State, t, h float64) (State, error) {
	dx, err := sys.Derive(x, t)
	if err != nil {
		return nil, err
	}
	next := make(State, len(x))
	for i := range x {
		next[i] = x[i] + h*dx[i]
	}
	return next, nil
}

func TestPropagatorRun(t *testing.T) {
	p := New(&decay{}, &eulerStep{})

	traj, err := p.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Steps: 10})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if traj.Len() != 11 {
		t.Errorf("expected 11 snapshots, got %d", traj.Len())
	}

	tFinal, x := traj.Final()
	if math.Abs(tFinal-1.0) > 1e-12 {
		t.Errorf("expected final time 1.0, got %g", tFinal)
	}
	if math.Abs(x[0]-math.Exp(-1)) > 0.2 {
		t.Errorf("expected ~%.4f, got %.4f", math.Exp(-1), x[0])
	}

	// Initial state is recorded unmodified.
	t0, x0 := traj.At(0)
	if t0 != 0 || x0[0] != 1.0 {
		t.Errorf("first snapshot: t=%g x=%v", t0, x0)
	}
}

func TestPropagatorStride(t *testing.T) {
	p := New(&decay{}, &eulerStep{})

	traj, err := p.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Steps: 100, Stride: 10})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Initial snapshot plus one every 10 steps.
	if traj.Len() != 11 {
		t.Errorf("expected 11 snapshots, got %d", traj.Len())
	}
	if tFinal, _ := traj.Final(); math.Abs(tFinal-10.0) > 1e-9 {
		t.Errorf("expected final time 10.0, got %g", tFinal)
	}
}

func TestPropagatorInvalidConfig(t *testing.T) {
	p := New(&decay{}, &eulerStep{})

	tests := []struct {
		name string
		x0   State
		cfg  Config
	}{
		{"zero dt", State{1}, Config{Dt: 0, Steps: 10}},
		{"negative dt", State{1}, Config{Dt: -0.1, Steps: 10}},
		{"zero steps", State{1}, Config{Dt: 0.1, Steps: 0}},
		{"negative steps", State{1}, Config{Dt: 0.1, Steps: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Run(context.Background(), tt.x0, tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected invalid config, got %v", err)
			}
		})
	}

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := p.Run(context.Background(), State{1, 2}, Config{Dt: 0.1, Steps: 10})
		if !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("expected dimension mismatch, got %v", err)
		}
	})
}

type failAfter struct {
	calls int
	limit int
}

func (f *failAfter) Dim() int { return 1 }
func (f *failAfter) Derive(x State, t float64) (State, error) {
	f.calls++
	if f.calls > f.limit {
		return nil, &SingularError{I: 0, J: 1}
	}
	return State{-x[0]}, nil
}

func TestPropagatorWrapsStepFailure(t *testing.T) {
	sys := &failAfter{limit: 3}
	p := New(sys, &eulerStep{})

	_, err := p.Run(context.Background(), State{1.0}, Config{Dt: 0.5, Steps: 10})
	if !errors.Is(err, ErrSingular) {
		t.Fatalf("expected singular error, got %v", err)
	}

	var step *StepError
	if !errors.As(err, &step) {
		t.Fatalf("expected *StepError, got %T", err)
	}
	if step.Step != 3 {
		t.Errorf("expected failure at step 3, got %d", step.Step)
	}
	if math.Abs(step.Time-1.5) > 1e-12 {
		t.Errorf("expected failure time 1.5, got %g", step.Time)
	}
}

type blowUp struct{}

func (b *blowUp) Dim() int { return 1 }
func (b *blowUp) Derive(x State, t float64) (State, error) {
	return State{math.Inf(1)}, nil
}

func TestPropagatorRejectsInvalidState(t *testing.T) {
	p := New(&blowUp{}, &eulerStep{})

	_, err := p.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Steps: 10})
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected invalid state error, got %v", err)
	}
}

func TestPropagatorContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(&decay{}, &eulerStep{})
	traj, err := p.Run(ctx, State{1.0}, Config{Dt: 0.1, Steps: 10})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	// The initial snapshot is still recorded.
	if traj.Len() != 1 {
		t.Errorf("expected 1 snapshot, got %d", traj.Len())
	}
}

type countingMetric struct {
	n int
}

func (c *countingMetric) Name() string              { return "count" }
func (c *countingMetric) Observe(x State, t float64) { c.n++ }
func (c *countingMetric) Value() float64            { return float64(c.n) }
func (c *countingMetric) Reset()                    { c.n = 0 }

func TestPropagatorMetrics(t *testing.T) {
	p := New(&decay{}, &eulerStep{})
	m := &countingMetric{}
	p.AddMetric(m)

	traj, err := p.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Steps: 5})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := traj.Metrics["count"]; got != 6 {
		t.Errorf("expected metric observed 6 times, got %g", got)
	}
}
