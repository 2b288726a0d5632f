package dynamo

import (
	"context"
	"fmt"
)

// Propagator drives a Stepper across a fixed number of steps, recording the
// trajectory. It owns the evolving state exclusively during a run and
// performs no I/O of its own.
type Propagator struct {
	sys       System
	stepper   Stepper
	metrics   []Metric
	observers []Observer
}

func New(sys System, stepper Stepper) *Propagator {
	return &Propagator{
		sys:       sys,
		stepper:   stepper,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (p *Propagator) AddMetric(m Metric)     { p.metrics = append(p.metrics, m) }
func (p *Propagator) AddObserver(o Observer) { p.observers = append(p.observers, o) }

// Run propagates x0 for cfg.Steps steps of size cfg.Dt and returns the
// recorded trajectory of cfg.Steps+1 snapshots (fewer when Stride > 1).
// A singular configuration or a convergence failure aborts the run; the
// returned error wraps the step index and time via StepError.
func (p *Propagator) Run(ctx context.Context, x0 State, cfg Config) (*Trajectory, error) {
	if err := p.validate(x0, cfg); err != nil {
		return nil, err
	}

	stride := cfg.Stride
	if stride <= 0 {
		stride = 1
	}

	traj := &Trajectory{
		Times:   make([]float64, 0, cfg.Steps/stride+2),
		States:  make([]State, 0, cfg.Steps/stride+2),
		Metrics: make(map[string]float64),
	}

	for _, m := range p.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	p.record(traj, x, t)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return traj, ctx.Err()
		default:
		}

		next, err := p.stepper.Step(p.sys, x, t, cfg.Dt)
		if err != nil {
			return traj, &StepError{Step: i, Time: t, Wrapped: err}
		}
		if !next.IsValid() {
			return traj, &StepError{Step: i, Time: t, Wrapped: ErrInvalidState}
		}

		x = next
		t = float64(i+1) * cfg.Dt

		if (i+1)%stride == 0 || i == cfg.Steps-1 {
			p.record(traj, x, t)
		}
	}

	for _, m := range p.metrics {
		traj.Metrics[m.Name()] = m.Value()
	}

	return traj, nil
}

func (p *Propagator) record(traj *Trajectory, x State, t float64) {
	traj.Times = append(traj.Times, t)
	traj.States = append(traj.States, x.Clone())

	for _, m := range p.metrics {
		m.Observe(x, t)
	}
	for _, obs := range p.observers {
		obs.OnStep(x, t)
	}
}

func (p *Propagator) validate(x0 State, cfg Config) error {
	if p.sys == nil || p.stepper == nil {
		return fmt.Errorf("%w: propagator requires a system and a stepper", ErrInvalidConfig)
	}
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("%w: step count must be positive, got %d", ErrInvalidConfig, cfg.Steps)
	}
	if len(x0) != p.sys.Dim() {
		return fmt.Errorf("%w: state has %d components, system expects %d",
			ErrDimensionMismatch, len(x0), p.sys.Dim())
	}
	return nil
}
