package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/gravlab/internal/dynamo"
	"github.com/san-kum/gravlab/internal/gravity"
	"github.com/san-kum/gravlab/internal/vec"
)

func testModel(t *testing.T) (*gravity.Model, dynamo.State) {
	t.Helper()
	bodies := []gravity.Body{
		{Mass: 1.0, Pos: vec.New(1, 0, 0), Vel: vec.New(0, 0.5, 0)},
		{Mass: 1.0, Pos: vec.New(-1, 0, 0), Vel: vec.New(0, -0.5, 0)},
	}
	m, err := gravity.New(bodies, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	return m, gravity.Flatten(bodies)
}

func TestReportIdenticalStates(t *testing.T) {
	m, x := testModel(t)

	traj := &dynamo.Trajectory{
		Times:  []float64{0, 1, 2},
		States: []dynamo.State{x, x.Clone(), x.Clone()},
	}

	rep := NewReport(m, traj)
	if rep.Energy.Max != 0 {
		t.Errorf("energy drift: expected 0, got %g", rep.Energy.Max)
	}
	if rep.AngularMomentum.Max != 0 {
		t.Errorf("angular momentum drift: expected 0, got %g", rep.AngularMomentum.Max)
	}
	if !rep.LinearMomentum.Absolute {
		t.Error("zero initial momentum should be reported as absolute drift")
	}
}

func TestReportRelativeDrift(t *testing.T) {
	m, x := testModel(t)

	// Double one velocity component: energy and angular momentum change.
	bumped := x.Clone()
	bumped[7] = 1.0

	traj := &dynamo.Trajectory{
		Times:  []float64{0, 1},
		States: []dynamo.State{x, bumped},
	}

	rep := NewReport(m, traj)

	// E0 = -0.25; bumped KE = 0.5*(1 + 0.25) = 0.625, E = 0.125.
	wantEnergy := math.Abs(0.125-(-0.25)) / 0.25
	if math.Abs(rep.Energy.Max-wantEnergy) > 1e-12 {
		t.Errorf("energy drift: expected %g, got %g", wantEnergy, rep.Energy.Max)
	}
	if rep.Energy.Absolute {
		t.Error("nonzero initial energy should be relative")
	}

	// L0_z = 1; bumped L_z = 1*0.5 + 1*0.5... body0 r x v = (1,0,0)x(0,1,0) = z.
	// L changes from 1 to 1.5, relative drift 0.5.
	if math.Abs(rep.AngularMomentum.Max-0.5) > 1e-12 {
		t.Errorf("angular momentum drift: expected 0.5, got %g", rep.AngularMomentum.Max)
	}
}

func TestEnergyDriftMetric(t *testing.T) {
	m, x := testModel(t)

	d := NewEnergyDrift(m)
	d.Observe(x, 0)
	if d.Value() != 0 {
		t.Errorf("single observation: expected 0 drift, got %g", d.Value())
	}

	bumped := x.Clone()
	bumped[7] = 1.0
	d.Observe(bumped, 1)

	if d.Value() <= 0 {
		t.Errorf("expected positive drift, got %g", d.Value())
	}

	d.Reset()
	if d.Value() != 0 {
		t.Errorf("after reset: expected 0, got %g", d.Value())
	}
}

func TestEnergySeries(t *testing.T) {
	m, x := testModel(t)
	traj := &dynamo.Trajectory{
		Times:  []float64{0, 1},
		States: []dynamo.State{x, x.Clone()},
	}

	series := EnergySeries(m, traj)
	if len(series) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(series))
	}
	if math.Abs(series[0]-(-0.25)) > 1e-15 {
		t.Errorf("expected -0.25, got %g", series[0])
	}
}
