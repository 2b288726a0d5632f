package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/gravlab/internal/dynamo"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 4)

	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected 0x2801, got %#x", c.Grid[0][0])
	}

	c.Set(1, 3)
	if c.Grid[0][0] != 0x2801|0x80 {
		t.Errorf("expected dot 8 set, got %#x", c.Grid[0][0])
	}

	// Out of bounds is silently ignored.
	c.Set(-1, 0)
	c.Set(100, 100)
}

func TestCanvasMarkWins(t *testing.T) {
	c := NewCanvas(4, 4)

	c.Mark(0, 0, '●')
	c.Set(1, 1)
	if c.Grid[0][0] != '●' {
		t.Errorf("expected marker preserved, got %q", c.Grid[0][0])
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)

	lit := 0
	for _, row := range c.Grid {
		for _, cell := range row {
			if cell > 0x2800 && cell <= 0x28ff {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected lit cells along diagonal")
	}
}

func TestOrbitPlotMarkers(t *testing.T) {
	// One body moving along x.
	states := []dynamo.State{
		{0, 0, 0, 1, 0, 0},
		{0.5, 0.2, 0, 1, 0, 0},
		{1, 0.4, 0, 1, 0, 0},
	}
	out := OrbitPlot(states, 1, 40, 12)

	if !strings.ContainsRune(out, 'o') {
		t.Error("expected start marker in plot")
	}
	if !strings.ContainsRune(out, '●') {
		t.Error("expected end marker in plot")
	}
	if len(strings.Split(strings.TrimSuffix(out, "\n"), "\n")) != 12 {
		t.Error("expected 12 rows")
	}
}

func TestOrbitPlotEmpty(t *testing.T) {
	out := OrbitPlot(nil, 0, 10, 4)
	if len(strings.Split(strings.TrimSuffix(out, "\n"), "\n")) != 4 {
		t.Error("expected blank canvas rows")
	}
}

func TestEnergyChart(t *testing.T) {
	if EnergyChart([]float64{0}, 30, 5) != "" {
		t.Error("expected empty chart for a single sample")
	}
	out := EnergyChart([]float64{0, 1e-9, 2e-9, 1.5e-9}, 30, 5)
	if out == "" {
		t.Error("expected non-empty chart")
	}
}
