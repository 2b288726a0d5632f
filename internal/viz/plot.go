package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravlab/internal/dynamo"
)

// OrbitPlot renders the XY projection of every body's trajectory on a
// braille canvas. Each path starts at an 'o' marker and ends at a
// filled dot.
func OrbitPlot(states []dynamo.State, bodies int, width, height int) string {
	c := NewCanvas(width, height)
	if len(states) == 0 || bodies == 0 {
		return c.String()
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, x := range states {
		for i := 0; i < bodies; i++ {
			px, py := x[3*i], x[3*i+1]
			minX = math.Min(minX, px)
			maxX = math.Max(maxX, px)
			minY = math.Min(minY, py)
			maxY = math.Max(maxY, py)
		}
	}

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	// Leave a one-cell margin so edge trails do not clip.
	pw := float64(width*2 - 4)
	ph := float64(height*4 - 8)

	toPixel := func(x dynamo.State, i int) (int, int) {
		px := 2 + int(pw*(x[3*i]-minX)/spanX)
		// Screen rows grow downward.
		py := 4 + int(ph*(maxY-x[3*i+1])/spanY)
		return px, py
	}

	for i := 0; i < bodies; i++ {
		prevX, prevY := toPixel(states[0], i)
		for _, x := range states[1:] {
			px, py := toPixel(x, i)
			c.DrawLine(prevX, prevY, px, py)
			prevX, prevY = px, py
		}
	}
	for i := 0; i < bodies; i++ {
		px, py := toPixel(states[0], i)
		c.Mark(px, py, 'o')
		px, py = toPixel(states[len(states)-1], i)
		c.Mark(px, py, '●')
	}

	return c.String()
}

// EnergyChart plots relative energy drift over a run.
func EnergyChart(drift []float64, width, height int) string {
	if len(drift) < 2 {
		return ""
	}
	return asciigraph.Plot(drift,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("relative energy drift"),
	)
}
