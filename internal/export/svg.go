// Package export renders finished trajectories as standalone SVG files.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/gravlab/internal/dynamo"
)

var orbitColors = []string{
	"#00ff88", "#00ccff", "#ff00ff", "#ffcc00", "#ff4444", "#88aaff",
}

// OrbitSVG draws the XY projection of every body's path as one SVG
// document, one colored polyline per body. The start of each path is an
// open circle, the end a filled one.
func OrbitSVG(states []dynamo.State, bodies int, width, height int) string {
	if len(states) < 2 || bodies == 0 {
		return ""
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, x := range states {
		for i := 0; i < bodies; i++ {
			minX = math.Min(minX, x[3*i])
			maxX = math.Max(maxX, x[3*i])
			minY = math.Min(minY, x[3*i+1])
			maxY = math.Max(maxY, x[3*i+1])
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	toScreen := func(x dynamo.State, i int) (float64, float64) {
		sx := (x[3*i] - minX) / rangeX * float64(width)
		sy := float64(height) - (x[3*i+1]-minY)/rangeY*float64(height)
		return sx, sy
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i := 0; i < bodies; i++ {
		color := orbitColors[i%len(orbitColors)]

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for k, x := range states {
			sx, sy := toScreen(x, i)
			if k == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", sx, sy))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", sx, sy))
			}
		}
		sb.WriteString("\"/>\n")

		sx, sy := toScreen(states[0], i)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="none" stroke="%s"/>`, sx, sy, color))
		sb.WriteString("\n")
		sx, sy = toScreen(states[len(states)-1], i)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`, sx, sy, color))
		sb.WriteString("\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
