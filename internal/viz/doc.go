// Package viz renders orbital trajectories in the terminal.
//
//   - [Canvas]: Braille pixel canvas for orbit trails
//   - [OrbitPlot]: static XY projection of a finished run
//   - [EnergyChart]: asciigraph plot of relative energy drift
//   - [Live]: Bubble Tea view that propagates and draws in real time
//
// # Key Bindings (live view)
//
//	Space - Pause/Resume propagation
//	R     - Reset to the initial state
//	Q     - Quit
package viz
