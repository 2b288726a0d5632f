package gravity

import (
	"github.com/san-kum/gravlab/internal/dynamo"
	"github.com/san-kum/gravlab/internal/vec"
)

// Body is one gravitating point mass. Mass and Name are fixed for the
// lifetime of a run; Pos and Vel evolve. A body's identity is its index in
// the model's body list.
type Body struct {
	Name string
	Mass float64
	Pos  vec.Vec
	Vel  vec.Vec
}

// Flatten packs bodies into the positions-first state layout:
// [x1 y1 z1 ... xn yn zn | vx1 vy1 vz1 ... vxn vyn vzn].
func Flatten(bodies []Body) dynamo.State {
	n := len(bodies)
	x := make(dynamo.State, 6*n)
	for i, b := range bodies {
		x[3*i] = b.Pos.X
		x[3*i+1] = b.Pos.Y
		x[3*i+2] = b.Pos.Z
		x[3*n+3*i] = b.Vel.X
		x[3*n+3*i+1] = b.Vel.Y
		x[3*n+3*i+2] = b.Vel.Z
	}
	return x
}

func position(x dynamo.State, n, i int) vec.Vec {
	return vec.Vec{X: x[3*i], Y: x[3*i+1], Z: x[3*i+2]}
}

func velocity(x dynamo.State, n, i int) vec.Vec {
	off := 3 * n
	return vec.Vec{X: x[off+3*i], Y: x[off+3*i+1], Z: x[off+3*i+2]}
}
