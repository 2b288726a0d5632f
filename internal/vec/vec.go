// Package vec provides a fixed-dimension 3D vector value type for
// orbital mechanics. Planar (2D) configurations set Z to zero.
package vec

import "math"

// Vec is an immutable 3-component vector. All operations return new values.
type Vec struct {
	X, Y, Z float64
}

func New(x, y, z float64) Vec {
	return Vec{X: x, Y: y, Z: z}
}

func (v Vec) Add(w Vec) Vec {
	return Vec{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

func (v Vec) Sub(w Vec) Vec {
	return Vec{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

func (v Vec) Scale(s float64) Vec {
	return Vec{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec) Dot(w Vec) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

func (v Vec) Cross(w Vec) Vec {
	return Vec{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

func (v Vec) NormSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec) Norm() float64 {
	return math.Sqrt(v.NormSq())
}

func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}
