// Package geometry holds the value types handed between figures and the
// renderer: points with texture coordinates, faces, Euler angles and
// oriented planes. Rotations and plane solves go through package linalg.
package geometry

import (
	"errors"
	"math"

	"github.com/chazu/gengine/pkg/linalg"
)

// ErrDegenerate is returned when input geometry does not define the
// requested object (zero normal, collinear points).
var ErrDegenerate = errors.New("geometry: degenerate input")

// Vec3 is a direction in 3D space, used for face and plane normals.
type Vec3 struct {
	X, Y, Z float64
}

// Common axis directions.
var (
	UnitX = Vec3{X: 1}
	UnitY = Vec3{Y: 1}
	UnitZ = Vec3{Z: 1}
)

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Norm returns the Euclidean length.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns v at unit length, or ErrDegenerate for the zero vector.
func (v Vec3) Normalize() (Vec3, error) {
	n := v.Norm()
	if n == 0 || math.IsNaN(n) {
		return Vec3{}, ErrDegenerate
	}
	return v.Scale(1 / n), nil
}

// Vector converts v to a linalg vector of length 3.
func (v Vec3) Vector() linalg.Vector { return linalg.NewVector(v.X, v.Y, v.Z) }

// Vec3From reads the first three components of a linalg vector; missing
// components are zero.
func Vec3From(v linalg.Vector) Vec3 {
	x, _ := v.At(0)
	y, _ := v.At(1)
	z, _ := v.At(2)
	return Vec3{x, y, z}
}

// ApproxEqual reports whether every component differs by at most eps.
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

// rotate applies a 3x3 matrix to v. Matrices built by Angles are always
// 3x3, so the error path only returns v untouched for foreign input.
func rotate(m linalg.Matrix, v Vec3) Vec3 {
	out, err := m.MulVec(v.Vector())
	if err != nil {
		return v
	}
	return Vec3From(out)
}
