package geometry

import (
	"math"

	"github.com/chazu/gengine/pkg/linalg"
)

// Angles is a yaw/pitch/roll triple in radians. Yaw turns about X, pitch
// about Y and roll about Z.
type Angles struct {
	Yaw, Pitch, Roll float64
}

// IsZero reports whether no rotation is encoded.
func (a Angles) IsZero() bool {
	return a.Yaw == 0 && a.Pitch == 0 && a.Roll == 0
}

// Add returns the component-wise sum, which is how figures accumulate
// successive Rotate calls.
func (a Angles) Add(o Angles) Angles {
	return Angles{a.Yaw + o.Yaw, a.Pitch + o.Pitch, a.Roll + o.Roll}
}

// Degrees builds Angles from values given in degrees.
func Degrees(yaw, pitch, roll float64) Angles {
	return Angles{yaw * math.Pi / 180, pitch * math.Pi / 180, roll * math.Pi / 180}
}

// RotationX returns the right-handed rotation by theta about X.
func RotationX(theta float64) linalg.Matrix {
	c, s := math.Cos(theta), math.Sin(theta)
	return linalg.Must(linalg.FromRows([][]float64{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	}))
}

// RotationY returns the right-handed rotation by theta about Y.
func RotationY(theta float64) linalg.Matrix {
	c, s := math.Cos(theta), math.Sin(theta)
	return linalg.Must(linalg.FromRows([][]float64{
		{c, 0, s},
		{0, 1, 0},
		{-s, 0, c},
	}))
}

// RotationZ returns the right-handed rotation by theta about Z.
func RotationZ(theta float64) linalg.Matrix {
	c, s := math.Cos(theta), math.Sin(theta)
	return linalg.Must(linalg.FromRows([][]float64{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}))
}

// Matrix returns Roll · Pitch · Yaw. Applied to a column vector, yaw acts
// first and roll last. The order is fixed; changing it changes every
// transformed coordinate.
func (a Angles) Matrix() linalg.Matrix {
	rp := linalg.Must(RotationZ(a.Roll).Mul(RotationY(a.Pitch)))
	return linalg.Must(rp.Mul(RotationX(a.Yaw)))
}

// Homogeneous returns the 4x4 form of Matrix.
func (a Angles) Homogeneous() linalg.Matrix {
	return Homogeneous(a.Matrix(), Vec3{})
}

// Translation returns the 4x4 homogeneous translation by t.
func Translation(t Vec3) linalg.Matrix {
	return Homogeneous(linalg.Identity(3), t)
}

// Homogeneous embeds a 3x3 linear part and a translation into a 4x4
// matrix. A linear part of any other shape is treated as identity.
func Homogeneous(linear linalg.Matrix, t Vec3) linalg.Matrix {
	if linear.Rows() != 3 || linear.Cols() != 3 {
		linear = linalg.Identity(3)
	}
	m := linalg.Identity(4)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			v, _ := linear.At(r, c)
			_ = m.Set(r, c, v)
		}
	}
	_ = m.Set(0, 3, t.X)
	_ = m.Set(1, 3, t.Y)
	_ = m.Set(2, 3, t.Z)
	return m
}

// Linear extracts the upper-left 3x3 block of a 4x4 matrix.
func Linear(m linalg.Matrix) linalg.Matrix {
	if m.Rows() < 3 || m.Cols() < 3 {
		return linalg.Identity(3)
	}
	out := linalg.NewMatrix(3, 3)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			v, _ := m.At(r, c)
			_ = out.Set(r, c, v)
		}
	}
	return out
}

// AnglesFrom recovers yaw, pitch and roll from a rotation matrix built as
// Matrix does. A 4x4 matrix is read through its linear block. At gimbal
// lock (pitch ±π/2) yaw is reported as 0 and the whole turn goes to roll.
func AnglesFrom(m linalg.Matrix) Angles {
	if m.Rows() == 4 {
		m = Linear(m)
	}
	at := func(r, c int) float64 {
		v, _ := m.At(r, c)
		return v
	}
	sp := -at(2, 0)
	if sp > 1 {
		sp = 1
	} else if sp < -1 {
		sp = -1
	}
	pitch := math.Asin(sp)
	if math.Abs(sp) > 1-1e-12 {
		return Angles{Pitch: pitch, Roll: math.Atan2(-at(0, 1), at(1, 1))}
	}
	return Angles{
		Yaw:   math.Atan2(at(2, 1), at(2, 2)),
		Pitch: pitch,
		Roll:  math.Atan2(at(1, 0), at(0, 0)),
	}
}

// TranslationOf returns the translation column of a 4x4 matrix.
func TranslationOf(m linalg.Matrix) Vec3 {
	if m.Rows() < 3 || m.Cols() < 4 {
		return Vec3{}
	}
	x, _ := m.At(0, 3)
	y, _ := m.At(1, 3)
	z, _ := m.At(2, 3)
	return Vec3{x, y, z}
}
