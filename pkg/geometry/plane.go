package geometry

import (
	"fmt"
	"math"

	"github.com/chazu/gengine/pkg/linalg"
)

// SingularTolerance is the smallest |det| of a normal matrix that
// Intersect treats as a unique solution.
const SingularTolerance = 1e-12

// Plane is an oriented plane: a point on it and a unit normal.
type Plane struct {
	Normal Vec3
	Point  Point
}

// NewPlane builds a plane through p with the given normal, normalised.
func NewPlane(normal Vec3, p Point) (Plane, error) {
	n, err := normal.Normalize()
	if err != nil {
		return Plane{}, fmt.Errorf("plane normal %v: %w", normal, err)
	}
	return Plane{Normal: n, Point: p}, nil
}

// PlaneFromPoints builds the plane through p1, p2 and p3. The normal
// follows the winding p1→p2→p3 (right-hand rule). It is computed as the
// first-row cofactors of the edge matrix
//
//	| 1       1       1       |
//	| p2 - p1                 |
//	| p3 - p1                 |
//
// and then normalised. Collinear points give ErrDegenerate.
func PlaneFromPoints(p1, p2, p3 Point) (Plane, error) {
	e1, e2 := p2.Sub(p1), p3.Sub(p1)
	edges, err := linalg.FromRows([][]float64{
		{1, 1, 1},
		{e1.X, e1.Y, e1.Z},
		{e2.X, e2.Y, e2.Z},
	})
	if err != nil {
		return Plane{}, err
	}
	var comps [3]float64
	sign := 1.0
	for col := 0; col < 3; col++ {
		minor, err := edges.Adjoint(0, col)
		if err != nil {
			return Plane{}, err
		}
		det, err := minor.Determinant()
		if err != nil {
			return Plane{}, err
		}
		comps[col] = sign * det
		sign = -sign
	}
	n, err := Vec3{comps[0], comps[1], comps[2]}.Normalize()
	if err != nil {
		return Plane{}, fmt.Errorf("points %v %v %v are collinear: %w", p1.Vec3(), p2.Vec3(), p3.Vec3(), err)
	}
	return Plane{Normal: n, Point: Pt(p1.X, p1.Y, p1.Z)}, nil
}

// Offset returns n · p, the constant of the plane equation n · x = d.
func (pl Plane) Offset() float64 {
	return pl.Normal.Dot(pl.Point.Vec3())
}

// SignedDistance is positive on the side the normal points to.
func (pl Plane) SignedDistance(p Point) float64 {
	return pl.Normal.Dot(p.Sub(pl.Point))
}

// Flip returns the same plane with the opposite orientation.
func (pl Plane) Flip() Plane {
	return Plane{Normal: pl.Normal.Scale(-1), Point: pl.Point}
}

// Intersect solves for the single point shared by three planes. The
// normals form the rows of M and the offsets the constant vector c, so the
// point is inv(M)·c. It reports false when det(M) is zero: two planes are
// parallel or the three share a line.
func Intersect(a, b, c Plane) (Point, bool) {
	m, err := linalg.FromRows([][]float64{
		{a.Normal.X, a.Normal.Y, a.Normal.Z},
		{b.Normal.X, b.Normal.Y, b.Normal.Z},
		{c.Normal.X, c.Normal.Y, c.Normal.Z},
	})
	if err != nil {
		return Point{}, false
	}
	// Unit normals make det(M) the volume spanned by them; anything below
	// SingularTolerance is rounding noise from normals that are parallel.
	if det, err := m.Determinant(); err != nil || math.Abs(det) < SingularTolerance {
		return Point{}, false
	}
	inv, err := m.Invert()
	if err != nil {
		return Point{}, false
	}
	x, err := inv.MulVec(linalg.NewVector(a.Offset(), b.Offset(), c.Offset()))
	if err != nil {
		return Point{}, false
	}
	p := Point{}.WithPosition(Vec3From(x))
	if !p.finite() {
		return Point{}, false
	}
	return p, true
}
