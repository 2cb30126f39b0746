package geometry

import (
	"math"

	"github.com/chazu/gengine/pkg/linalg"
)

// Point is a 3D position with optional texture coordinates (S, T).
type Point struct {
	X, Y, Z float64
	S, T    float64
}

// Pt is shorthand for a point without texture coordinates.
func Pt(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Vec3 returns the position part of p.
func (p Point) Vec3() Vec3 { return Vec3{p.X, p.Y, p.Z} }

// WithPosition returns p moved to v, keeping its texture coordinates.
func (p Point) WithPosition(v Vec3) Point {
	p.X, p.Y, p.Z = v.X, v.Y, v.Z
	return p
}

// WithTex returns p with texture coordinates (s, t).
func (p Point) WithTex(s, t float64) Point {
	p.S, p.T = s, t
	return p
}

// Sub returns the direction from o to p.
func (p Point) Sub(o Point) Vec3 { return p.Vec3().Sub(o.Vec3()) }

// Translate returns p moved by v.
func (p Point) Translate(v Vec3) Point { return p.WithPosition(p.Vec3().Add(v)) }

// Distance returns the Euclidean distance between p1 and p2.
func Distance(p1, p2 Point) float64 {
	return p1.Sub(p2).Norm()
}

// Midpoint returns the point halfway between p1 and p2.
func Midpoint(p1, p2 Point) Point {
	return Tween(p1, p2, 0.5)
}

// Tween interpolates linearly from p1 (time 0) to p2 (time 1). Times
// outside [0,1] extrapolate along the same line. Texture coordinates are
// interpolated too.
func Tween(p1, p2 Point, time float64) Point {
	lerp := func(a, b float64) float64 { return a + (b-a)*time }
	return Point{
		X: lerp(p1.X, p2.X),
		Y: lerp(p1.Y, p2.Y),
		Z: lerp(p1.Z, p2.Z),
		S: lerp(p1.S, p2.S),
		T: lerp(p1.T, p2.T),
	}
}

// Transform rotates p about origin by angles: R·(p - origin) + origin.
// Texture coordinates pass through.
func (p Point) Transform(origin Point, angles Angles) Point {
	return p.rotateAbout(origin, angles.Matrix())
}

func (p Point) rotateAbout(origin Point, r linalg.Matrix) Point {
	local := p.Sub(origin)
	return p.WithPosition(rotate(r, local).Add(origin.Vec3()))
}

// Apply transforms p by a 4x4 homogeneous matrix. When the projective
// component is neither 0 nor 1 the result is divided through by it.
func (p Point) Apply(m linalg.Matrix) Point {
	out, err := m.MulVec(linalg.NewVector(p.X, p.Y, p.Z, 1))
	if err != nil {
		return p
	}
	v := Vec3From(out)
	if w, _ := out.At(3); w != 0 && w != 1 {
		v = v.Scale(1 / w)
	}
	return p.WithPosition(v)
}

// ApproxEqual compares positions only.
func (p Point) ApproxEqual(o Point, eps float64) bool {
	return p.Vec3().ApproxEqual(o.Vec3(), eps)
}

// Farthest returns the indices of the two points farthest apart. It
// returns (-1, -1) for fewer than two points.
func Farthest(points []Point) (int, int) {
	if len(points) < 2 {
		return -1, -1
	}
	bi, bj, best := 0, 1, -1.0
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if d := Distance(points[i], points[j]); d > best {
				bi, bj, best = i, j, d
			}
		}
	}
	return bi, bj
}

// Diameter returns the midpoint and half-length of the two points farthest
// apart. It is the pivot and radius used to centre figures and normalise
// their texture coordinates. A single point is its own centre with radius 0.
func Diameter(points []Point) (Point, float64) {
	switch len(points) {
	case 0:
		return Point{}, 0
	case 1:
		return Pt(points[0].X, points[0].Y, points[0].Z), 0
	}
	i, j := Farthest(points)
	mid := Midpoint(points[i], points[j])
	return Pt(mid.X, mid.Y, mid.Z), Distance(points[i], points[j]) / 2
}

// Centroid returns the average position of points.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sum Vec3
	for _, p := range points {
		sum = sum.Add(p.Vec3())
	}
	return Point{}.WithPosition(sum.Scale(1 / float64(len(points))))
}

// finite reports whether every coordinate is a real number.
func (p Point) finite() bool {
	for _, v := range []float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
