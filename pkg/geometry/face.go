package geometry

import (
	"math"
	"sort"

	"github.com/chazu/gengine/pkg/linalg"
)

// Face is an ordered vertex loop sharing one normal. The loop is open:
// the last vertex is not a repeat of the first unless the producer closed
// it on purpose.
type Face struct {
	Vertices []Point
	Normal   Vec3
}

// NewFace copies vertices into a new Face.
func NewFace(normal Vec3, vertices ...Point) Face {
	vs := make([]Point, len(vertices))
	copy(vs, vertices)
	return Face{Vertices: vs, Normal: normal}
}

// Clone returns a deep copy of f.
func (f Face) Clone() Face {
	return NewFace(f.Normal, f.Vertices...)
}

// Len returns the number of vertices.
func (f Face) Len() int { return len(f.Vertices) }

// Transform returns a new Face with every vertex rotated about center by
// angles and the normal rotated identically.
func (f Face) Transform(center Point, angles Angles) Face {
	r := angles.Matrix()
	out := Face{Vertices: make([]Point, len(f.Vertices)), Normal: rotate(r, f.Normal)}
	for i, v := range f.Vertices {
		out.Vertices[i] = v.rotateAbout(center, r)
	}
	return out
}

// Apply returns f transformed by a rigid 4x4 homogeneous matrix. The
// normal is rotated by the linear block only.
func (f Face) Apply(m linalg.Matrix) Face {
	out := Face{Vertices: make([]Point, len(f.Vertices)), Normal: rotate(Linear(m), f.Normal)}
	for i, v := range f.Vertices {
		out.Vertices[i] = v.Apply(m)
	}
	return out
}

// SortLoop orders vertices counter-clockwise around their centroid as seen
// from the tip of normal. Texture coordinates stay attached to their vertex.
func SortLoop(vertices []Point, normal Vec3) []Point {
	out := make([]Point, len(vertices))
	copy(out, vertices)
	if len(out) < 3 {
		return out
	}
	u, v := planeBasis(normal)
	c := Centroid(out).Vec3()
	angle := func(p Point) float64 {
		d := p.Vec3().Sub(c)
		return math.Atan2(d.Dot(v), d.Dot(u))
	}
	sort.SliceStable(out, func(i, j int) bool { return angle(out[i]) < angle(out[j]) })
	return out
}

// planeBasis returns two unit vectors spanning the plane orthogonal to n,
// oriented so that u × v points along n.
func planeBasis(n Vec3) (Vec3, Vec3) {
	n, err := n.Normalize()
	if err != nil {
		return UnitX, UnitY
	}
	ref := UnitX
	if math.Abs(n.X) > 0.9 {
		ref = UnitY
	}
	u, _ := ref.Cross(n).Normalize()
	return u, n.Cross(u)
}
