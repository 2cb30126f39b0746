package figure

import (
	"math"

	"github.com/chazu/gengine/pkg/geometry"
)

// NewSegment is the line from start to end. Its two vertices carry texture
// coordinates (0,0) and (1,1).
func NewSegment(start, end geometry.Point) *Shape {
	return newShape(KindSegment, ModeLines, func() generated {
		a, b := start.WithTex(0, 0), end.WithTex(1, 1)
		mid := geometry.Midpoint(start, end)
		return generated{
			faces:  []geometry.Face{geometry.NewFace(segmentNormal(start, end), a, b)},
			origin: geometry.Pt(mid.X, mid.Y, mid.Z),
			radius: geometry.Distance(start, end) / 2,
		}
	})
}

// segmentNormal is any unit vector orthogonal to the segment, preferring +Z.
func segmentNormal(a, b geometry.Point) geometry.Vec3 {
	d, err := b.Sub(a).Normalize()
	if err != nil {
		return geometry.UnitZ
	}
	n, err := d.Cross(geometry.UnitZ).Cross(d).Normalize()
	if err != nil {
		return geometry.UnitY
	}
	return n
}

// NewPolygon is a single face through points in the order given. The pivot
// is the midpoint of the two vertices farthest apart and the radius half
// their distance; texture coordinates are spread radially over that circle.
// Fewer than three points give an empty polygon.
func NewPolygon(points ...geometry.Point) *Shape {
	pts := make([]geometry.Point, len(points))
	copy(pts, points)
	return newShape(KindPolygon, ModePolygon, func() generated {
		return flatPolygon(pts)
	})
}

// MaxSides is the most sides a regular polygon or prism may have.
const MaxSides = 1024

// NewRegPol is a regular polygon with vertex i at i·360/sides degrees on
// the circle of radius r around center. Fewer than three or more than
// MaxSides sides, or a zero or non-finite radius, give an empty polygon.
func NewRegPol(center geometry.Point, sides int, r float64) *Shape {
	return newShape(KindRegPol, ModePolygon, func() generated {
		if sides < 3 || sides > MaxSides || !usableLength(r) {
			return generated{origin: geometry.Pt(center.X, center.Y, center.Z)}
		}
		return flatPolygon(ring(center, sides, r))
	})
}

// NewRectangle is the axis-aligned rectangle with opposite corners p1 and
// p2, lying in the plane z = p1.Z.
func NewRectangle(p1, p2 geometry.Point) *Shape {
	return newShape(KindRectangle, ModePolygon, func() generated {
		if p1.X == p2.X || p1.Y == p2.Y || !finite(p1.X, p1.Y, p1.Z, p2.X, p2.Y) {
			return generated{origin: geometry.Pt(p1.X, p1.Y, p1.Z)}
		}
		return flatPolygon([]geometry.Point{
			geometry.Pt(p1.X, p1.Y, p1.Z),
			geometry.Pt(p1.X, p2.Y, p1.Z),
			geometry.Pt(p2.X, p2.Y, p1.Z),
			geometry.Pt(p2.X, p1.Y, p1.Z),
		})
	})
}

// ring places n points evenly on a circle in the XY plane around center.
func ring(center geometry.Point, n int, r float64) []geometry.Point {
	pts := make([]geometry.Point, n)
	step := 2 * math.Pi / float64(n)
	for i := range pts {
		a := float64(i) * step
		pts[i] = geometry.Pt(center.X+r*math.Cos(a), center.Y+r*math.Sin(a), center.Z)
	}
	return pts
}

func flatPolygon(pts []geometry.Point) generated {
	origin, radius := geometry.Diameter(pts)
	g := generated{origin: origin, radius: radius}
	if len(pts) < 3 {
		return g
	}
	g.faces = []geometry.Face{geometry.NewFace(loopNormal(pts), radialTex(pts, origin, radius)...)}
	return g
}

// radialTex maps x and y into [0,1] over the circle of the given radius
// around origin.
func radialTex(pts []geometry.Point, origin geometry.Point, radius float64) []geometry.Point {
	out := make([]geometry.Point, len(pts))
	for i, p := range pts {
		s, t := 0.5, 0.5
		if radius > 0 {
			s = 0.5 + (p.X-origin.X)/(2*radius)
			t = 0.5 + (p.Y-origin.Y)/(2*radius)
		}
		out[i] = p.WithTex(s, t)
	}
	return out
}

// loopNormal is the normal of the first non-collinear vertex triple, or +Z
// when all vertices lie on one line.
func loopNormal(pts []geometry.Point) geometry.Vec3 {
	for i := 1; i+1 < len(pts); i++ {
		if pl, err := geometry.PlaneFromPoints(pts[0], pts[i], pts[i+1]); err == nil {
			return pl.Normal
		}
	}
	return geometry.UnitZ
}
