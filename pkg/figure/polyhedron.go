package figure

import (
	"math"

	"github.com/chazu/gengine/pkg/geometry"
)

// planeEpsilon is how far a recovered vertex may sit outside a half-space
// and still count as lying on the hull.
const planeEpsilon = 1e-7

// MaxPlanes bounds the planes a polyhedron may be built from; the cell
// search grows with the seventh power of the plane count.
const MaxPlanes = 24

const (
	// sampleStep scales how far cell samples sit from a vertex.
	sampleStep = 1e-4
	// maxOpenPlanes bounds the planes through one vertex whose side is
	// left open while sampling.
	maxOpenPlanes = 6
)

// NewPolyhedron builds a convex polyhedron bounded by planes. Every distinct
// triple of planes is intersected; triples without a unique point are
// skipped. Normals are expected to point out of the solid. When they do not
// describe a closed solid on which every plane is a face, each cell of the
// plane arrangement next to a candidate vertex is tried instead, and the
// closed cell with the most faces wins, ties going to the cell that flips
// the fewest planes. Candidates outside any half-space are dropped and the
// survivors on each plane become its face, ordered around its centroid.
// More than MaxPlanes planes give an empty polyhedron.
func NewPolyhedron(planes ...geometry.Plane) *Shape {
	pls := make([]geometry.Plane, len(planes))
	copy(pls, planes)
	return newShape(KindPolyhedron, ModePolygon, func() generated {
		return hullFromPlanes(pls)
	})
}

// NewPolyhedronFromFaces keeps pre-built faces as given.
func NewPolyhedronFromFaces(faces ...geometry.Face) *Shape {
	fs := make([]geometry.Face, len(faces))
	for i, f := range faces {
		fs[i] = f.Clone()
	}
	return newShape(KindPolyhedron, ModePolygon, func() generated {
		origin, radius := geometry.Diameter(allVertices(fs))
		return generated{faces: fs, origin: origin, radius: radius}
	})
}

// NewBox is the axis-aligned box spanned by min and max, built from its six
// bounding planes.
func NewBox(min, max geometry.Point) *Shape {
	return newShape(KindBox, ModePolygon, func() generated {
		if min.X == max.X || min.Y == max.Y || min.Z == max.Z {
			mid := geometry.Midpoint(min, max)
			return generated{origin: geometry.Pt(mid.X, mid.Y, mid.Z)}
		}
		axes := []geometry.Vec3{geometry.UnitX, geometry.UnitY, geometry.UnitZ}
		var planes []geometry.Plane
		for _, n := range axes {
			lo, _ := geometry.NewPlane(n.Scale(-1), min)
			hi, _ := geometry.NewPlane(n, max)
			planes = append(planes, lo, hi)
		}
		return hullFromPlanes(planes)
	})
}

// candidate is a triple intersection and the planes that produced it.
type candidate struct {
	p       geometry.Point
	sources [3]int
}

func hullFromPlanes(planes []geometry.Plane) generated {
	if len(planes) > MaxPlanes {
		return generated{}
	}
	var cands []candidate
	for i := 0; i < len(planes); i++ {
		for j := i + 1; j < len(planes); j++ {
			for k := j + 1; k < len(planes); k++ {
				if p, ok := geometry.Intersect(planes[i], planes[j], planes[k]); ok {
					cands = append(cands, candidate{p: p, sources: [3]int{i, j, k}})
				}
			}
		}
	}
	if len(cands) == 0 {
		return generated{}
	}

	if closed(planes) {
		if g := hullOf(planes, cands); len(g.faces) == len(planes) {
			return g
		}
	}

	var best generated
	bestAgree := -1
	for _, flips := range cellOrientations(planes, cands) {
		oriented := make([]geometry.Plane, len(planes))
		agree := 0
		for i, pl := range planes {
			if flips[i] {
				pl = pl.Flip()
			} else {
				agree++
			}
			oriented[i] = pl
		}
		if !closed(oriented) {
			continue
		}
		g := hullOf(oriented, cands)
		if len(g.faces) == 0 {
			continue
		}
		if len(g.faces) > len(best.faces) || (len(g.faces) == len(best.faces) && agree > bestAgree) {
			best, bestAgree = g, agree
		}
	}
	return best
}

// hullOf keeps the candidates inside every half-space of oriented and
// builds one face per plane that holds at least three of them.
func hullOf(oriented []geometry.Plane, cands []candidate) generated {
	var kept []geometry.Point
	for _, c := range cands {
		if inside(oriented, c.p) {
			kept = appendUnique(kept, c.p)
		}
	}

	var faces []geometry.Face
	for _, pl := range oriented {
		var loop []geometry.Point
		for _, p := range kept {
			if math.Abs(pl.SignedDistance(p)) <= planeEpsilon {
				loop = append(loop, p)
			}
		}
		if len(loop) < 3 {
			continue
		}
		faces = append(faces, geometry.NewFace(pl.Normal, geometry.SortLoop(loop, pl.Normal)...))
	}

	origin, radius := geometry.Diameter(kept)
	for i := range faces {
		faces[i].Vertices = radialTex(faces[i].Vertices, origin, radius)
	}
	return generated{faces: faces, origin: origin, radius: radius}
}

// closed reports whether the half-spaces behind the planes' normals bound
// a finite region: no direction may run away from every plane at once.
// Such a direction, if one exists, lies along an edge, that is along the
// cross product of two normals.
func closed(oriented []geometry.Plane) bool {
	spanned := false
	for i := 0; i < len(oriented); i++ {
		for j := i + 1; j < len(oriented); j++ {
			d := oriented[i].Normal.Cross(oriented[j].Normal)
			n := d.Norm()
			if n < geometry.SingularTolerance {
				continue
			}
			spanned = true
			d = d.Scale(1 / n)
			for _, dir := range [2]geometry.Vec3{d, d.Scale(-1)} {
				escapes := true
				for _, pl := range oriented {
					if pl.Normal.Dot(dir) > planeEpsilon {
						escapes = false
						break
					}
				}
				if escapes {
					return false
				}
			}
		}
	}
	return spanned
}

// cellOrientations samples the cells of the plane arrangement around each
// candidate vertex and returns, per cell, which planes must be flipped for
// the cell to lie behind every normal. Around a vertex the sample points
// sit a small step off each of its three planes, one per sign combination.
// Planes passing through the vertex along the sample direction could go
// either way, so both choices are kept.
func cellOrientations(planes []geometry.Plane, cands []candidate) [][]bool {
	seen := make(map[string]bool)
	var out [][]bool
	key := make([]byte, len(planes))
	for _, c := range cands {
		v := c.p.Vec3()
		step := sampleStep * (1 + math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z))))
		for signs := 0; signs < 8; signs++ {
			var shifted [3]geometry.Plane
			for n, src := range c.sources {
				s := 1.0
				if signs&(1<<n) != 0 {
					s = -1
				}
				pl := planes[src]
				shifted[n] = geometry.Plane{Normal: pl.Normal, Point: pl.Point.Translate(pl.Normal.Scale(s * step))}
			}
			p, ok := geometry.Intersect(shifted[0], shifted[1], shifted[2])
			if !ok {
				continue
			}

			flips := make([]bool, len(planes))
			var open []int
			for i, pl := range planes {
				d := pl.SignedDistance(p)
				if math.Abs(d) < step*1e-3 {
					open = append(open, i)
					continue
				}
				flips[i] = d > 0
			}
			if len(open) > maxOpenPlanes {
				continue
			}
			for mask := 0; mask < 1<<len(open); mask++ {
				for n, i := range open {
					flips[i] = mask&(1<<n) != 0
				}
				for i, f := range flips {
					key[i] = '0'
					if f {
						key[i] = '1'
					}
				}
				if seen[string(key)] {
					continue
				}
				seen[string(key)] = true
				out = append(out, append([]bool(nil), flips...))
			}
		}
	}
	return out
}

func inside(planes []geometry.Plane, p geometry.Point) bool {
	for _, pl := range planes {
		if pl.SignedDistance(p) > planeEpsilon {
			return false
		}
	}
	return true
}

func appendUnique(pts []geometry.Point, p geometry.Point) []geometry.Point {
	for _, q := range pts {
		if q.ApproxEqual(p, planeEpsilon) {
			return pts
		}
	}
	return append(pts, p)
}

func allVertices(faces []geometry.Face) []geometry.Point {
	var out []geometry.Point
	for _, f := range faces {
		out = append(out, f.Vertices...)
	}
	return out
}

// NewPrism joins two regular N-gons of radius r, centred on baseCenter and
// topCenter, with N quadrilateral walls. The bases face -Z and +Z; wall i
// faces (cos θ, sin θ, 0) where θ is the middle of its angular slot. Fewer
// than three or more than MaxSides sides, or a zero or non-finite radius,
// give an empty prism.
func NewPrism(baseCenter, topCenter geometry.Point, sides int, r float64) *Shape {
	return newShape(KindPrism, ModePolygon, func() generated {
		mid := geometry.Midpoint(baseCenter, topCenter)
		g := generated{origin: geometry.Pt(mid.X, mid.Y, mid.Z)}
		if sides < 3 || sides > MaxSides || !usableLength(r) {
			return g
		}
		base := ring(baseCenter, sides, r)
		top := ring(topCenter, sides, r)

		// Seen from below the base runs clockwise, so reverse it.
		bottom := make([]geometry.Point, sides)
		for i := range base {
			bottom[i] = base[sides-1-i]
		}
		faces := []geometry.Face{
			geometry.NewFace(geometry.Vec3{Z: -1}, discTex(bottom, baseCenter, r)...),
			geometry.NewFace(geometry.UnitZ, discTex(top, topCenter, r)...),
		}

		step := 2 * math.Pi / float64(sides)
		for i := 0; i < sides; i++ {
			j := (i + 1) % sides
			theta := (float64(i) + 0.5) * step
			s0, s1 := float64(i)/float64(sides), float64(i+1)/float64(sides)
			faces = append(faces, geometry.NewFace(
				geometry.Vec3{X: math.Cos(theta), Y: math.Sin(theta)},
				base[i].WithTex(s0, 0),
				base[j].WithTex(s1, 0),
				top[j].WithTex(s1, 1),
				top[i].WithTex(s0, 1),
			))
		}
		g.faces = faces
		_, g.radius = geometry.Diameter(append(base, top...))
		return g
	})
}

// discTex maps a ring of radius r onto the unit texture square.
func discTex(pts []geometry.Point, center geometry.Point, r float64) []geometry.Point {
	return radialTex(pts, geometry.Pt(center.X, center.Y, center.Z), r)
}

// HorizonSteps is the number of samples per half turn of the horizon sphere.
const HorizonSteps = 90

// NewHorizon is the inside of a sphere of radius r around center, split into
// quads every π/HorizonSteps in longitude and latitude. Texture s runs with
// longitude and t with latitude. Normals point inward, toward the viewer.
func NewHorizon(center geometry.Point, r float64) *Shape {
	return newShape(KindHorizon, ModePolygon, func() generated {
		g := generated{origin: geometry.Pt(center.X, center.Y, center.Z), radius: r}
		if r <= 0 {
			return g
		}
		step := math.Pi / HorizonSteps
		at := func(i, j int) geometry.Point {
			alpha, beta := float64(i)*step, float64(j)*step-math.Pi/2
			return geometry.Point{
				X: center.X + r*math.Cos(alpha)*math.Cos(beta),
				Y: center.Y + r*math.Sin(alpha)*math.Cos(beta),
				Z: center.Z + r*math.Sin(beta),
				S: alpha / (2 * math.Pi),
				T: (beta + math.Pi/2) / math.Pi,
			}
		}
		for i := 0; i < 2*HorizonSteps; i++ {
			for j := 0; j < HorizonSteps; j++ {
				quad := []geometry.Point{at(i, j), at(i, j+1), at(i+1, j+1), at(i+1, j)}
				c := geometry.Centroid(quad)
				n, err := geometry.Pt(center.X, center.Y, center.Z).Sub(c).Normalize()
				if err != nil {
					n = geometry.UnitZ
				}
				g.faces = append(g.faces, geometry.NewFace(n, quad...))
			}
		}
		return g
	})
}
