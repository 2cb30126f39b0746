package figure

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/gengine/pkg/geometry"
)

const eps = 1e-9

func TestSegment(t *testing.T) {
	a, b := geometry.Pt(0, 0, 0), geometry.Pt(1, 1, 1)
	seg := NewSegment(a, b)

	faces := seg.Print()
	require.Len(t, faces, 1)
	vs := faces[0].Vertices
	require.Len(t, vs, 2)

	assert.True(t, vs[0].ApproxEqual(a, 0))
	assert.True(t, vs[1].ApproxEqual(b, 0))
	assert.Equal(t, [2]float64{0, 0}, [2]float64{vs[0].S, vs[0].T})
	assert.Equal(t, [2]float64{1, 1}, [2]float64{vs[1].S, vs[1].T})
	assert.Equal(t, ModeLines, seg.Mode())
	assert.InDelta(t, math.Sqrt(3)/2, seg.Radius(), eps)
}

func TestCircleClosure(t *testing.T) {
	center := geometry.Pt(0, 0, 0)
	c := NewCircle(center, 5)

	vs := c.Vertices()
	require.NotEmpty(t, vs)

	first, last := vs[0], vs[len(vs)-1]
	step := 5 * (math.Pi / PointDensity)
	assert.LessOrEqual(t, geometry.Distance(first, last), step)

	for i, v := range vs {
		require.InDelta(t, 5.0, geometry.Distance(center, v), 1e-9, "vertex %d", i)
	}
	assert.Equal(t, ModeLineLoop, c.Mode())
}

func TestArc(t *testing.T) {
	center := geometry.Pt(1, 1, 0)
	start := geometry.Pt(1, 3, 0) // straight above the centre

	arc := NewArc(center, start, 90)
	vs := arc.Vertices()
	require.Len(t, vs, 91)

	assert.True(t, vs[0].ApproxEqual(start, 1e-12))
	assert.True(t, vs[len(vs)-1].ApproxEqual(geometry.Pt(-1, 1, 0), 1e-12))
	assert.True(t, arc.End().ApproxEqual(geometry.Pt(-1, 1, 0), 1e-12))

	// Texture follows the sample angle.
	assert.InDelta(t, 0.0, vs[0].S, eps)
	assert.InDelta(t, 0.5, vs[0].T, eps)
	assert.InDelta(t, -0.5, vs[90].S, eps)
}

func TestArcStartAngleInEveryQuadrant(t *testing.T) {
	center := geometry.Pt(0, 0, 0)
	for _, start := range []geometry.Point{
		geometry.Pt(2, 2, 0), geometry.Pt(-2, 2, 0), geometry.Pt(-2, -2, 0), geometry.Pt(2, -2, 0),
	} {
		vs := NewArc(center, start, 45).Vertices()
		require.NotEmpty(t, vs)
		assert.True(t, vs[0].ApproxEqual(start, 1e-12), "start %v got %v", start, vs[0])
	}
}

func TestArcSweepNormalised(t *testing.T) {
	center, start := geometry.Pt(0, 0, 0), geometry.Pt(1, 0, 0)

	neg := NewArc(center, start, -90)
	assert.True(t, neg.End().ApproxEqual(geometry.Pt(0, -1, 0), 1e-12))

	wide := NewArc(center, start, 450)
	assert.True(t, wide.End().ApproxEqual(geometry.Pt(0, 1, 0), 1e-12))

	assert.True(t, NewArc(center, start, 0).Empty())
	assert.True(t, NewArc(center, center, 90).Empty())
}

func TestSector(t *testing.T) {
	center := geometry.Pt(0, 0, 0)
	s := NewSector(center, geometry.Pt(2, 0, 0), 180)
	vs := s.Vertices()
	require.Len(t, vs, 182)
	assert.True(t, vs[0].ApproxEqual(center, 0))
	assert.Equal(t, KindSector, s.Kind())
}

func TestEllipse(t *testing.T) {
	e := NewEllipse(geometry.Pt(0, 0, 0), 4, 2)
	for _, v := range e.Vertices() {
		got := v.X*v.X/16 + v.Y*v.Y/4
		require.InDelta(t, 1.0, got, 1e-9)
	}

	arc := NewEllArc(geometry.Pt(0, 0, 0), geometry.Pt(1, 0, 0), 4, 2, 90)
	assert.True(t, arc.End().ApproxEqual(geometry.Pt(0, 2, 0), 1e-12))
	assert.True(t, NewEllArc(geometry.Pt(0, 0, 0), geometry.Pt(1, 0, 0), 0, 2, 90).Empty())
}

func TestNonFiniteLengthsAreDegenerate(t *testing.T) {
	o := geometry.Pt(0, 0, 0)
	nan, inf := math.NaN(), math.Inf(1)
	shapes := map[string]*Shape{
		"circle nan":       NewCircle(o, nan).Shape,
		"circle inf":       NewCircle(o, inf).Shape,
		"arc inf start":    NewArc(o, geometry.Pt(inf, 0, 0), 90).Shape,
		"ellipse nan":      NewEllipse(o, nan, 2).Shape,
		"ellarc inf":       NewEllArc(o, geometry.Pt(1, 0, 0), 1, inf, 90).Shape,
		"regpol nan":       NewRegPol(o, 6, nan),
		"regpol inf":       NewRegPol(o, 6, math.Inf(-1)),
		"prism nan":        NewPrism(o, geometry.Pt(0, 0, 1), 6, nan),
		"rectangle nan":    NewRectangle(o, geometry.Pt(nan, 1, 0)),
		"rectangle inf":    NewRectangle(geometry.Pt(0, inf, 0), geometry.Pt(1, 1, 0)),
		"prism over limit": NewPrism(o, geometry.Pt(0, 0, 1), MaxSides+1, 1),
	}
	for name, s := range shapes {
		assert.True(t, s.Empty(), "%s should be empty", name)
		for _, v := range s.Vertices() {
			assert.False(t, math.IsNaN(v.X) || math.IsNaN(v.Y), "%s has NaN vertex", name)
		}
	}
}

func TestRegPol(t *testing.T) {
	tests := []struct {
		name  string
		sides int
		want  int
	}{
		{"zero sides", 0, 0},
		{"two sides", 2, 0},
		{"triangle", 3, 3},
		{"hexagon", 6, 6},
		{"at the limit", MaxSides, MaxSides},
		{"over the limit", MaxSides + 1, 0},
		{"huge", 2000000000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rp := NewRegPol(geometry.Pt(0, 0, 0), tt.sides, 5)
			assert.Len(t, rp.Vertices(), tt.want)
		})
	}

	hex := NewRegPol(geometry.Pt(1, 2, 0), 6, 5)
	vs := hex.Vertices()
	assert.True(t, vs[0].ApproxEqual(geometry.Pt(6, 2, 0), 1e-12))
	assert.True(t, hex.Origin().ApproxEqual(geometry.Pt(1, 2, 0), 1e-12))
	assert.InDelta(t, 5.0, hex.Radius(), 1e-12)
}

func TestPolygonTexture(t *testing.T) {
	p := NewPolygon(geometry.Pt(0, 0, 0), geometry.Pt(4, 0, 0), geometry.Pt(2, 1, 0))

	assert.True(t, p.Origin().ApproxEqual(geometry.Pt(2, 0, 0), eps))
	assert.InDelta(t, 2.0, p.Radius(), eps)

	vs := p.Vertices()
	require.Len(t, vs, 3)
	assert.InDelta(t, 0.0, vs[0].S, eps)
	assert.InDelta(t, 1.0, vs[1].S, eps)
	assert.InDelta(t, 0.75, vs[2].T, eps)

	faces := p.Faces()
	assert.True(t, faces[0].Normal.ApproxEqual(geometry.UnitZ, eps))

	assert.True(t, NewPolygon(geometry.Pt(0, 0, 0), geometry.Pt(1, 0, 0)).Empty())
}

func TestRectangle(t *testing.T) {
	r := NewRectangle(geometry.Pt(0, 0, 3), geometry.Pt(2, 1, 9))
	vs := r.Vertices()
	require.Len(t, vs, 4)
	want := []geometry.Point{
		geometry.Pt(0, 0, 3), geometry.Pt(0, 1, 3), geometry.Pt(2, 1, 3), geometry.Pt(2, 0, 3),
	}
	for i := range want {
		assert.True(t, vs[i].ApproxEqual(want[i], 0), "vertex %d", i)
	}
}

func TestBox(t *testing.T) {
	b := NewBox(geometry.Pt(0, 0, 0), geometry.Pt(2, 4, 6))
	faces := b.Faces()
	require.Len(t, faces, 6)

	centre := geometry.Pt(1, 2, 3)
	for _, f := range faces {
		require.Len(t, f.Vertices, 4)
		// Normals point away from the centre.
		d := f.Vertices[0].Sub(centre)
		assert.Greater(t, d.Dot(f.Normal), 0.0)
	}
	assert.True(t, b.Origin().ApproxEqual(centre, eps))
	assert.InDelta(t, math.Sqrt(4+16+36)/2, b.Radius(), eps)

	assert.True(t, NewBox(geometry.Pt(0, 0, 0), geometry.Pt(1, 1, 0)).Empty())
}

func TestPolyhedronTetrahedron(t *testing.T) {
	p1, p2, p3, p4 := geometry.Pt(0, 0, 0), geometry.Pt(3, 0, 0), geometry.Pt(0, 3, 0), geometry.Pt(0, 0, 3)
	var planes []geometry.Plane
	for _, tri := range [][3]geometry.Point{{p1, p2, p3}, {p1, p2, p4}, {p1, p3, p4}, {p2, p3, p4}} {
		pl, err := geometry.PlaneFromPoints(tri[0], tri[1], tri[2])
		require.NoError(t, err)
		planes = append(planes, pl)
	}

	poly := NewPolyhedron(planes...)
	faces := poly.Faces()
	require.Len(t, faces, 4)
	for _, f := range faces {
		assert.Len(t, f.Vertices, 3)
	}

	var corners []geometry.Point
	for _, f := range faces {
		corners = append(corners, f.Vertices...)
	}
	for _, want := range []geometry.Point{p1, p2, p3, p4} {
		found := false
		for _, c := range corners {
			if c.ApproxEqual(want, 1e-9) {
				found = true
				break
			}
		}
		assert.True(t, found, "corner %v missing", want)
	}
}

// cubePlanes returns the outward planes of the cube [lo, hi]³.
func cubePlanes(t *testing.T, lo, hi float64) []geometry.Plane {
	t.Helper()
	var planes []geometry.Plane
	for _, n := range []geometry.Vec3{geometry.UnitX, geometry.UnitY, geometry.UnitZ} {
		low, err := geometry.NewPlane(n.Scale(-1), geometry.Pt(lo, lo, lo))
		require.NoError(t, err)
		high, err := geometry.NewPlane(n, geometry.Pt(hi, hi, hi))
		require.NoError(t, err)
		planes = append(planes, low, high)
	}
	return planes
}

// requireHull checks that the polyhedron has one face per plane and that
// every vertex lies behind every outward plane.
func requireHull(t *testing.T, poly *Shape, outward []geometry.Plane) {
	t.Helper()
	faces := poly.Faces()
	require.Len(t, faces, len(outward))
	for _, f := range faces {
		require.GreaterOrEqual(t, len(f.Vertices), 3)
		for _, v := range f.Vertices {
			for _, pl := range outward {
				require.LessOrEqual(t, pl.SignedDistance(v), 1e-6, "vertex %v outside plane %v", v.Vec3(), pl)
			}
		}
	}
	for _, pl := range outward {
		require.LessOrEqual(t, pl.SignedDistance(poly.Origin()), 1e-6, "origin %v outside", poly.Origin().Vec3())
	}
}

func TestPolyhedronChamferedCube(t *testing.T) {
	cut, err := geometry.NewPlane(geometry.Vec3{X: 1, Y: 1, Z: 0.01}, geometry.Pt(1, 0.9, 0))
	require.NoError(t, err)
	planes := append(cubePlanes(t, 0, 1), cut)

	poly := NewPolyhedron(planes...)
	requireHull(t, poly, planes)

	var top *geometry.Face
	for _, f := range poly.Faces() {
		if f.Normal.ApproxEqual(geometry.UnitZ, eps) {
			f := f
			top = &f
		}
	}
	require.NotNil(t, top, "top face missing")
	assert.Len(t, top.Vertices, 5)

	o := poly.Origin()
	for _, c := range []float64{o.X, o.Y, o.Z} {
		assert.True(t, c >= 0 && c <= 1, "origin %v outside the cube", o.Vec3())
	}
}

func TestPolyhedronMixedWinding(t *testing.T) {
	// The same chamfered cube with every other plane turned inwards.
	cut, err := geometry.NewPlane(geometry.Vec3{X: 1, Y: 1, Z: 0.01}, geometry.Pt(1, 0.9, 0))
	require.NoError(t, err)
	outward := append(cubePlanes(t, 0, 1), cut)
	given := make([]geometry.Plane, len(outward))
	for i, pl := range outward {
		if i%2 == 0 {
			pl = pl.Flip()
		}
		given[i] = pl
	}
	requireHull(t, NewPolyhedron(given...), outward)
}

func TestPolyhedronTangentPlanes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randomUnit := func() geometry.Vec3 {
		for {
			v := geometry.Vec3{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}
			if n, err := v.Normalize(); err == nil {
				return n
			}
		}
	}

	for trial := 0; trial < 40; trial++ {
		outward := cubePlanes(t, -1, 1)
		for i := 0; i < 4; i++ {
			u := randomUnit()
			pl, err := geometry.NewPlane(u, geometry.Point{}.WithPosition(u))
			require.NoError(t, err)
			outward = append(outward, pl)
		}
		requireHull(t, NewPolyhedron(outward...), outward)

		given := make([]geometry.Plane, len(outward))
		for i, pl := range outward {
			if rng.Intn(2) == 0 {
				pl = pl.Flip()
			}
			given[i] = pl
		}
		requireHull(t, NewPolyhedron(given...), outward)
	}
}

func TestPolyhedronTooManyPlanes(t *testing.T) {
	planes := cubePlanes(t, 0, 1)
	for len(planes) <= MaxPlanes {
		planes = append(planes, planes[len(planes)%6])
	}
	assert.True(t, NewPolyhedron(planes...).Empty())
}

func TestPolyhedronDegenerate(t *testing.T) {
	// Parallel planes never meet in a point.
	a, _ := geometry.NewPlane(geometry.UnitZ, geometry.Pt(0, 0, 0))
	b, _ := geometry.NewPlane(geometry.UnitZ, geometry.Pt(0, 0, 1))
	c, _ := geometry.NewPlane(geometry.UnitZ, geometry.Pt(0, 0, 2))
	assert.True(t, NewPolyhedron(a, b, c).Empty())
	assert.True(t, NewPolyhedron().Empty())
}

func TestPolyhedronFromFaces(t *testing.T) {
	f := geometry.NewFace(geometry.UnitZ, geometry.Pt(0, 0, 0), geometry.Pt(2, 0, 0), geometry.Pt(0, 2, 0))
	p := NewPolyhedronFromFaces(f)
	require.Len(t, p.Faces(), 1)
	assert.InDelta(t, math.Sqrt(8)/2, p.Radius(), eps)
}

func TestPrism(t *testing.T) {
	p := NewPrism(geometry.Pt(0, 0, 0), geometry.Pt(0, 0, 5), 4, 1)
	faces := p.Faces()
	require.Len(t, faces, 6)

	assert.Equal(t, geometry.Vec3{Z: -1}, faces[0].Normal)
	assert.Equal(t, geometry.UnitZ, faces[1].Normal)

	// First wall sits between 0 and 90 degrees.
	wall := faces[2]
	require.Len(t, wall.Vertices, 4)
	assert.True(t, wall.Normal.ApproxEqual(geometry.Vec3{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}, eps))
	assert.True(t, p.Origin().ApproxEqual(geometry.Pt(0, 0, 2.5), eps))

	assert.True(t, NewPrism(geometry.Pt(0, 0, 0), geometry.Pt(0, 0, 5), 2, 1).Empty())
}

func TestHorizon(t *testing.T) {
	h := NewHorizon(geometry.Pt(0, 0, 0), 10)
	faces := h.Faces()
	require.Len(t, faces, 2*HorizonSteps*HorizonSteps)
	for _, v := range faces[0].Vertices {
		assert.InDelta(t, 10.0, geometry.Distance(geometry.Pt(0, 0, 0), v), 1e-9)
	}
	assert.True(t, NewHorizon(geometry.Pt(0, 0, 0), 0).Empty())
}

func TestRotateAccumulates(t *testing.T) {
	seg := NewSegment(geometry.Pt(-1, 0, 0), geometry.Pt(1, 0, 0))
	seg.Rotate(0, 0, math.Pi/4)
	seg.Rotate(0, 0, math.Pi/4)

	assert.InDelta(t, math.Pi/2, seg.Angles().Roll, eps)
	vs := seg.Vertices()
	assert.True(t, vs[1].ApproxEqual(geometry.Pt(0, 1, 0), eps), "got %v", vs[1])

	// The untransformed faces are left alone.
	assert.True(t, seg.Faces()[0].Vertices[1].ApproxEqual(geometry.Pt(1, 0, 0), 0))
}

func TestPrintReturnsFreshFaces(t *testing.T) {
	r := NewRegPol(geometry.Pt(0, 0, 0), 3, 1)
	a := r.Print()
	a[0].Vertices[0].X = 99
	b := r.Print()
	assert.NotEqual(t, 99.0, b[0].Vertices[0].X)
}

func TestShapeState(t *testing.T) {
	s := NewCircle(geometry.Pt(0, 0, 0), 1)
	assert.False(t, s.Solid())
	s.SetSolid(true)
	assert.True(t, s.Solid())

	assert.Empty(t, s.Material())
	s.SetMaterial("brick")
	assert.Equal(t, "brick", s.Material())
	assert.Equal(t, "circle", s.Kind().String())
}

func TestConcurrentRotateAndPrint(t *testing.T) {
	s := NewRegPol(geometry.Pt(0, 0, 0), 8, 2)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Rotate(0.01, 0.02, 0.03)
		}()
		go func() {
			defer wg.Done()
			for _, v := range s.Vertices() {
				assert.InDelta(t, 2.0, geometry.Distance(geometry.Pt(0, 0, 0), v), 1e-9)
			}
		}()
	}
	wg.Wait()
	assert.InDelta(t, 0.08, s.Angles().Yaw, 1e-12)
}
