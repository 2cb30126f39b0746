package figure

import (
	"math"

	"github.com/chazu/gengine/pkg/geometry"
)

// angleStep is the sampling step of arcs and ellipses in radians.
const angleStep = math.Pi / PointDensity

// normalizeSweep maps a sweep in degrees into (0, 360]. It returns false
// for a zero or non-finite sweep.
func normalizeSweep(deg float64) (float64, bool) {
	if deg == 0 || math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0, false
	}
	deg = math.Mod(deg, 360)
	if deg <= 0 {
		deg += 360
	}
	return deg, true
}

// finite reports whether every value is a real number.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// usableLength reports whether a radius or axis can carry geometry: it
// must be finite and non-zero.
func usableLength(vs ...float64) bool {
	for _, v := range vs {
		if v == 0 {
			return false
		}
	}
	return finite(vs...)
}

// sweepAngles returns the sample angles from start through start+sweep,
// stepping by angleStep. The end angle is always the last sample.
func sweepAngles(start, sweep float64) []float64 {
	n := int(math.Ceil(sweep/angleStep - 1e-9))
	out := make([]float64, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, start+float64(i)*angleStep)
	}
	return append(out, start+sweep)
}

// ellipsePoints samples an axis-aligned ellipse around center. Texture
// coordinates follow the sample angle on a circle of radius one half.
func ellipsePoints(center geometry.Point, xr, yr, start, sweep float64) []geometry.Point {
	angles := sweepAngles(start, sweep)
	pts := make([]geometry.Point, len(angles))
	for i, a := range angles {
		c, s := math.Cos(a), math.Sin(a)
		pts[i] = geometry.Point{
			X: center.X + xr*c,
			Y: center.Y + yr*s,
			Z: center.Z,
			S: 0.5 * c,
			T: 0.5 * s,
		}
	}
	return pts
}

// Arc is a circular arc. It keeps its construction parameters so that
// the end point of the sweep can be reported.
type Arc struct {
	*Shape
	center geometry.Point
	radius float64
	start  float64 // radians
	sweep  float64 // radians, in (0, 2π]
}

// NewArc samples the arc of the circle through start centred on center,
// running counter-clockwise for sweepDeg degrees. The sweep is normalised
// into (0, 360]. A zero or non-finite radius, or a zero sweep, gives an
// empty arc.
func NewArc(center, start geometry.Point, sweepDeg float64) *Arc {
	return newArc(KindArc, ModeLineStrip, center, start, sweepDeg, false)
}

// NewSector is an arc with the centre prefixed, drawn as a fan.
func NewSector(center, start geometry.Point, sweepDeg float64) *Arc {
	return newArc(KindSector, ModePolygon, center, start, sweepDeg, true)
}

// NewCircle is a full turn of radius r starting on the +X side of center.
// The first and last samples coincide.
func NewCircle(center geometry.Point, r float64) *Arc {
	start := center.Translate(geometry.Vec3{X: r})
	return newArc(KindCircle, ModeLineLoop, center, start, 360, false)
}

func newArc(kind Kind, mode Mode, center, start geometry.Point, sweepDeg float64, fan bool) *Arc {
	a := &Arc{
		center: geometry.Pt(center.X, center.Y, center.Z),
		radius: geometry.Distance(start, center),
		start:  math.Atan2(start.Y-center.Y, start.X-center.X),
	}
	deg, ok := normalizeSweep(sweepDeg)
	if ok {
		a.sweep = deg * math.Pi / 180
	}
	a.Shape = newShape(kind, mode, func() generated {
		g := generated{origin: a.center, radius: a.radius}
		if !ok || !usableLength(a.radius) || !finite(a.start) {
			return g
		}
		pts := ellipsePoints(a.center, a.radius, a.radius, a.start, a.sweep)
		if fan {
			pts = append([]geometry.Point{a.center}, pts...)
		}
		g.faces = []geometry.Face{geometry.NewFace(geometry.UnitZ, pts...)}
		return g
	})
	return a
}

// End returns the untransformed point where the sweep stops.
func (a *Arc) End() geometry.Point {
	e := a.start + a.sweep
	return geometry.Pt(a.center.X+a.radius*math.Cos(e), a.center.Y+a.radius*math.Sin(e), a.center.Z)
}

// EllArc is an elliptical arc with independent X and Y radii.
type EllArc struct {
	*Shape
	center       geometry.Point
	xMod, yMod   float64
	start, sweep float64
}

// NewEllArc samples an ellipse of radii xMod and yMod around center. The
// start angle is the direction of start seen from center.
func NewEllArc(center, start geometry.Point, xMod, yMod, sweepDeg float64) *EllArc {
	return newEllArc(KindEllArc, ModeLineStrip, center, start, xMod, yMod, sweepDeg)
}

// NewEllipse is a closed ellipse of radii a and b.
func NewEllipse(center geometry.Point, a, b float64) *EllArc {
	start := center.Translate(geometry.Vec3{X: a})
	return newEllArc(KindEllipse, ModeLineLoop, center, start, a, b, 360)
}

func newEllArc(kind Kind, mode Mode, center, start geometry.Point, xMod, yMod, sweepDeg float64) *EllArc {
	e := &EllArc{
		center: geometry.Pt(center.X, center.Y, center.Z),
		xMod:   xMod,
		yMod:   yMod,
		start:  math.Atan2(start.Y-center.Y, start.X-center.X),
	}
	deg, ok := normalizeSweep(sweepDeg)
	if ok {
		e.sweep = deg * math.Pi / 180
	}
	e.Shape = newShape(kind, mode, func() generated {
		g := generated{origin: e.center, radius: math.Max(math.Abs(xMod), math.Abs(yMod))}
		if !ok || !usableLength(xMod, yMod) || !finite(e.start) {
			return g
		}
		pts := ellipsePoints(e.center, xMod, yMod, e.start, e.sweep)
		g.faces = []geometry.Face{geometry.NewFace(geometry.UnitZ, pts...)}
		return g
	})
	return e
}

// End returns the untransformed point where the sweep stops.
func (e *EllArc) End() geometry.Point {
	a := e.start + e.sweep
	return geometry.Pt(e.center.X+e.xMod*math.Cos(a), e.center.Y+e.yMod*math.Sin(a), e.center.Z)
}
