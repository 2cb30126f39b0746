// Package figure generates the face lists of drawable shapes and applies
// each figure's accumulated rotation before handing the faces on. Every
// shape is a *Shape; the constructors in this package differ only in how
// they generate the untransformed faces.
package figure

import (
	"fmt"
	"sync"

	"github.com/chazu/gengine/pkg/geometry"
)

// PointDensity is the number of samples per half turn used by arcs and
// ellipses. The angular step is π / PointDensity.
const PointDensity = 180

// Kind identifies the generator that produced a figure.
type Kind int

const (
	KindArc Kind = iota
	KindSector
	KindCircle
	KindSegment
	KindPolygon
	KindEllArc
	KindEllipse
	KindRegPol
	KindRectangle
	KindPolyhedron
	KindPrism
	KindBox
	KindHorizon
)

var kindNames = [...]string{
	KindArc:        "arc",
	KindSector:     "sector",
	KindCircle:     "circle",
	KindSegment:    "segment",
	KindPolygon:    "polygon",
	KindEllArc:     "ellarc",
	KindEllipse:    "ellipse",
	KindRegPol:     "regpol",
	KindRectangle:  "rectangle",
	KindPolyhedron: "polyhedron",
	KindPrism:      "prism",
	KindBox:        "box",
	KindHorizon:    "horizon",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Mode tells the rasterizer how to connect a face's vertices.
type Mode int

const (
	ModePoints Mode = iota
	ModeLines
	ModeLineStrip
	ModeLineLoop
	ModePolygon
)

func (m Mode) String() string {
	switch m {
	case ModePoints:
		return "points"
	case ModeLines:
		return "lines"
	case ModeLineStrip:
		return "line-strip"
	case ModeLineLoop:
		return "line-loop"
	case ModePolygon:
		return "polygon"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Figure is a drawable shape: a face list in local coordinates plus the
// pivot and rotation that place it in the world.
type Figure interface {
	Kind() Kind
	Mode() Mode

	// Faces returns a copy of the untransformed faces.
	Faces() []geometry.Face
	// Print returns freshly allocated faces with every vertex and normal
	// rotated about Origin by Angles.
	Print() []geometry.Face

	Origin() geometry.Point
	Radius() float64
	Angles() geometry.Angles
	// Rotate adds to the accumulated rotation (radians).
	Rotate(yaw, pitch, roll float64)

	SetSolid(solid bool)
	Solid() bool
	SetMaterial(name string)
	Material() string
}

var _ Figure = (*Shape)(nil)

// Shape is the concrete Figure. The faces, origin and radius are produced
// once by a generator; rotation, solidity and material may change later and
// are guarded by mu.
type Shape struct {
	kind   Kind
	mode   Mode
	faces  []geometry.Face
	origin geometry.Point
	radius float64

	mu       sync.RWMutex
	angles   geometry.Angles
	solid    bool
	material string
}

// generated is what a generator hands back to newShape.
type generated struct {
	faces  []geometry.Face
	origin geometry.Point
	radius float64
}

// generator produces a shape's faces in local coordinates. Generators are
// pure and never fail; degenerate input yields no faces.
type generator func() generated

func newShape(kind Kind, mode Mode, gen generator) *Shape {
	g := gen()
	return &Shape{
		kind:   kind,
		mode:   mode,
		faces:  g.faces,
		origin: g.origin,
		radius: g.radius,
	}
}

func (s *Shape) Kind() Kind { return s.kind }

func (s *Shape) Mode() Mode { return s.mode }

func (s *Shape) Origin() geometry.Point { return s.origin }

// Radius is the half-diameter used to normalise texture coordinates.
func (s *Shape) Radius() float64 { return s.radius }

// Empty reports whether generation produced no faces.
func (s *Shape) Empty() bool { return len(s.faces) == 0 }

func (s *Shape) Faces() []geometry.Face {
	out := make([]geometry.Face, len(s.faces))
	for i, f := range s.faces {
		out[i] = f.Clone()
	}
	return out
}

func (s *Shape) Print() []geometry.Face {
	angles := s.Angles()
	if angles.IsZero() {
		return s.Faces()
	}
	out := make([]geometry.Face, len(s.faces))
	for i, f := range s.faces {
		out[i] = f.Transform(s.origin, angles)
	}
	return out
}

// Vertices flattens Print into a single vertex list, which is what the
// line and point modes draw.
func (s *Shape) Vertices() []geometry.Point {
	var out []geometry.Point
	for _, f := range s.Print() {
		out = append(out, f.Vertices...)
	}
	return out
}

func (s *Shape) Angles() geometry.Angles {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.angles
}

func (s *Shape) Rotate(yaw, pitch, roll float64) {
	s.mu.Lock()
	s.angles = s.angles.Add(geometry.Angles{Yaw: yaw, Pitch: pitch, Roll: roll})
	s.mu.Unlock()
}

func (s *Shape) SetSolid(solid bool) {
	s.mu.Lock()
	s.solid = solid
	s.mu.Unlock()
}

func (s *Shape) Solid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.solid
}

func (s *Shape) SetMaterial(name string) {
	s.mu.Lock()
	s.material = name
	s.mu.Unlock()
}

func (s *Shape) Material() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.material
}

func (s *Shape) String() string {
	return fmt.Sprintf("%s(%d faces)", s.kind, len(s.faces))
}
