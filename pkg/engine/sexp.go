package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/gengine/pkg/figure"
	"github.com/chazu/gengine/pkg/geometry"
	"github.com/chazu/gengine/pkg/scene"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPoint wraps a geometry.Point.
type sexpPoint struct {
	p geometry.Point
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(point %g %g %g)", p.p.X, p.p.Y, p.p.Z)
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a geometry.Vec3.
type sexpVec3 struct {
	vec geometry.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpAngles wraps geometry.Angles. Scripts write degrees; the value held
// here is already in radians.
type sexpAngles struct {
	a geometry.Angles
}

func (a *sexpAngles) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(angles %.6g %.6g %.6g)", a.a.Yaw, a.a.Pitch, a.a.Roll)
}
func (a *sexpAngles) Type() *zygo.RegisteredType { return nil }

// sexpPlane wraps a geometry.Plane for polyhedron.
type sexpPlane struct {
	pl geometry.Plane
}

func (p *sexpPlane) SexpString(ps *zygo.PrintState) string {
	n := p.pl.Normal
	return fmt.Sprintf("(plane :normal (vec3 %g %g %g))", n.X, n.Y, n.Z)
}
func (p *sexpPlane) Type() *zygo.RegisteredType { return nil }

// sexpFigure wraps a generated figure that has not been added to the
// scene yet.
type sexpFigure struct {
	fig figure.Figure
}

func (f *sexpFigure) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %d faces)", f.fig.Kind(), len(f.fig.Faces()))
}
func (f *sexpFigure) Type() *zygo.RegisteredType { return nil }

// sexpSolid wraps a kernel solid description.
type sexpSolid struct {
	data scene.SolidData
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(solid-%s)", s.data.Shape)
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// sexpMaterial names a material registered with the scene.
type sexpMaterial struct {
	name string
}

func (m *sexpMaterial) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(material %q)", m.name)
}
func (m *sexpMaterial) Type() *zygo.RegisteredType { return nil }

// sexpNodeRef wraps a scene.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   scene.NodeID
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			// Keyword at end with no value is a flag.
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// float reads keyword key as a number, leaving *dst alone when absent.
func (a kwArgs) float(fn, key string, dst *float64) error {
	v, ok := a.kw[key]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	*dst = f
	return nil
}

// str reads keyword key as a string, leaving *dst alone when absent.
func (a kwArgs) str(fn, key string, dst *string) error {
	v, ok := a.kw[key]
	if !ok {
		return nil
	}
	s, err := toString(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	*dst = s
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts a whole number.
func toInt(s zygo.Sexp) (int, error) {
	f, err := toFloat64(s)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("expected whole number, got %g", f)
	}
	return int(f), nil
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toBool accepts true/false.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toPoint extracts a point; a vec3 is accepted as a position.
func toPoint(s zygo.Sexp) (geometry.Point, error) {
	switch v := s.(type) {
	case *sexpPoint:
		return v.p, nil
	case *sexpVec3:
		return geometry.Pt(v.vec.X, v.vec.Y, v.vec.Z), nil
	}
	return geometry.Point{}, fmt.Errorf("expected point, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3; a point is accepted as its position.
func toVec3(s zygo.Sexp) (geometry.Vec3, error) {
	switch v := s.(type) {
	case *sexpVec3:
		return v.vec, nil
	case *sexpPoint:
		return v.p.Vec3(), nil
	}
	return geometry.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toRGB reads a (vec3 r g b) intensity.
func toRGB(s zygo.Sexp) ([3]float64, error) {
	v, err := toVec3(s)
	if err != nil {
		return [3]float64{}, err
	}
	return [3]float64{v.X, v.Y, v.Z}, nil
}

// toAngles extracts angles from an (angles ...) value.
func toAngles(s zygo.Sexp) (geometry.Angles, error) {
	if a, ok := s.(*sexpAngles); ok {
		return a.a, nil
	}
	return geometry.Angles{}, fmt.Errorf("expected angles, got %T (%s)", s, s.SexpString(nil))
}

// toPlane extracts a plane.
func toPlane(s zygo.Sexp) (geometry.Plane, error) {
	if p, ok := s.(*sexpPlane); ok {
		return p.pl, nil
	}
	return geometry.Plane{}, fmt.Errorf("expected plane, got %T (%s)", s, s.SexpString(nil))
}

// toFigure extracts a figure value.
func toFigure(s zygo.Sexp) (figure.Figure, error) {
	if f, ok := s.(*sexpFigure); ok {
		return f.fig, nil
	}
	return nil, fmt.Errorf("expected figure, got %T (%s)", s, s.SexpString(nil))
}

// toMaterialName accepts a (material ...) value or a plain name.
func toMaterialName(s zygo.Sexp) (string, error) {
	switch v := s.(type) {
	case *sexpMaterial:
		return v.name, nil
	case *zygo.SexpStr:
		return v.S, nil
	}
	return "", fmt.Errorf("expected material, got %T (%s)", s, s.SexpString(nil))
}

// toPoints reads every argument as a point, flattening lists and arrays.
func toPoints(args []zygo.Sexp) ([]geometry.Point, error) {
	var pts []geometry.Point
	for _, a := range args {
		if items, err := sexpListToSlice(a); err == nil {
			more, err := toPoints(items)
			if err != nil {
				return nil, err
			}
			pts = append(pts, more...)
			continue
		}
		p, err := toPoint(a)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// needArgs checks a positional argument count.
func needArgs(fn string, args []zygo.Sexp, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s requires exactly %d arguments, got %d", fn, n, len(args))
	}
	return nil
}
