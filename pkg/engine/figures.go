package engine

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/gengine/pkg/figure"
	"github.com/chazu/gengine/pkg/geometry"
	"github.com/chazu/gengine/pkg/scene"
)

// pointsAndFloats reads np points followed by nf numbers.
func pointsAndFloats(fn string, args []zygo.Sexp, np, nf int) ([]geometry.Point, []float64, error) {
	if err := needArgs(fn, args, np+nf); err != nil {
		return nil, nil, err
	}
	pts := make([]geometry.Point, np)
	for i := 0; i < np; i++ {
		p, err := toPoint(args[i])
		if err != nil {
			return nil, nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		pts[i] = p
	}
	fs := make([]float64, nf)
	for i := 0; i < nf; i++ {
		f, err := toFloat64(args[np+i])
		if err != nil {
			return nil, nil, fmt.Errorf("argument %d: %w", np+i+1, err)
		}
		fs[i] = f
	}
	return pts, fs, nil
}

// (arc center start sweep)
func (b *builder) arc(args []zygo.Sexp) (zygo.Sexp, error) {
	pts, fs, err := pointsAndFloats("arc", args, 2, 1)
	if err != nil {
		return zygo.SexpNull, err
	}
	return figureValue(figure.NewArc(pts[0], pts[1], fs[0])), nil
}

// (sector center start sweep)
func (b *builder) sector(args []zygo.Sexp) (zygo.Sexp, error) {
	pts, fs, err := pointsAndFloats("sector", args, 2, 1)
	if err != nil {
		return zygo.SexpNull, err
	}
	return figureValue(figure.NewSector(pts[0], pts[1], fs[0])), nil
}

// (circle center radius)
func (b *builder) circle(args []zygo.Sexp) (zygo.Sexp, error) {
	pts, fs, err := pointsAndFloats("circle", args, 1, 1)
	if err != nil {
		return zygo.SexpNull, err
	}
	return figureValue(figure.NewCircle(pts[0], fs[0])), nil
}

// (segment a b)
func (b *builder) segment(args []zygo.Sexp) (zygo.Sexp, error) {
	pts, _, err := pointsAndFloats("segment", args, 2, 0)
	if err != nil {
		return zygo.SexpNull, err
	}
	return figureValue(figure.NewSegment(pts[0], pts[1])), nil
}

// (polygon p1 p2 p3 ...) or (polygon [p1 p2 p3])
func (b *builder) polygon(args []zygo.Sexp) (zygo.Sexp, error) {
	pts, err := toPoints(args)
	if err != nil {
		return zygo.SexpNull, err
	}
	return figureValue(figure.NewPolygon(pts...)), nil
}

// (ellarc center start xmod ymod sweep)
func (b *builder) ellarc(args []zygo.Sexp) (zygo.Sexp, error) {
	pts, fs, err := pointsAndFloats("ellarc", args, 2, 3)
	if err != nil {
		return zygo.SexpNull, err
	}
	return figureValue(figure.NewEllArc(pts[0], pts[1], fs[0], fs[1], fs[2])), nil
}

// (ellipse center a b)
func (b *builder) ellipse(args []zygo.Sexp) (zygo.Sexp, error) {
	pts, fs, err := pointsAndFloats("ellipse", args, 1, 2)
	if err != nil {
		return zygo.SexpNull, err
	}
	return figureValue(figure.NewEllipse(pts[0], fs[0], fs[1])), nil
}

// toSides reads a side count and rejects counts above figure.MaxSides
// before anything is allocated for them.
func toSides(s zygo.Sexp) (int, error) {
	n, err := toInt(s)
	if err != nil {
		return 0, err
	}
	if n > figure.MaxSides {
		return 0, fmt.Errorf("%d exceeds the limit of %d", n, figure.MaxSides)
	}
	return n, nil
}

// (regpol center sides radius)
func (b *builder) regpol(args []zygo.Sexp) (zygo.Sexp, error) {
	if err := needArgs("regpol", args, 3); err != nil {
		return zygo.SexpNull, err
	}
	c, err := toPoint(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("center: %w", err)
	}
	sides, err := toSides(args[1])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("sides: %w", err)
	}
	r, err := toFloat64(args[2])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("radius: %w", err)
	}
	return figureValue(figure.NewRegPol(c, sides, r)), nil
}

// (rectangle corner opposite)
func (b *builder) rectangle(args []zygo.Sexp) (zygo.Sexp, error) {
	pts, _, err := pointsAndFloats("rectangle", args, 2, 0)
	if err != nil {
		return zygo.SexpNull, err
	}
	return figureValue(figure.NewRectangle(pts[0], pts[1])), nil
}

// (polyhedron plane ...)
func (b *builder) polyhedron(args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) > figure.MaxPlanes {
		return zygo.SexpNull, fmt.Errorf("%d planes given, at most %d allowed", len(args), figure.MaxPlanes)
	}
	planes := make([]geometry.Plane, 0, len(args))
	for i, a := range args {
		pl, err := toPlane(a)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("argument %d: %w", i+1, err)
		}
		planes = append(planes, pl)
	}
	return figureValue(figure.NewPolyhedron(planes...)), nil
}

// (prism base-center top-center sides radius)
func (b *builder) prism(args []zygo.Sexp) (zygo.Sexp, error) {
	if err := needArgs("prism", args, 4); err != nil {
		return zygo.SexpNull, err
	}
	base, err := toPoint(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("base: %w", err)
	}
	top, err := toPoint(args[1])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("top: %w", err)
	}
	sides, err := toSides(args[2])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("sides: %w", err)
	}
	r, err := toFloat64(args[3])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("radius: %w", err)
	}
	return figureValue(figure.NewPrism(base, top, sides, r)), nil
}

// (box min-corner max-corner)
func (b *builder) box(args []zygo.Sexp) (zygo.Sexp, error) {
	pts, _, err := pointsAndFloats("box", args, 2, 0)
	if err != nil {
		return zygo.SexpNull, err
	}
	return figureValue(figure.NewBox(pts[0], pts[1])), nil
}

// (rotate fig yaw pitch roll) or (rotate fig (angles ...)). Degrees; the
// rotation adds to what the figure already carries.
func (b *builder) rotate(args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 2 && len(args) != 4 {
		return zygo.SexpNull, fmt.Errorf("rotate requires a figure and angles, got %d arguments", len(args))
	}
	fig, err := toFigure(args[0])
	if err != nil {
		return zygo.SexpNull, err
	}
	var a geometry.Angles
	if len(args) == 2 {
		a, err = toAngles(args[1])
	} else {
		a, err = degrees("rotate", args[1:])
	}
	if err != nil {
		return zygo.SexpNull, err
	}
	fig.Rotate(a.Yaw, a.Pitch, a.Roll)
	return args[0], nil
}

// (solid fig [material]) fills the figure's faces instead of outlining them.
func (b *builder) solid(args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 1 && len(args) != 2 {
		return zygo.SexpNull, fmt.Errorf("solid requires a figure and an optional material")
	}
	fig, err := toFigure(args[0])
	if err != nil {
		return zygo.SexpNull, err
	}
	fig.SetSolid(true)
	if len(args) == 2 {
		name, err := toMaterialName(args[1])
		if err != nil {
			return zygo.SexpNull, err
		}
		fig.SetMaterial(name)
	}
	return args[0], nil
}

// ---------------------------------------------------------------------------
// Kernel solids
// ---------------------------------------------------------------------------

// (solid-box x y z) or (solid-box :size (vec3 x y z))
func (b *builder) solidBox(args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	var size geometry.Vec3
	if v, ok := pa.kw["size"]; ok {
		vec, err := toVec3(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("size: %w", err)
		}
		size = vec
	} else {
		if len(pa.positional) != 3 {
			return zygo.SexpNull, fmt.Errorf("solid-box requires x y z dimensions or :size")
		}
		var d [3]float64
		for i, a := range pa.positional {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("dimension %d: %w", i+1, err)
			}
			d[i] = f
		}
		size = geometry.Vec3{X: d[0], Y: d[1], Z: d[2]}
	}
	data := scene.SolidData{Shape: scene.SolidBox, Size: size}
	if err := pa.str("solid-box", "material", &data.Material); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpSolid{data: data}, nil
}

// (cylinder :radius r :height h)
func (b *builder) cylinder(args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	data := scene.SolidData{Shape: scene.SolidCylinder}
	if _, ok := pa.kw["radius"]; !ok {
		return zygo.SexpNull, fmt.Errorf("cylinder requires :radius")
	}
	if _, ok := pa.kw["height"]; !ok {
		return zygo.SexpNull, fmt.Errorf("cylinder requires :height")
	}
	for _, err := range []error{
		pa.float("cylinder", "radius", &data.Radius),
		pa.float("cylinder", "height", &data.Height),
		pa.str("cylinder", "material", &data.Material),
	} {
		if err != nil {
			return zygo.SexpNull, err
		}
	}
	return &sexpSolid{data: data}, nil
}

// (solid-prism :sides n :radius r :height h)
func (b *builder) solidPrism(args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	data := scene.SolidData{Shape: scene.SolidPrism}
	for _, key := range []string{"sides", "radius", "height"} {
		if _, ok := pa.kw[key]; !ok {
			return zygo.SexpNull, fmt.Errorf("solid-prism requires :%s", key)
		}
	}
	sides, err := toSides(pa.kw["sides"])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("sides: %w", err)
	}
	data.Sides = sides
	for _, err := range []error{
		pa.float("solid-prism", "radius", &data.Radius),
		pa.float("solid-prism", "height", &data.Height),
		pa.str("solid-prism", "material", &data.Material),
	} {
		if err != nil {
			return zygo.SexpNull, err
		}
	}
	return &sexpSolid{data: data}, nil
}
