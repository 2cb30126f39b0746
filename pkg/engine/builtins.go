package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/gengine/pkg/figure"
	"github.com/chazu/gengine/pkg/geometry"
	"github.com/chazu/gengine/pkg/scene"
)

// builder collects the scene while a script runs. It belongs to a single
// evaluation and is only touched from the interpreter goroutine.
type builder struct {
	s *scene.Scene
	// uses counts how often a path prefix was handed out, so placing the
	// same part twice gives two distinct but reproducible IDs.
	uses map[string]int
}

func newBuilder(s *scene.Scene) *builder {
	return &builder{s: s, uses: make(map[string]int)}
}

// path returns prefix/name, suffixed with a counter from the second use on.
func (b *builder) path(prefix, name string) string {
	p := prefix + "/" + name
	n := b.uses[p]
	b.uses[p] = n + 1
	if n == 0 {
		return p
	}
	return fmt.Sprintf("%s#%d", p, n)
}

// add inserts a named node, refusing names that are already taken.
func (b *builder) add(n *scene.Node) error {
	if n.Name != "" && b.s.Lookup(n.Name) != nil {
		return fmt.Errorf("%q is already defined", n.Name)
	}
	b.s.AddNode(n)
	return nil
}

// nodeFor turns a builtin argument into a node reference. Figures and
// solids passed inline become anonymous nodes.
func (b *builder) nodeFor(s zygo.Sexp) (scene.NodeID, error) {
	switch v := s.(type) {
	case *sexpNodeRef:
		return v.id, nil
	case *sexpFigure:
		n := &scene.Node{
			ID:   scene.AnonymousID("figure"),
			Kind: scene.NodeFigure,
			Data: scene.FigureData{Figure: v.fig},
		}
		return n.ID, b.add(n)
	case *sexpSolid:
		n := &scene.Node{
			ID:   scene.AnonymousID("solid"),
			Kind: scene.NodeSolid,
			Data: v.data,
		}
		return n.ID, b.add(n)
	}
	return scene.ZeroID, fmt.Errorf("expected node reference, figure or solid, got %T (%s)", s, s.SexpString(nil))
}

// builtin is the shape every DSL function takes once the interpreter
// plumbing is stripped.
type builtin func(args []zygo.Sexp) (zygo.Sexp, error)

// registerBuiltins installs all DSL builtins into a zygomys environment.
// The builtins operate on the builder's scene, populating it during
// evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals and
// kebab-case names such as solid-box reach zygomys as solid_box.
func registerBuiltins(env *zygo.Zlisp, b *builder) {
	builtins := map[string]builtin{
		// values
		"point":  b.point,
		"vec3":   b.vec3,
		"angles": b.angles,
		"plane":  b.plane,

		// figures
		"arc":        b.arc,
		"sector":     b.sector,
		"circle":     b.circle,
		"segment":    b.segment,
		"polygon":    b.polygon,
		"ellarc":     b.ellarc,
		"ellipse":    b.ellipse,
		"regpol":     b.regpol,
		"rectangle":  b.rectangle,
		"polyhedron": b.polyhedron,
		"prism":      b.prism,
		"box":        b.box,
		"rotate":     b.rotate,
		"solid":      b.solid,

		// kernel solids
		"solid_box":   b.solidBox,
		"cylinder":    b.cylinder,
		"solid_prism": b.solidPrism,

		// structure
		"defpart":  b.defpart,
		"part":     b.part,
		"place":    b.place,
		"group":    b.group,
		"assembly": b.group,

		// appearance and viewpoint
		"material": b.material,
		"camera":   b.camera,
		"light":    b.light,
		"limits":   b.limits,
		"horizon":  b.horizon,
	}
	for name, fn := range builtins {
		fn := fn
		display := strings.ReplaceAll(name, "_", "-")
		env.AddFunction(name, func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
			out, err := fn(args)
			if err != nil {
				if strings.HasPrefix(err.Error(), display+":") || strings.HasPrefix(err.Error(), display+" ") {
					return zygo.SexpNull, err
				}
				return zygo.SexpNull, fmt.Errorf("%s: %w", display, err)
			}
			return out, nil
		})
	}
}

// ---------------------------------------------------------------------------
// Values
// ---------------------------------------------------------------------------

// (point x y [z])
func (b *builder) point(args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 2 && len(args) != 3 {
		return zygo.SexpNull, fmt.Errorf("point requires 2 or 3 coordinates, got %d", len(args))
	}
	var c [3]float64
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("coordinate %d: %w", i+1, err)
		}
		c[i] = f
	}
	return &sexpPoint{p: geometry.Pt(c[0], c[1], c[2])}, nil
}

// (vec3 1 2 3)
func (b *builder) vec3(args []zygo.Sexp) (zygo.Sexp, error) {
	if err := needArgs("vec3", args, 3); err != nil {
		return zygo.SexpNull, err
	}
	x, err := toFloat64(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("x: %w", err)
	}
	y, err := toFloat64(args[1])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("y: %w", err)
	}
	z, err := toFloat64(args[2])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("z: %w", err)
	}
	return &sexpVec3{vec: geometry.Vec3{X: x, Y: y, Z: z}}, nil
}

// (angles yaw pitch roll), in degrees.
func (b *builder) angles(args []zygo.Sexp) (zygo.Sexp, error) {
	a, err := degrees("angles", args)
	if err != nil {
		return zygo.SexpNull, err
	}
	return &sexpAngles{a: a}, nil
}

func degrees(fn string, args []zygo.Sexp) (geometry.Angles, error) {
	if err := needArgs(fn, args, 3); err != nil {
		return geometry.Angles{}, err
	}
	var d [3]float64
	for i, name := range []string{"yaw", "pitch", "roll"} {
		f, err := toFloat64(args[i])
		if err != nil {
			return geometry.Angles{}, fmt.Errorf("%s: %w", name, err)
		}
		d[i] = f
	}
	return geometry.Degrees(d[0], d[1], d[2]), nil
}

// (plane p1 p2 p3) or (plane :normal (vec3 ...) :point (point ...))
func (b *builder) plane(args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	if len(pa.positional) == 3 {
		pts, err := toPoints(pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}
		pl, err := geometry.PlaneFromPoints(pts[0], pts[1], pts[2])
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPlane{pl: pl}, nil
	}

	nv, ok := pa.kw["normal"]
	if !ok {
		return zygo.SexpNull, fmt.Errorf("plane requires three points or :normal and :point")
	}
	n, err := toVec3(nv)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("normal: %w", err)
	}
	var p geometry.Point
	if v, ok := pa.kw["point"]; ok {
		if p, err = toPoint(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("point: %w", err)
		}
	}
	pl, err := geometry.NewPlane(n, p)
	if err != nil {
		return zygo.SexpNull, err
	}
	return &sexpPlane{pl: pl}, nil
}

// ---------------------------------------------------------------------------
// Structure
// ---------------------------------------------------------------------------

// (defpart "name" body [:material m])
func (b *builder) defpart(args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	if len(pa.positional) < 2 {
		return zygo.SexpNull, fmt.Errorf("defpart requires a name and a body expression")
	}
	partName, err := toString(pa.positional[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("name: %w", err)
	}
	var material string
	if v, ok := pa.kw["material"]; ok {
		if material, err = toMaterialName(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("material: %w", err)
		}
	}

	var node *scene.Node
	switch body := pa.positional[1].(type) {
	case *sexpFigure:
		if material != "" {
			body.fig.SetMaterial(material)
		}
		node = &scene.Node{
			ID:   scene.NewNodeID(b.path("figure", partName)),
			Kind: scene.NodeFigure,
			Name: partName,
			Data: scene.FigureData{Figure: body.fig},
		}
	case *sexpSolid:
		data := body.data
		if material != "" {
			data.Material = material
		}
		node = &scene.Node{
			ID:   scene.NewNodeID(b.path("solid", partName)),
			Kind: scene.NodeSolid,
			Name: partName,
			Data: data,
		}
	default:
		return zygo.SexpNull, fmt.Errorf("expected figure or solid expression, got %T", pa.positional[1])
	}
	if err := b.add(node); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpNodeRef{id: node.ID, name: partName}, nil
}

// (part "name")
func (b *builder) part(args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) < 1 {
		return zygo.SexpNull, fmt.Errorf("part requires a name argument")
	}
	partName, err := toString(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("name: %w", err)
	}
	n := b.s.Lookup(partName)
	if n == nil {
		return zygo.SexpNull, fmt.Errorf("no part named %q", partName)
	}
	return &sexpNodeRef{id: n.ID, name: partName}, nil
}

// (place ref :at (vec3 0 0 19) :rotate (angles 0 0 90))
func (b *builder) place(args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	if len(pa.positional) < 1 {
		return zygo.SexpNull, fmt.Errorf("place requires a part reference as first argument")
	}
	childID, err := b.nodeFor(pa.positional[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("part: %w", err)
	}

	td := scene.TransformData{}
	if v, ok := pa.kw["at"]; ok {
		vec, err := toVec3(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("at: %w", err)
		}
		td.Translation = &vec
	}
	if v, ok := pa.kw["rotate"]; ok {
		a, err := toAngles(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		td.Rotation = &a
	}

	var id scene.NodeID
	if child := b.s.Get(childID); child != nil && child.Name != "" {
		id = scene.NewNodeID(b.path("place", child.Name))
	} else {
		id = scene.AnonymousID("place")
	}
	node := &scene.Node{
		ID:       id,
		Kind:     scene.NodeTransform,
		Children: []scene.NodeID{childID},
		Data:     td,
	}
	b.s.AddNode(node)
	return &sexpNodeRef{id: id}, nil
}

// (group "name" child ...). Groups are the roots of the scene.
func (b *builder) group(args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) < 1 {
		return zygo.SexpNull, fmt.Errorf("group requires a name argument")
	}
	groupName, err := toString(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("name: %w", err)
	}

	var children []scene.NodeID
	for i := 1; i < len(args); i++ {
		id, err := b.nodeFor(args[i])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("child %d: %w", i, err)
		}
		children = append(children, id)
	}

	node := &scene.Node{
		ID:       scene.NewNodeID(b.path("group", groupName)),
		Kind:     scene.NodeGroup,
		Name:     groupName,
		Children: children,
		Data:     scene.GroupData{},
	}
	if err := b.add(node); err != nil {
		return zygo.SexpNull, err
	}
	b.s.AddRoot(node.ID)
	return &sexpNodeRef{id: node.ID, name: groupName}, nil
}

// figureValue wraps a generated shape for the interpreter.
func figureValue(f figure.Figure) zygo.Sexp {
	return &sexpFigure{fig: f}
}
