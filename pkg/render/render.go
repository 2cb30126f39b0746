// Package render walks a scene and flattens it into the mesh buffers the
// rasterizer consumes. Transform nodes are composed on a stack of 4x4
// homogeneous matrices; figures are printed and moved into world space,
// solids are built and meshed by a kernel. One mesh is produced per
// drawable node, in depth-first order.
package render

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/gengine/pkg/geometry"
	"github.com/chazu/gengine/pkg/kernel"
	"github.com/chazu/gengine/pkg/linalg"
	"github.com/chazu/gengine/pkg/scene"
)

// Primitive modes written to kernel.Mesh.Mode. Figures are reduced to
// one of these: filled polygons become triangles, every line mode becomes
// a list of segments.
const (
	ModeTriangles = kernel.ModeTriangles
	ModeLines     = "lines"
	ModePoints    = "points"
)

// HorizonPart is the part name of the horizon mesh.
const HorizonPart = "horizon"

// Renderer turns scenes into meshes. It is safe for concurrent use as long
// as the kernel is.
type Renderer struct {
	kernel  kernel.Kernel
	logger  *zap.Logger
	workers int
	horizon bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithWorkers bounds how many nodes are meshed at once. Non-positive
// values mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Renderer) { r.workers = n }
}

// WithHorizon appends the scene's horizon sphere as the last mesh.
func WithHorizon(on bool) Option {
	return func(r *Renderer) { r.horizon = on }
}

// New returns a Renderer that meshes solids with k.
func New(k kernel.Kernel, opts ...Option) *Renderer {
	r := &Renderer{kernel: k, logger: zap.NewNop()}
	for _, o := range opts {
		o(r)
	}
	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	return r
}

// job is one drawable node with the world matrix in force above it.
type job struct {
	node  *scene.Node
	world linalg.Matrix
}

// Render walks the scene and returns one mesh per drawable node. It is
// read-only and never mutates the scene. Meshes are built in parallel but
// returned in traversal order.
func (r *Renderer) Render(ctx context.Context, s *scene.Scene) ([]*kernel.Mesh, error) {
	if s == nil {
		return nil, nil
	}

	var jobs []job
	ms := newMatrixStack()
	for _, rootID := range s.Roots {
		root := s.Get(rootID)
		if root == nil {
			continue
		}
		if err := collect(s, root, ms, &jobs); err != nil {
			return nil, fmt.Errorf("render: error walking root %s: %w", rootID.Short(), err)
		}
	}

	meshes := make([]*kernel.Mesh, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := r.mesh(j)
			if err != nil {
				return err
			}
			meshes[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if r.horizon {
		h := s.Horizon()
		h.SetSolid(true)
		m := FigureMesh(h, linalg.Identity(4))
		m.PartName = HorizonPart
		meshes = append(meshes, m)
	}

	r.logger.Debug("scene rendered",
		zap.Int("nodes", s.NodeCount()),
		zap.Int("meshes", len(meshes)),
		zap.Uint64("version", s.Version))
	return meshes, nil
}

// collect appends the drawable nodes under n to jobs, depth first.
func collect(s *scene.Scene, n *scene.Node, ms *matrixStack, jobs *[]job) error {
	switch n.Kind {
	case scene.NodeFigure, scene.NodeSolid:
		*jobs = append(*jobs, job{node: n, world: ms.top()})
		return nil

	case scene.NodeTransform:
		td, ok := n.Data.(scene.TransformData)
		if !ok {
			return fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
		}
		ms.push(localMatrix(td))
		defer ms.pop()
		return collectChildren(s, n, ms, jobs)

	case scene.NodeGroup:
		return collectChildren(s, n, ms, jobs)

	default:
		return fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

func collectChildren(s *scene.Scene, n *scene.Node, ms *matrixStack, jobs *[]job) error {
	for _, child := range s.Children(n) {
		if err := collect(s, child, ms, jobs); err != nil {
			return err
		}
	}
	return nil
}

// mesh builds the buffers for one drawable node.
func (r *Renderer) mesh(j job) (*kernel.Mesh, error) {
	n := j.node
	var m *kernel.Mesh

	switch data := n.Data.(type) {
	case scene.FigureData:
		if data.Figure == nil {
			return nil, fmt.Errorf("figure node %s carries no figure", n.ID.Short())
		}
		m = FigureMesh(data.Figure, j.world)

	case scene.SolidData:
		solid, err := r.solid(data)
		if err != nil {
			return nil, fmt.Errorf("render: node %s: %w", n.ID.Short(), err)
		}
		solid = r.kernel.Rotate(solid, geometry.AnglesFrom(j.world))
		if t := geometry.TranslationOf(j.world); t != (geometry.Vec3{}) {
			solid = r.kernel.Translate(solid, t.X, t.Y, t.Z)
		}
		m, err = r.kernel.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("render: ToMesh failed for node %s: %w", n.ID.Short(), err)
		}
		m.Material = data.Material

	default:
		return nil, fmt.Errorf("node %s has unsupported data type %T", n.ID.Short(), n.Data)
	}

	// Prefer the node's Name, fall back to short ID.
	if n.Name != "" {
		m.PartName = n.Name
	} else {
		m.PartName = n.ID.Short()
	}
	r.logger.Debug("node meshed",
		zap.String("part", m.PartName),
		zap.String("mode", m.Mode),
		zap.Int("vertices", m.VertexCount()))
	return m, nil
}

func (r *Renderer) solid(d scene.SolidData) (kernel.Solid, error) {
	switch d.Shape {
	case scene.SolidBox:
		return r.kernel.Box(d.Size.X, d.Size.Y, d.Size.Z), nil
	case scene.SolidCylinder:
		return r.kernel.Cylinder(d.Height, d.Radius, 32), nil
	case scene.SolidPrism:
		return r.kernel.Prism(d.Sides, d.Radius, d.Height)
	default:
		return nil, fmt.Errorf("unknown solid shape %v", d.Shape)
	}
}

// localMatrix is T·R: children are rotated about their own origin, then
// moved.
func localMatrix(td scene.TransformData) linalg.Matrix {
	var t geometry.Vec3
	var a geometry.Angles
	if td.Translation != nil {
		t = *td.Translation
	}
	if td.Rotation != nil {
		a = *td.Rotation
	}
	return geometry.Homogeneous(a.Matrix(), t)
}
