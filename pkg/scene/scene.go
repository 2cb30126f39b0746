// Package scene defines the scene graph: figures and kernel solids arranged
// under transforms and groups, plus the camera, lights and materials that
// the rasterizer needs to draw them. A scene is produced by one evaluation
// and is not mutated afterwards.
package scene

import (
	"errors"
	"fmt"

	"github.com/chazu/gengine/pkg/figure"
	"github.com/chazu/gengine/pkg/geometry"
)

// DefaultExtent is the half-width of the default scene limits.
const DefaultExtent = 100

var (
	ErrDuplicateMaterial = errors.New("scene: material already defined")
	ErrNoLightSlot       = errors.New("scene: no free light slot")
)

// Limits is the axis-aligned box the scene lives in.
type Limits struct {
	Min geometry.Point `json:"min"`
	Max geometry.Point `json:"max"`
}

// Diagonal returns the length of the box diagonal; the horizon sphere uses
// it as its radius so it encloses every figure.
func (l Limits) Diagonal() float64 {
	return geometry.Distance(l.Min, l.Max)
}

// Center returns the midpoint of the box.
func (l Limits) Center() geometry.Point {
	m := geometry.Midpoint(l.Min, l.Max)
	return geometry.Pt(m.X, m.Y, m.Z)
}

// Contains reports whether p lies inside the box, borders included.
func (l Limits) Contains(p geometry.Point) bool {
	return p.X >= l.Min.X && p.X <= l.Max.X &&
		p.Y >= l.Min.Y && p.Y <= l.Max.Y &&
		p.Z >= l.Min.Z && p.Z <= l.Max.Z
}

// Scene is the top-level data structure produced by evaluating a script.
type Scene struct {
	Nodes     map[NodeID]*Node     `json:"nodes"`
	Roots     []NodeID             `json:"roots"`
	NameIndex map[string]NodeID    `json:"name_index"`
	Limits    Limits               `json:"limits"`
	Camera    *Camera              `json:"camera"`
	Lights    []*Light             `json:"lights,omitempty"`
	Materials map[string]*Material `json:"materials,omitempty"`
	Defaults  MaterialDefaults     `json:"defaults"`
	// HorizonMaterial names the material of the horizon sphere; empty
	// means plain black.
	HorizonMaterial string `json:"horizon_material,omitempty"`
	Version         uint64 `json:"version"`
}

// New creates an empty scene with default limits, a camera at the origin
// and default material settings.
func New() *Scene {
	return &Scene{
		Nodes:     make(map[NodeID]*Node),
		NameIndex: make(map[string]NodeID),
		Limits: Limits{
			Min: geometry.Pt(-DefaultExtent, -DefaultExtent, -DefaultExtent),
			Max: geometry.Pt(DefaultExtent, DefaultExtent, DefaultExtent),
		},
		Camera:    NewCamera(geometry.Point{}, geometry.Angles{}),
		Materials: make(map[string]*Material),
		Defaults:  DefaultMaterialDefaults(),
	}
}

// AddNode adds a node to the scene. It does not check for duplicates.
func (s *Scene) AddNode(n *Node) {
	s.Nodes[n.ID] = n
	if n.Name != "" {
		s.NameIndex[n.Name] = n.ID
	}
}

// AddRoot registers a node ID as a root of the scene.
func (s *Scene) AddRoot(id NodeID) {
	for _, r := range s.Roots {
		if r == id {
			return
		}
	}
	s.Roots = append(s.Roots, id)
}

// Lookup returns the node with the given user-assigned name, or nil.
func (s *Scene) Lookup(name string) *Node {
	id, ok := s.NameIndex[name]
	if !ok {
		return nil
	}
	return s.Nodes[id]
}

// MustLookup returns the node with the given name, or panics.
func (s *Scene) MustLookup(name string) *Node {
	n := s.Lookup(name)
	if n == nil {
		panic(fmt.Sprintf("scene: no node named %q", name))
	}
	return n
}

// Get returns the node with the given ID, or nil.
func (s *Scene) Get(id NodeID) *Node {
	return s.Nodes[id]
}

// Children returns the child nodes of n that exist, in order.
func (s *Scene) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, cid := range n.Children {
		if c := s.Nodes[cid]; c != nil {
			children = append(children, c)
		}
	}
	return children
}

// NodeCount returns the total number of nodes.
func (s *Scene) NodeCount() int {
	return len(s.Nodes)
}

// OfKind returns every node of the given kind, in no particular order.
func (s *Scene) OfKind(kind NodeKind) []*Node {
	var out []*Node
	for _, n := range s.Nodes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// AddMaterial registers m under its name.
func (s *Scene) AddMaterial(m *Material) error {
	if _, ok := s.Materials[m.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateMaterial, m.Name)
	}
	s.Materials[m.Name] = m
	return nil
}

// Material returns the named material, or nil.
func (s *Scene) Material(name string) *Material {
	return s.Materials[name]
}

// AddLight assigns l the lowest free slot and returns it. At most MaxLights
// lights fit in one scene.
func (s *Scene) AddLight(l *Light) (int, error) {
	if len(s.Lights) >= MaxLights {
		return -1, fmt.Errorf("%w: %d in use", ErrNoLightSlot, MaxLights)
	}
	l.Slot = len(s.Lights)
	s.Lights = append(s.Lights, l)
	return l.Slot, nil
}

// Horizon returns the sphere drawn behind everything else: centred on the
// scene limits with the limits' diagonal as radius.
func (s *Scene) Horizon() *figure.Shape {
	h := figure.NewHorizon(s.Limits.Center(), s.Limits.Diagonal())
	h.SetMaterial(s.HorizonMaterial)
	return h
}
