package scene

import (
	"github.com/chazu/gengine/pkg/figure"
	"github.com/chazu/gengine/pkg/geometry"
)

// NodeKind enumerates the types of nodes in the scene graph.
type NodeKind int

const (
	NodeFigure    NodeKind = iota // faces generated by package figure
	NodeTransform                 // translation and rotation of children (place)
	NodeGroup                     // logical grouping
	NodeSolid                     // solid meshed by a kernel
)

func (k NodeKind) String() string {
	switch k {
	case NodeFigure:
		return "figure"
	case NodeTransform:
		return "transform"
	case NodeGroup:
		return "group"
	case NodeSolid:
		return "solid"
	default:
		return "unknown"
	}
}

// Node is the fundamental element of the scene graph.
type Node struct {
	ID       NodeID   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Children []NodeID `json:"children,omitempty"`
	Data     NodeData `json:"data"`
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData()
}

// FigureData carries a generated figure. Rotation lives on the figure
// itself; placement comes from enclosing transform nodes.
type FigureData struct {
	Figure figure.Figure `json:"-"`
}

func (FigureData) nodeData() {}

// TransformData moves its children. Rotation is applied first, about the
// local origin, then translation.
type TransformData struct {
	Translation *geometry.Vec3   `json:"translation,omitempty"`
	Rotation    *geometry.Angles `json:"rotation,omitempty"` // radians
}

func (TransformData) nodeData() {}

// GroupData groups children without moving them.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}

// SolidShape distinguishes kernel primitives.
type SolidShape int

const (
	SolidBox      SolidShape = iota // Size is X, Y, Z extents from the min corner
	SolidCylinder                   // Radius and Height, centred on the origin
	SolidPrism                      // Sides, Radius and Height, base on z = 0
)

func (s SolidShape) String() string {
	switch s {
	case SolidBox:
		return "box"
	case SolidCylinder:
		return "cylinder"
	case SolidPrism:
		return "prism"
	default:
		return "unknown"
	}
}

// SolidData describes a kernel primitive.
type SolidData struct {
	Shape    SolidShape    `json:"shape"`
	Size     geometry.Vec3 `json:"size,omitempty"`
	Radius   float64       `json:"radius,omitempty"`
	Height   float64       `json:"height,omitempty"`
	Sides    int           `json:"sides,omitempty"`
	Material string        `json:"material,omitempty"`
}

func (SolidData) nodeData() {}
