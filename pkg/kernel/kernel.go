// Package kernel defines the solid kernel interface used for the volumetric
// parts of a scene. Implementations (sdfx) provide primitives, boolean
// operations and meshing behind this interface so the renderer never sees
// a backend type.
package kernel

import "github.com/chazu/gengine/pkg/geometry"

// Solid is an opaque handle to a kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract solid kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid
	// Prism is a regular prism with the given number of sides, standing
	// on z = 0 with its axis along +Z.
	Prism(sides int, radius, height float64) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	// Rotate applies roll·pitch·yaw (radians), the same composition
	// figures use.
	Rotate(s Solid, a geometry.Angles) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
