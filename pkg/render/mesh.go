package render

import (
	"github.com/chazu/gengine/pkg/figure"
	"github.com/chazu/gengine/pkg/geometry"
	"github.com/chazu/gengine/pkg/kernel"
	"github.com/chazu/gengine/pkg/linalg"
)

// FigureMesh prints f, moves the faces by the world matrix and flattens
// them into buffers. Solid polygon figures are fan-triangulated; wire
// polygons are outlined. Line strips and loops become segment lists so
// every face can share one index buffer.
func FigureMesh(f figure.Figure, world linalg.Matrix) *kernel.Mesh {
	faces := f.Print()
	for i, face := range faces {
		faces[i] = face.Apply(world)
	}

	m := &kernel.Mesh{Material: f.Material()}
	switch f.Mode() {
	case figure.ModePolygon:
		if f.Solid() {
			m.Mode = ModeTriangles
			for _, face := range faces {
				fan(m, face)
			}
		} else {
			m.Mode = ModeLines
			for _, face := range faces {
				segments(m, face, true)
			}
		}
	case figure.ModeLineLoop:
		m.Mode = ModeLines
		for _, face := range faces {
			segments(m, face, true)
		}
	case figure.ModeLineStrip:
		m.Mode = ModeLines
		for _, face := range faces {
			segments(m, face, false)
		}
	case figure.ModeLines:
		m.Mode = ModeLines
		for _, face := range faces {
			pairs(m, face)
		}
	default:
		m.Mode = ModePoints
		for _, face := range faces {
			base := appendFace(m, face)
			for i := range face.Vertices {
				m.Indices = append(m.Indices, base+uint32(i))
			}
		}
	}
	return m
}

// appendFace writes the vertex data of face and returns the index of its
// first vertex.
func appendFace(m *kernel.Mesh, face geometry.Face) uint32 {
	base := uint32(m.VertexCount())
	n := face.Normal
	for _, v := range face.Vertices {
		m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
		m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		m.TexCoords = append(m.TexCoords, float32(v.S), float32(v.T))
	}
	return base
}

// fan triangulates a convex loop around its first vertex.
func fan(m *kernel.Mesh, face geometry.Face) {
	if face.Len() < 3 {
		return
	}
	base := appendFace(m, face)
	for i := 1; i+1 < face.Len(); i++ {
		m.Indices = append(m.Indices, base, base+uint32(i), base+uint32(i+1))
	}
}

// segments joins consecutive vertices, and the last to the first when
// closed.
func segments(m *kernel.Mesh, face geometry.Face, closed bool) {
	if face.Len() < 2 {
		return
	}
	base := appendFace(m, face)
	n := uint32(face.Len())
	for i := uint32(0); i+1 < n; i++ {
		m.Indices = append(m.Indices, base+i, base+i+1)
	}
	if closed && n > 2 {
		m.Indices = append(m.Indices, base+n-1, base)
	}
}

// pairs draws vertices two at a time; an odd vertex at the end is dropped.
func pairs(m *kernel.Mesh, face geometry.Face) {
	if face.Len() < 2 {
		return
	}
	base := appendFace(m, face)
	for i := uint32(0); i+1 < uint32(face.Len()); i += 2 {
		m.Indices = append(m.Indices, base+i, base+i+1)
	}
}
