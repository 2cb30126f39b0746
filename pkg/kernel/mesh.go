package kernel

// Mesh is the buffer set handed to the rasterizer.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, texcoords 2 per vertex (s,t).
// Indices are triangles for polygon meshes and point or segment lists
// for the other modes.
type Mesh struct {
	Vertices  []float32 `json:"vertices"`            // [x0,y0,z0, x1,y1,z1, ...]
	Normals   []float32 `json:"normals"`             // [nx0,ny0,nz0, ...]
	TexCoords []float32 `json:"texCoords,omitempty"` // [s0,t0, s1,t1, ...]
	Indices   []uint32  `json:"indices"`
	Mode      string    `json:"mode"`               // "polygon", "lines" or "points"
	PartName  string    `json:"partName"`           // which scene node this came from
	Material  string    `json:"material,omitempty"` // scene material name
}

// Mode names used by meshes that do not come from a figure.
const (
	ModeTriangles = "polygon"
)

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles. It is only meaningful for
// polygon meshes.
func (m *Mesh) TriangleCount() int {
	if m.Mode != "" && m.Mode != ModeTriangles {
		return 0
	}
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Bounds returns the axis-aligned box around the vertices. An empty mesh
// reports zero bounds.
func (m *Mesh) Bounds() (min, max [3]float32) {
	if m.IsEmpty() {
		return min, max
	}
	copy(min[:], m.Vertices[:3])
	copy(max[:], m.Vertices[:3])
	for i := 3; i+2 < len(m.Vertices); i += 3 {
		for j := 0; j < 3; j++ {
			v := m.Vertices[i+j]
			if v < min[j] {
				min[j] = v
			}
			if v > max[j] {
				max[j] = v
			}
		}
	}
	return min, max
}
