package textmesh

import (
	"fmt"
	gomath "math"
)

// GlyphMesh is the indexed geometry of one glyph. Face indices are local to
// the glyph. Normals match Vertices one to one.
type GlyphMesh struct {
	Vertices [][3]float32
	Normals  [][3]float32
	Faces    [][3]uint32
}

// VertexCount returns the number of vertices.
func (g *GlyphMesh) VertexCount() int {
	return len(g.Vertices)
}

// Bounds2D returns the min/max x and y over all vertices. An empty mesh has
// zero bounds.
func (g *GlyphMesh) Bounds2D() (xmin, xmax, ymin, ymax float32) {
	if len(g.Vertices) == 0 {
		return 0, 0, 0, 0
	}
	xmin, ymin = gomath.MaxFloat32, gomath.MaxFloat32
	xmax, ymax = -gomath.MaxFloat32, -gomath.MaxFloat32
	for _, v := range g.Vertices {
		xmin = min(xmin, v[0])
		xmax = max(xmax, v[0])
		ymin = min(ymin, v[1])
		ymax = max(ymax, v[1])
	}
	return xmin, xmax, ymin, ymax
}

// MeshData holds the flat buffers of a generated text mesh, ready for GPU
// upload.
type MeshData struct {
	Vertices [][3]float32
	Normals  [][3]float32
	Indices  []uint32
	UVs      [][2]float32
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Size returns the extent along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// TriangleCount returns the number of triangles.
func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the bounding box of all vertices. An empty mesh has zero
// bounds.
func (m *MeshData) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for _, v := range m.Vertices {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], v[i])
			b.Max[i] = max(b.Max[i], v[i])
		}
	}
	return b
}

// Validate checks that the buffers have matching lengths and that the
// indices form complete triangles inside the vertex buffer.
func (m *MeshData) Validate() error {
	n := len(m.Vertices)
	if len(m.Normals) != n {
		return fmt.Errorf("%w: %d normals for %d vertices", ErrInvalidMesh, len(m.Normals), n)
	}
	if len(m.UVs) != n {
		return fmt.Errorf("%w: %d uvs for %d vertices", ErrInvalidMesh, len(m.UVs), n)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrInvalidMesh, idx, i, n)
		}
	}
	return nil
}
