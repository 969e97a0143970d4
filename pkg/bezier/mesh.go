package bezier

import (
	"github.com/Faultbox/bezier-teapot/pkg/math"
)

// Mesh holds flat vertex and index buffers ready for upload.
type Mesh struct {
	Positions []float32 // 3 floats per vertex
	Normals   []float32 // 3 floats per vertex
	Indices   []uint32  // triangle triples

	// Patches records where each tessellated patch lives in the buffers.
	Patches []PatchRange
}

// PatchRange locates one patch inside a Mesh.
type PatchRange struct {
	Patch       int // index of the patch in the source list
	FirstVertex int
	VertexCount int
	FirstIndex  int
	IndexCount  int
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns vertex i.
func (m *Mesh) Position(i int) math.Vec3 {
	return math.Vec3{X: m.Positions[3*i], Y: m.Positions[3*i+1], Z: m.Positions[3*i+2]}
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) math.Vec3 {
	return math.Vec3{X: m.Normals[3*i], Y: m.Normals[3*i+1], Z: m.Normals[3*i+2]}
}

// Triangle returns the vertex indices of triangle t.
func (m *Mesh) Triangle(t int) [3]uint32 {
	return [3]uint32{m.Indices[3*t], m.Indices[3*t+1], m.Indices[3*t+2]}
}

// Append concatenates other onto m. Indices of other are offset by the
// number of vertices already in m.
func (m *Mesh) Append(other *Mesh) {
	base := uint32(m.VertexCount())
	firstIndex := len(m.Indices)

	m.Positions = append(m.Positions, other.Positions...)
	m.Normals = append(m.Normals, other.Normals...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
	for _, r := range other.Patches {
		r.FirstVertex += int(base)
		r.FirstIndex += firstIndex
		m.Patches = append(m.Patches, r)
	}
}

// Bounds returns the bounding box of all vertices. An empty mesh has a
// zero box.
func (m *Mesh) Bounds() Bounds {
	if m.VertexCount() == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Position(0), Max: m.Position(0)}
	for i := 1; i < m.VertexCount(); i++ {
		p := m.Position(i)
		b.Min = math.Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	}
	return b
}
