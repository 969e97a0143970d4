package bezier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/bezier-teapot/pkg/math"
)

func TestTessellateFlatScenario(t *testing.T) {
	g := flatGrid(t)
	m, err := Tessellate(g, 1)
	require.NoError(t, err)

	require.Equal(t, 4, m.VertexCount())
	require.Len(t, m.Indices, 6)
	assert.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, []uint32{0, 2, 1, 1, 2, 3}, m.Indices)

	// Vertex (i, j) sits at index i*2 + j.
	assert.Equal(t, math.Vec3{}, m.Position(0))
	assert.Equal(t, math.Vec3{Y: 3}, m.Position(1))
	assert.Equal(t, math.Vec3{X: 3}, m.Position(2))
	assert.Equal(t, math.Vec3{X: 3, Y: 3}, m.Position(3))

	// The two triangles tile the square without overlap.
	var area float32
	for tri := 0; tri < m.TriangleCount(); tri++ {
		n := faceNormal(m, tri)
		assert.Greater(t, n.Z, float32(0), "triangle %d should face +Z", tri)
		area += n.Length() / 2
	}
	assert.InDelta(t, 9, area, 1e-5)

	for i := 0; i < m.VertexCount(); i++ {
		assert.Equal(t, math.Vec3{Z: 1}, m.Normal(i))
	}
}

func TestTessellateSizes(t *testing.T) {
	for name, g := range testGrids(t) {
		for _, n := range []int{1, 2, 3, 7, 16} {
			m, err := Tessellate(g, n)
			require.NoError(t, err, "%s N=%d", name, n)

			assert.Equal(t, (n+1)*(n+1), m.VertexCount(), "%s N=%d vertices", name, n)
			assert.Len(t, m.Normals, len(m.Positions), "%s N=%d normals", name, n)
			assert.Len(t, m.Indices, 6*n*n, "%s N=%d indices", name, n)
			assert.Equal(t, 2*n*n, m.TriangleCount())
			for _, idx := range m.Indices {
				if int(idx) >= m.VertexCount() {
					t.Fatalf("%s N=%d: index %d out of range", name, n, idx)
				}
			}
			require.Len(t, m.Patches, 1)
			assert.Equal(t, PatchRange{VertexCount: (n + 1) * (n + 1), IndexCount: 6 * n * n}, m.Patches[0])
		}
	}
}

func TestTessellateSamplesGrid(t *testing.T) {
	g := skewGrid(t)
	const n = 4
	m, err := Tessellate(g, n)
	require.NoError(t, err)

	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			u, v := float32(i)/n, float32(j)/n
			idx := i*(n+1) + j
			assert.True(t, m.Position(idx).ApproxEqual(Evaluate(u, v, g), 1e-6), "vertex (%d,%d)", i, j)
			assert.Equal(t, Normal(u, v, g), m.Normal(idx), "normal (%d,%d)", i, j)
		}
	}
}

func TestWindingMatchesNormals(t *testing.T) {
	for _, name := range []string{"dome", "skew", "teapot", "flat"} {
		g := testGrids(t)[name]
		m, err := Tessellate(g, 10)
		require.NoError(t, err)

		for tri := 0; tri < m.TriangleCount(); tri++ {
			face := faceNormal(m, tri)
			var avg math.Vec3
			for _, idx := range m.Triangle(tri) {
				avg = avg.Add(m.Normal(int(idx)))
			}
			if face.Dot(avg) <= 0 {
				t.Errorf("%s: triangle %d winding disagrees with vertex normals", name, tri)
			}
		}
	}
}

func TestTessellateRejectsResolution(t *testing.T) {
	g := flatGrid(t)
	for _, n := range []int{0, -1, MaxResolution + 1} {
		m, err := Tessellate(g, n)
		assert.Nil(t, m)
		assert.True(t, errors.Is(err, ErrResolutionOutOfRange), "N=%d: got %v", n, err)
	}

	_, err := TessellatePatches(nil, 0, nil)
	assert.True(t, errors.Is(err, ErrResolutionOutOfRange))
}

func TestTessellateNilGrid(t *testing.T) {
	_, err := Tessellate(nil, 2)
	assert.True(t, errors.Is(err, ErrMalformedGrid))
}

func TestNewGridRejectsMalformed(t *testing.T) {
	p := math.Vec3{}
	tests := map[string][][]math.Vec3{
		"nil":          nil,
		"empty rows":   {{}, {}},
		"ragged":       {{p, p, p}, {p, p}},
		"single row":   {{p, p, p, p}},
		"single col":   {{p}, {p}, {p}},
		"ragged later": {{p, p}, {p, p}, {p, p, p}},
	}
	for name, rows := range tests {
		t.Run(name, func(t *testing.T) {
			g, err := NewGrid(rows)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, ErrMalformedGrid), "got %v", err)
		})
	}
}

func TestNewGridCopiesInput(t *testing.T) {
	rows := [][]math.Vec3{{{X: 1}, {X: 2}}, {{X: 3}, {X: 4}}}
	g, err := NewGrid(rows)
	require.NoError(t, err)
	rows[0][0] = math.Vec3{X: 100}
	assert.Equal(t, math.Vec3{X: 1}, g.Point(0, 0))

	n, m := g.Degree()
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, m)
}

func TestTessellatePatchesOffsetsAndSkips(t *testing.T) {
	flat := [][]math.Vec3{
		{{X: 0, Y: 0}, {X: 0, Y: 1}},
		{{X: 1, Y: 0}, {X: 1, Y: 1}},
	}
	shifted := [][]math.Vec3{
		{{X: 5, Y: 0}, {X: 5, Y: 1}},
		{{X: 6, Y: 0}, {X: 6, Y: 1}},
	}
	ragged := [][]math.Vec3{{{}, {}}, {{}}}

	const n = 3
	m, err := TessellatePatches([][][]math.Vec3{flat, ragged, shifted}, n, nil)
	require.Error(t, err)
	require.NotNil(t, m)

	var perr *PatchError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Index)
	assert.True(t, errors.Is(err, ErrMalformedGrid))

	perPatch := (n + 1) * (n + 1)
	assert.Equal(t, 2*perPatch, m.VertexCount())
	assert.Len(t, m.Indices, 2*6*n*n)

	second := m.Indices[6*n*n:]
	for _, idx := range second {
		assert.GreaterOrEqual(t, int(idx), perPatch, "second patch index must be offset")
		assert.Less(t, int(idx), 2*perPatch)
	}

	require.Len(t, m.Patches, 2)
	assert.Equal(t, PatchRange{Patch: 0, FirstVertex: 0, VertexCount: perPatch, FirstIndex: 0, IndexCount: 6 * n * n}, m.Patches[0])
	assert.Equal(t, PatchRange{Patch: 2, FirstVertex: perPatch, VertexCount: perPatch, FirstIndex: 6 * n * n, IndexCount: 6 * n * n}, m.Patches[1])
	assert.Equal(t, math.Vec3{X: 5}, m.Position(perPatch))
}

func TestTessellatePatchesAllValid(t *testing.T) {
	g := [][]math.Vec3{
		{{X: 0, Y: 0}, {X: 0, Y: 1}},
		{{X: 1, Y: 0}, {X: 1, Y: 1}},
	}
	m, err := TessellatePatches([][][]math.Vec3{g, g, g}, 2, FixedNormals{Direction: math.Vec3{Z: 1}})
	require.NoError(t, err)
	assert.Equal(t, 27, m.VertexCount())
	assert.Equal(t, math.Vec3{Z: 1}, m.Normal(26))
}

func TestTessellateGridsSkipsNil(t *testing.T) {
	m, err := TessellateGrids([]*Grid{nil, flatGrid(t), nil, flatGrid(t)}, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 18, m.VertexCount())
	require.Len(t, m.Patches, 2)
	assert.Equal(t, 1, m.Patches[0].Patch)
	assert.Equal(t, 3, m.Patches[1].Patch)
	assert.Equal(t, 9, m.Patches[1].FirstVertex)
}

func TestTessellateGridsVertexLimit(t *testing.T) {
	grids := []*Grid{flatGrid(t), nil, flatGrid(t)}

	m, err := TessellateGrids(grids, MaxResolution, nil)
	assert.ErrorIs(t, err, ErrResolutionOutOfRange)
	assert.Nil(t, m)

	g := [][]math.Vec3{
		{{X: 0, Y: 0}, {X: 0, Y: 1}},
		{{X: 1, Y: 0}, {X: 1, Y: 1}},
	}
	m, err = TessellatePatches([][][]math.Vec3{g, g}, MaxResolution, nil)
	assert.ErrorIs(t, err, ErrResolutionOutOfRange)
	assert.Nil(t, m)
}

func TestMeshBounds(t *testing.T) {
	m, err := Tessellate(domeGrid(t), 8)
	require.NoError(t, err)
	b := m.Bounds()
	assert.Equal(t, float32(0), b.Min.X)
	assert.Equal(t, float32(3), b.Max.X)
	assert.Equal(t, float32(3), b.Max.Y)
	assert.Greater(t, b.Max.Z, float32(0.5))
	assert.True(t, b.Center().ApproxEqual(b.Min.Add(b.Size().Scale(0.5)), 1e-6))

	assert.Equal(t, Bounds{}, (&Mesh{}).Bounds())
}

func faceNormal(m *Mesh, tri int) math.Vec3 {
	idx := m.Triangle(tri)
	a, b, c := m.Position(int(idx[0])), m.Position(int(idx[1])), m.Position(int(idx[2]))
	return b.Sub(a).Cross(c.Sub(a))
}
