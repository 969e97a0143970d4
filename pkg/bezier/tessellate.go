package bezier

import (
	"errors"
	"fmt"

	"github.com/Faultbox/bezier-teapot/pkg/math"
)

// MaxResolution keeps (N+1)^2 vertex indices inside uint32.
const MaxResolution = 65535

// maxVertices is the number of vertices a uint32 index can address.
const maxVertices = 1 << 32

// PatchError reports a patch that could not be tessellated.
type PatchError struct {
	Index int
	Err   error
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("patch %d: %v", e.Index, e.Err)
}

func (e *PatchError) Unwrap() error {
	return e.Err
}

// Tessellate samples g on an (n+1)x(n+1) grid with analytic normals.
func Tessellate(g *Grid, n int) (*Mesh, error) {
	return TessellateWith(g, n, AnalyticNormals{})
}

// TessellateWith samples g on an (n+1)x(n+1) grid using est for normals.
// The result has (n+1)^2 vertices and 6*n^2 indices.
func TessellateWith(g *Grid, n int, est NormalEstimator) (*Mesh, error) {
	if err := checkResolution(n); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrMalformedGrid)
	}
	if est == nil {
		est = AnalyticNormals{}
	}

	side := n + 1
	vertexCount := side * side
	m := &Mesh{
		Positions: make([]float32, 0, 3*vertexCount),
		Normals:   make([]float32, 0, 3*vertexCount),
		Indices:   make([]uint32, 0, 6*n*n),
		Patches: []PatchRange{{
			VertexCount: vertexCount,
			IndexCount:  6 * n * n,
		}},
	}

	inv := 1 / float32(n)
	for i := 0; i <= n; i++ {
		u := float32(i) * inv
		if i == n {
			u = 1
		}
		for j := 0; j <= n; j++ {
			v := float32(j) * inv
			if j == n {
				v = 1
			}
			p := Evaluate(u, v, g)
			nrm := est.Normal(g, u, v)
			m.Positions = append(m.Positions, p.X, p.Y, p.Z)
			m.Normals = append(m.Normals, nrm.X, nrm.Y, nrm.Z)
		}
	}

	idx := func(i, j int) uint32 { return uint32(i*side + j) }
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Indices = append(m.Indices,
				idx(i, j), idx(i+1, j), idx(i, j+1),
				idx(i, j+1), idx(i+1, j), idx(i+1, j+1),
			)
		}
	}
	return m, nil
}

// TessellateGrids tessellates every grid into one shared mesh. Nil entries
// stand for patches the caller already rejected: they are skipped, and the
// remaining patches keep their slice index in PatchRange.Patch.
func TessellateGrids(grids []*Grid, n int, est NormalEstimator) (*Mesh, error) {
	if err := checkResolution(n); err != nil {
		return nil, err
	}
	if err := checkVertexTotal(grids, n); err != nil {
		return nil, err
	}
	mesh := &Mesh{}
	var errs []error
	for i, g := range grids {
		if g == nil {
			continue
		}
		pm, err := TessellateWith(g, n, est)
		if err != nil {
			errs = append(errs, &PatchError{Index: i, Err: err})
			continue
		}
		pm.Patches[0].Patch = i
		mesh.Append(pm)
	}
	return mesh, errors.Join(errs...)
}

// TessellatePatches validates raw control point rows and tessellates the
// valid patches into one shared mesh. Malformed patches are skipped and
// reported as *PatchError values joined into the returned error, so the
// mesh is usable even when err is non-nil. An invalid resolution aborts
// with a nil mesh.
func TessellatePatches(patches [][][]math.Vec3, n int, est NormalEstimator) (*Mesh, error) {
	if err := checkResolution(n); err != nil {
		return nil, err
	}
	grids := make([]*Grid, len(patches))
	var errs []error
	for i, rows := range patches {
		g, err := NewGrid(rows)
		if err != nil {
			errs = append(errs, &PatchError{Index: i, Err: err})
			continue
		}
		grids[i] = g
	}

	mesh, err := TessellateGrids(grids, n, est)
	if mesh == nil {
		return nil, err
	}
	return mesh, errors.Join(append(errs, err)...)
}

// checkVertexTotal rejects resolutions at which the patches together would
// need more vertices than a uint32 index can address.
func checkVertexTotal(grids []*Grid, n int) error {
	var count uint64
	for _, g := range grids {
		if g != nil {
			count++
		}
	}
	side := uint64(n) + 1
	if count*side*side > maxVertices {
		return fmt.Errorf("%w: %d patches at %d need %d vertices (max %d)",
			ErrResolutionOutOfRange, count, n, count*side*side, uint64(maxVertices))
	}
	return nil
}

func checkResolution(n int) error {
	if n < 1 || n > MaxResolution {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrResolutionOutOfRange, n, MaxResolution)
	}
	return nil
}
