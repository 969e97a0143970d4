package bezier

import "reflect"

// MeshCache memoizes the mesh for a set of grids. The mesh is rebuilt
// only after the grids, the resolution or the normal estimator change,
// so it can be queried every frame. It is not safe for concurrent use.
type MeshCache struct {
	grids      []*Grid
	resolution int
	normals    NormalEstimator

	mesh   *Mesh
	err    error
	dirty  bool
	builds int
}

// NewMeshCache creates a cache for grids at resolution n.
func NewMeshCache(grids []*Grid, n int, est NormalEstimator) *MeshCache {
	if est == nil {
		est = AnalyticNormals{}
	}
	return &MeshCache{
		grids:      grids,
		resolution: n,
		normals:    est,
		dirty:      true,
	}
}

// SetGrids replaces the patch set.
func (c *MeshCache) SetGrids(grids []*Grid) {
	c.grids = grids
	c.dirty = true
}

// SetResolution changes the resolution; setting the current value is a no-op.
func (c *MeshCache) SetResolution(n int) {
	if n == c.resolution {
		return
	}
	c.resolution = n
	c.dirty = true
}

// SetNormals changes the normal estimator; setting an equal value is a no-op.
func (c *MeshCache) SetNormals(est NormalEstimator) {
	if est == nil {
		est = AnalyticNormals{}
	}
	if sameEstimator(est, c.normals) {
		return
	}
	c.normals = est
	c.dirty = true
}

// Resolution returns the current resolution.
func (c *MeshCache) Resolution() int {
	return c.resolution
}

// Normals returns the current normal estimator.
func (c *MeshCache) Normals() NormalEstimator {
	return c.normals
}

// Changed reports whether the next call to Mesh will rebuild.
func (c *MeshCache) Changed() bool {
	return c.dirty
}

// Builds returns how many times the mesh has been rebuilt.
func (c *MeshCache) Builds() int {
	return c.builds
}

// Mesh returns the current mesh, rebuilding it if an input changed. The
// error has the same meaning as for TessellateGrids and is cached along
// with the mesh.
func (c *MeshCache) Mesh() (*Mesh, error) {
	if c.dirty {
		c.mesh, c.err = TessellateGrids(c.grids, c.resolution, c.normals)
		c.dirty = false
		c.builds++
	}
	return c.mesh, c.err
}

func sameEstimator(a, b NormalEstimator) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
