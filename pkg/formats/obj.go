package formats

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/bezier-teapot/pkg/bezier"
)

// WriteOBJ writes the mesh as a Wavefront OBJ object. Every patch range
// becomes a group; faces reference positions and normals by the same
// 1-based index.
func WriteOBJ(w io.Writer, m *bezier.Mesh, name string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %d vertices, %d triangles\n", m.VertexCount(), m.TriangleCount())
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(i)
		fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
	}
	for i := 0; i < m.VertexCount(); i++ {
		n := m.Normal(i)
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}

	ranges := m.Patches
	if len(ranges) == 0 {
		ranges = []bezier.PatchRange{{IndexCount: len(m.Indices)}}
	}
	for _, r := range ranges {
		if len(m.Patches) > 0 {
			fmt.Fprintf(bw, "g patch%d\n", r.Patch)
		}
		for k := r.FirstIndex; k+2 < r.FirstIndex+r.IndexCount; k += 3 {
			a, b, c := m.Indices[k]+1, m.Indices[k+1]+1, m.Indices[k+2]+1
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		}
	}
	return bw.Flush()
}
