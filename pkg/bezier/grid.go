package bezier

import (
	"errors"
	"fmt"

	"github.com/Faultbox/bezier-teapot/pkg/math"
)

// Grid errors.
var (
	ErrMalformedGrid        = errors.New("malformed control grid")
	ErrResolutionOutOfRange = errors.New("tessellation resolution out of range")
)

// Grid is an immutable rectangular grid of control points.
// Rows run along u, columns along v.
type Grid struct {
	points [][]math.Vec3
}

// NewGrid validates rows and copies them into a Grid. The grid must have
// at least two rows and two columns, and every row the same length.
func NewGrid(rows [][]math.Vec3) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedGrid)
	}
	cols := len(rows[0])
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d points, row 0 has %d", ErrMalformedGrid, i, len(row), cols)
		}
	}
	if cols == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrMalformedGrid)
	}
	if len(rows) < 2 || cols < 2 {
		return nil, fmt.Errorf("%w: %dx%d grid needs degree >= 1 in both directions", ErrMalformedGrid, len(rows), cols)
	}

	points := make([][]math.Vec3, len(rows))
	for i, row := range rows {
		points[i] = append([]math.Vec3(nil), row...)
	}
	return &Grid{points: points}, nil
}

// GridFromArrays builds a Grid from [x, y, z] triples as found in patch files.
func GridFromArrays(rows [][][3]float32) (*Grid, error) {
	vrows := make([][]math.Vec3, len(rows))
	for i, row := range rows {
		vrows[i] = make([]math.Vec3, len(row))
		for j, p := range row {
			vrows[i][j] = math.Vec3FromArray(p)
		}
	}
	return NewGrid(vrows)
}

// Degree returns the polynomial degree along u and along v.
func (g *Grid) Degree() (n, m int) {
	return len(g.points) - 1, len(g.points[0]) - 1
}

// Size returns the number of rows and columns.
func (g *Grid) Size() (rows, cols int) {
	return len(g.points), len(g.points[0])
}

// Point returns control point P[i][j].
func (g *Grid) Point(i, j int) math.Vec3 {
	return g.points[i][j]
}

// Corners returns P[0][0], P[n][0], P[0][m] and P[n][m].
func (g *Grid) Corners() [4]math.Vec3 {
	n, m := g.Degree()
	return [4]math.Vec3{g.points[0][0], g.points[n][0], g.points[0][m], g.points[n][m]}
}
