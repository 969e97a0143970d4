package bezier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/bezier-teapot/pkg/math"
)

// flatGrid is the 4x4 planar grid with P[i][j] = (i, j, 0).
func flatGrid(t *testing.T) *Grid {
	t.Helper()
	rows := make([][]math.Vec3, 4)
	for i := range rows {
		rows[i] = make([]math.Vec3, 4)
		for j := range rows[i] {
			rows[i][j] = math.Vec3{X: float32(i), Y: float32(j)}
		}
	}
	g, err := NewGrid(rows)
	require.NoError(t, err)
	return g
}

// domeGrid is a smooth bicubic bump over [0,3]x[0,3].
func domeGrid(t *testing.T) *Grid {
	t.Helper()
	heights := [4][4]float32{
		{0, 0.5, 0.5, 0},
		{0.5, 1, 1, 0.5},
		{0.5, 1, 1.2, 0.5},
		{0, 0.5, 0.5, 0.1},
	}
	rows := make([][]math.Vec3, 4)
	for i := range rows {
		rows[i] = make([]math.Vec3, 4)
		for j := range rows[i] {
			rows[i][j] = math.Vec3{X: float32(i), Y: float32(j), Z: heights[i][j]}
		}
	}
	g, err := NewGrid(rows)
	require.NoError(t, err)
	return g
}

// skewGrid has different degrees along u (2) and v (4).
func skewGrid(t *testing.T) *Grid {
	t.Helper()
	rows := make([][]math.Vec3, 3)
	for i := range rows {
		rows[i] = make([]math.Vec3, 5)
		for j := range rows[i] {
			rows[i][j] = math.Vec3{
				X: float32(i) * 1.5,
				Y: float32(j) + 0.2*float32(i*j),
				Z: float32((i+1)*(j%3)) * 0.3,
			}
		}
	}
	g, err := NewGrid(rows)
	require.NoError(t, err)
	return g
}

// teapotRim is the first patch of the Newell teapot.
func teapotRim(t *testing.T) *Grid {
	t.Helper()
	g, err := GridFromArrays([][][3]float32{
		{{1.4, 2.25, 0.0}, {1.3375, 2.38125, 0.0}, {1.4375, 2.38125, 0.0}, {1.5, 2.25, 0.0}},
		{{1.4, 2.25, 0.784}, {1.3375, 2.38125, 0.749}, {1.4375, 2.38125, 0.805}, {1.5, 2.25, 0.84}},
		{{0.784, 2.25, 1.4}, {0.749, 2.38125, 1.3375}, {0.805, 2.38125, 1.4375}, {0.84, 2.25, 1.5}},
		{{0.0, 2.25, 1.4}, {0.0, 2.38125, 1.3375}, {0.0, 2.38125, 1.4375}, {0.0, 2.25, 1.5}},
	})
	require.NoError(t, err)
	return g
}

// poleGrid collapses the whole first row into one point, like the top of
// the teapot lid.
func poleGrid(t *testing.T) *Grid {
	t.Helper()
	pole := math.Vec3{Y: 3}
	g, err := NewGrid([][]math.Vec3{
		{pole, pole, pole, pole},
		{{X: 0.8, Y: 3}, {X: 0.8, Y: 3, Z: 0.45}, {X: 0.45, Y: 3, Z: 0.8}, {Y: 3, Z: 0.8}},
		{{Y: 2.7}, {Y: 2.7}, {Y: 2.7}, {Y: 2.7}},
		{{X: 0.2, Y: 2.55}, {X: 0.2, Y: 2.55, Z: 0.112}, {X: 0.112, Y: 2.55, Z: 0.2}, {Y: 2.55, Z: 0.2}},
	})
	require.NoError(t, err)
	return g
}

func testGrids(t *testing.T) map[string]*Grid {
	return map[string]*Grid{
		"flat":   flatGrid(t),
		"dome":   domeGrid(t),
		"skew":   skewGrid(t),
		"teapot": teapotRim(t),
		"pole":   poleGrid(t),
	}
}

// samples returns parameter values 0, 1/k, ..., 1.
func samples(k int) []float32 {
	out := make([]float32, k+1)
	for i := range out {
		out[i] = float32(i) / float32(k)
	}
	return out
}
