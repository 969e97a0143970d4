package bezier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/bezier-teapot/pkg/math"
)

func TestNormalFlatScenario(t *testing.T) {
	got := Normal(0.5, 0.5, flatGrid(t))
	assert.Equal(t, math.Vec3{Z: 1}, got)
}

func TestNormalsAreUnitOrZero(t *testing.T) {
	estimators := map[string]NormalEstimator{
		"analytic":          AnalyticNormals{},
		"finite-difference": FiniteDifferenceNormals{},
	}
	for gname, g := range testGrids(t) {
		for ename, est := range estimators {
			t.Run(gname+"/"+ename, func(t *testing.T) {
				for _, u := range samples(10) {
					for _, v := range samples(10) {
						n := est.Normal(g, u, v)
						if n.IsZero() {
							continue
						}
						assert.InDelta(t, 1, n.Length(), 1e-3, "|N(%v,%v)|", u, v)
					}
				}
			})
		}
	}
}

func TestNormalDegeneratePole(t *testing.T) {
	g := poleGrid(t)
	for _, v := range samples(4) {
		assert.True(t, Normal(0, v, g).IsZero(), "analytic normal at pole v=%v should be zero", v)
		assert.True(t, FiniteDifferenceNormals{}.Normal(g, 0, v).IsZero(), "finite difference normal at pole v=%v should be zero", v)
	}
	// Away from the pole the patch is regular.
	assert.InDelta(t, 1, Normal(0.5, 0.5, g).Length(), 1e-3)
}

func TestNormalDegenerateAllPointsEqual(t *testing.T) {
	p := math.Vec3{X: 1, Y: 2, Z: 3}
	g, err := NewGrid([][]math.Vec3{{p, p}, {p, p}})
	require.NoError(t, err)
	assert.True(t, Normal(0.5, 0.5, g).IsZero())
}

func TestAnalyticMatchesFiniteDifference(t *testing.T) {
	grids := map[string]*Grid{
		"flat":   flatGrid(t),
		"dome":   domeGrid(t),
		"skew":   skewGrid(t),
		"teapot": teapotRim(t),
	}
	fd := FiniteDifferenceNormals{Epsilon: DefaultEpsilon}
	for name, g := range grids {
		t.Run(name, func(t *testing.T) {
			for _, u := range samples(8) {
				for _, v := range samples(8) {
					a := AnalyticNormals{}.Normal(g, u, v)
					b := fd.Normal(g, u, v)
					assert.True(t, a.ApproxEqual(b, 1e-2), "(%v,%v): analytic %v, finite difference %v", u, v, a, b)
				}
			}
		})
	}
}

func TestFixedNormals(t *testing.T) {
	est := FixedNormals{Direction: math.Vec3{Y: 5}}
	assert.Equal(t, math.Vec3{Y: 1}, est.Normal(domeGrid(t), 0.2, 0.7))
	assert.True(t, FixedNormals{}.Normal(nil, 0, 0).IsZero())
}

func TestNormalStrategy(t *testing.T) {
	tests := []struct {
		name string
		want NormalEstimator
	}{
		{"", AnalyticNormals{}},
		{StrategyAnalytic, AnalyticNormals{}},
		{StrategyFiniteDifference, FiniteDifferenceNormals{Epsilon: DefaultEpsilon}},
		{StrategyFixedUp, FixedNormals{Direction: math.Vec3{Y: 1}}},
	}
	for _, tt := range tests {
		got, err := NormalStrategy(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
		if tt.name != "" {
			assert.Equal(t, tt.name, StrategyName(got))
		}
	}

	_, err := NormalStrategy("phong")
	assert.True(t, errors.Is(err, ErrUnknownNormalStrategy), "got %v", err)
	assert.Equal(t, "fixed", StrategyName(FixedNormals{Direction: math.Vec3{X: 1}}))
}
