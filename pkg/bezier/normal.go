package bezier

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/bezier-teapot/pkg/math"
)

// DegenerateNormalThreshold is the smallest |Su x Sv| that still yields a
// normal. Below it the zero vector is returned.
const DegenerateNormalThreshold = 1e-5

// DefaultEpsilon is the parameter step used by FiniteDifferenceNormals.
const DefaultEpsilon = 1e-3

// ErrUnknownNormalStrategy is returned by NormalStrategy for unknown names.
var ErrUnknownNormalStrategy = errors.New("unknown normal strategy")

// Normal strategy names accepted by NormalStrategy.
const (
	StrategyAnalytic         = "analytic"
	StrategyFiniteDifference = "finite-difference"
	StrategyFixedUp          = "fixed-up"
)

// NormalEstimator computes the surface normal of a patch at (u, v).
// Implementations return a unit vector or the zero vector.
type NormalEstimator interface {
	Normal(g *Grid, u, v float32) math.Vec3
}

// Normal returns the analytic unit normal Su x Sv at (u, v).
func Normal(u, v float32, g *Grid) math.Vec3 {
	return AnalyticNormals{}.Normal(g, u, v)
}

// AnalyticNormals differentiates the Bernstein basis to get the tangents.
type AnalyticNormals struct{}

// Normal implements NormalEstimator.
func (AnalyticNormals) Normal(g *Grid, u, v float32) math.Vec3 {
	su, sv := g.tangents(clamp01(u), clamp01(v))
	return unitCross(su, sv)
}

// FiniteDifferenceNormals approximates the tangents with forward
// differences. Near u=1 or v=1 the step is taken backwards so samples stay
// on the patch.
type FiniteDifferenceNormals struct {
	// Epsilon is the parameter step; zero means DefaultEpsilon.
	Epsilon float32
}

// Normal implements NormalEstimator.
func (f FiniteDifferenceNormals) Normal(g *Grid, u, v float32) math.Vec3 {
	h := float64(f.Epsilon)
	if h <= 0 {
		h = DefaultEpsilon
	}
	uu, vv := clamp01(u), clamp01(v)
	p := g.eval(uu, vv)

	hu := step(uu, h)
	hv := step(vv, h)
	su := g.eval(uu+hu, vv).sub(p).scale(1 / hu)
	sv := g.eval(uu, vv+hv).sub(p).scale(1 / hv)
	return unitCross(su, sv)
}

// step returns +h, or -h when t+h would leave [0, 1].
func step(t, h float64) float64 {
	if t+h > 1 {
		return -h
	}
	return h
}

// FixedNormals returns the same direction everywhere. It suits flat
// patches and debugging views.
type FixedNormals struct {
	Direction math.Vec3
}

// Normal implements NormalEstimator.
func (f FixedNormals) Normal(*Grid, float32, float32) math.Vec3 {
	return f.Direction.Normalize()
}

// NormalStrategy resolves a configured strategy name. An empty name
// selects the analytic estimator.
func NormalStrategy(name string) (NormalEstimator, error) {
	switch name {
	case "", StrategyAnalytic:
		return AnalyticNormals{}, nil
	case StrategyFiniteDifference:
		return FiniteDifferenceNormals{Epsilon: DefaultEpsilon}, nil
	case StrategyFixedUp:
		return FixedNormals{Direction: math.Vec3{Y: 1}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNormalStrategy, name)
	}
}

// StrategyName returns the configuration name of a built-in estimator, or
// the Go type for anything else.
func StrategyName(est NormalEstimator) string {
	switch e := est.(type) {
	case AnalyticNormals:
		return StrategyAnalytic
	case FiniteDifferenceNormals:
		return StrategyFiniteDifference
	case FixedNormals:
		if e.Direction.Normalize() == (math.Vec3{Y: 1}) {
			return StrategyFixedUp
		}
		return "fixed"
	default:
		return fmt.Sprintf("%T", est)
	}
}

func unitCross(su, sv vec64) math.Vec3 {
	c := su.cross(sv)
	l := gomath.Sqrt(c[0]*c[0] + c[1]*c[1] + c[2]*c[2])
	if l < DegenerateNormalThreshold {
		return math.Vec3{}
	}
	return c.scale(1 / l).vec3()
}
