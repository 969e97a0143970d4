package bezier

import (
	"github.com/Faultbox/bezier-teapot/pkg/math"
)

// vec64 keeps sums in double precision until the final conversion.
type vec64 [3]float64

func widen(v math.Vec3) vec64 {
	return vec64{float64(v.X), float64(v.Y), float64(v.Z)}
}

func (a vec64) add(b vec64) vec64     { return vec64{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func (a vec64) sub(b vec64) vec64     { return vec64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func (a vec64) scale(s float64) vec64 { return vec64{a[0] * s, a[1] * s, a[2] * s} }

func (a vec64) cross(b vec64) vec64 {
	return vec64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (a vec64) vec3() math.Vec3 {
	return math.Vec3{X: float32(a[0]), Y: float32(a[1]), Z: float32(a[2])}
}

func clamp01(t float32) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return float64(t)
}

// Evaluate returns S(u, v) as the tensor-product Bernstein sum.
// u and v are clamped to [0, 1].
func Evaluate(u, v float32, g *Grid) math.Vec3 {
	return g.eval(clamp01(u), clamp01(v)).vec3()
}

func (g *Grid) eval(u, v float64) vec64 {
	n, m := g.Degree()
	bu := basis(make([]float64, 0, n+1), n, u)
	bv := basis(make([]float64, 0, m+1), m, v)

	var p vec64
	for i := 0; i <= n; i++ {
		for j := 0; j <= m; j++ {
			p = p.add(widen(g.points[i][j]).scale(bu[i] * bv[j]))
		}
	}
	return p
}

// EvaluateNested returns S(u, v) by first reducing every row to a point on
// its v-curve and then evaluating the curve through those points at u.
// Both steps use de Casteljau subdivision.
func EvaluateNested(u, v float32, g *Grid) math.Vec3 {
	uu, vv := clamp01(u), clamp01(v)
	n, _ := g.Degree()

	column := make([]vec64, n+1)
	for i := 0; i <= n; i++ {
		row := make([]vec64, len(g.points[i]))
		for j, p := range g.points[i] {
			row[j] = widen(p)
		}
		column[i] = deCasteljau(row, vv)
	}
	return deCasteljau(column, uu).vec3()
}

// deCasteljau evaluates the curve with control points pts at t.
// pts is used as scratch space.
func deCasteljau(pts []vec64, t float64) vec64 {
	for k := len(pts) - 1; k > 0; k-- {
		for i := 0; i < k; i++ {
			pts[i] = pts[i].scale(1 - t).add(pts[i+1].scale(t))
		}
	}
	return pts[0]
}

// Tangents returns the analytic partial derivatives Su and Sv at (u, v).
func (g *Grid) Tangents(u, v float32) (su, sv math.Vec3) {
	a, b := g.tangents(clamp01(u), clamp01(v))
	return a.vec3(), b.vec3()
}

func (g *Grid) tangents(u, v float64) (su, sv vec64) {
	n, m := g.Degree()
	bu := basis(make([]float64, 0, n+1), n, u)
	bv := basis(make([]float64, 0, m+1), m, v)
	du := basisDeriv(make([]float64, 0, n+1), n, u)
	dv := basisDeriv(make([]float64, 0, m+1), m, v)

	for i := 0; i <= n; i++ {
		for j := 0; j <= m; j++ {
			p := widen(g.points[i][j])
			su = su.add(p.scale(du[i] * bv[j]))
			sv = sv.add(p.scale(bu[i] * dv[j]))
		}
	}
	return su, sv
}
