package bezier

// Bernstein returns B(n,i,t) = C(n,i) * t^i * (1-t)^(n-i).
// Out-of-range i yields 0, and 0^0 is taken as 1 so the end points
// interpolate exactly.
func Bernstein(n, i int, t float32) float32 {
	return float32(bernstein(n, i, float64(t)))
}

func bernstein(n, i int, t float64) float64 {
	if i < 0 || i > n {
		return 0
	}
	return binomial(n, i) * pow(t, i) * pow(1-t, n-i)
}

// bernsteinDeriv returns dB(n,i,t)/dt = n * (B(n-1,i-1,t) - B(n-1,i,t)).
func bernsteinDeriv(n, i int, t float64) float64 {
	if n == 0 {
		return 0
	}
	return float64(n) * (bernstein(n-1, i-1, t) - bernstein(n-1, i, t))
}

// basis fills dst with B(n,0..n,t).
func basis(dst []float64, n int, t float64) []float64 {
	dst = dst[:0]
	for i := 0; i <= n; i++ {
		dst = append(dst, bernstein(n, i, t))
	}
	return dst
}

// basisDeriv fills dst with dB(n,0..n,t)/dt.
func basisDeriv(dst []float64, n int, t float64) []float64 {
	dst = dst[:0]
	for i := 0; i <= n; i++ {
		dst = append(dst, bernsteinDeriv(n, i, t))
	}
	return dst
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	r := 1.0
	for d := 1; d <= k; d++ {
		r = r * float64(n-k+d) / float64(d)
	}
	return r
}

// pow is t^k for small non-negative k, with pow(0, 0) == 1.
func pow(t float64, k int) float64 {
	r := 1.0
	for ; k > 0; k-- {
		r *= t
	}
	return r
}
