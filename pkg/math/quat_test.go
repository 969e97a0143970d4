package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatToMat4MatchesRotations(t *testing.T) {
	tests := []struct {
		name string
		q    Quat
		want Mat4
	}{
		{"identity", QuatIdentity(), Identity()},
		{"x", QuatFromAxisAngle(Vec3{X: 1}, 0.6), RotateX(0.6)},
		{"y", QuatFromAxisAngle(Vec3{Y: 1}, -1.3), RotateY(-1.3)},
		{"z", QuatFromAxisAngle(Vec3{Z: 2}, 2.0), RotateZ(2.0)},
		{"axis", QuatFromAxisAngle(Vec3{1, 1, 1}, 0.9), RotateAxis(Vec3{1, 1, 1}, 0.9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.ToMat4(); !got.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("ToMat4() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuatMulComposesLikeMatrices(t *testing.T) {
	pitch := QuatFromAxisAngle(Vec3{X: 1}, 0.4)
	yaw := QuatFromAxisAngle(Vec3{Y: 1}, 1.1)

	got := pitch.Mul(yaw).ToMat4()
	want := RotateX(0.4).Mul(RotateY(1.1))
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("pitch*yaw = %v, want %v", got, want)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}
