package math

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/mat"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in column 4 (indices 12, 13, 14)
	if m.At(0, 3) != 5 || m.At(1, 3) != 10 || m.At(2, 3) != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 2, 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"rotateY 90", RotateY(float32(math.Pi / 2)), Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"rotateX 90", RotateX(float32(math.Pi / 2)), Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"rotateZ 90", RotateZ(float32(math.Pi / 2)), Vec3{1, 0, 0}, Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.p)
			if !got.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("TransformPoint: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(7, 8, 9).Mul(Scale(2, 3, 4))
	got := m.TransformDirection(Vec3{1, 1, 1})
	want := Vec3{2, 3, 4}
	if got != want {
		t.Errorf("TransformDirection: got %v, want %v", got, want)
	}
}

func TestMulOrderAppliesRightFirst(t *testing.T) {
	// Rotate first, then translate.
	m := Translate(0, 0, -5).Mul(RotateY(float32(math.Pi / 2)))
	got := m.TransformPoint(Vec3{1, 0, 0})
	want := Vec3{0, 0, -6}
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("T*R applied to (1,0,0): got %v, want %v", got, want)
	}
}

func TestMatchesMathGL(t *testing.T) {
	axis := Vec3{1, 2, 3}
	tests := []struct {
		name string
		got  Mat4
		want mgl32.Mat4
	}{
		{"perspective", Perspective(mgl32.DegToRad(45), 1.5, 0.1, 100), mgl32.Perspective(mgl32.DegToRad(45), 1.5, 0.1, 100)},
		{"ortho", Ortho(-2, 3, -1, 4, 0.5, 20), mgl32.Ortho(-2, 3, -1, 4, 0.5, 20)},
		{"translate", Translate(1, -2, 3), mgl32.Translate3D(1, -2, 3)},
		{"scale", Scale(2, 3, 4), mgl32.Scale3D(2, 3, 4)},
		{"rotateX", RotateX(0.7), mgl32.HomogRotate3DX(0.7)},
		{"rotateY", RotateY(-1.2), mgl32.HomogRotate3DY(-1.2)},
		{"rotateZ", RotateZ(2.1), mgl32.HomogRotate3DZ(2.1)},
		{"rotateAxis", RotateAxis(axis, 0.9), mgl32.HomogRotate3D(0.9, mgl32.Vec3{1, 2, 3}.Normalize())},
		{
			"lookAt",
			LookAt(Vec3{3, 4, 5}, Vec3{0, 0, 0}, Vec3{0, 1, 0}),
			mgl32.LookAtV(mgl32.Vec3{3, 4, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}),
		},
		{
			"mul",
			Translate(1, 2, 3).Mul(RotateX(0.3)).Mul(RotateY(0.4)),
			mgl32.Translate3D(1, 2, 3).Mul4(mgl32.HomogRotate3DX(0.3)).Mul4(mgl32.HomogRotate3DY(0.4)),
		},
		{"transpose", Translate(1, 2, 3).Transpose(), mgl32.Translate3D(1, 2, 3).Transpose()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.ApproxEqual(Mat4(tt.want), 1e-5) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestAngleConversions(t *testing.T) {
	if got := Radians(180); abs(got-math.Pi) > 1e-6 {
		t.Errorf("Radians(180) = %f, want pi", got)
	}
	if got := Degrees(math.Pi / 2); abs(got-90) > 1e-4 {
		t.Errorf("Degrees(pi/2) = %f, want 90", got)
	}
	if got := Degrees(Radians(-37.5)); abs(got+37.5) > 1e-4 {
		t.Errorf("Degrees(Radians(-37.5)) = %f", got)
	}
}

func TestPerspective(t *testing.T) {
	fov := float32(math.Pi / 4) // 45 degrees
	m := Perspective(fov, 1, 0.1, 100)

	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}

	clip := m.MulVec4(Vec4{0, 0, -1, 1})
	if clip[3] <= 0 {
		t.Fatalf("clip w for z=-1 should be positive, got %f", clip[3])
	}
	depth := clip[2] / clip[3]
	if depth < -1 || depth > 1 {
		t.Errorf("NDC depth for z=-1 should be in [-1,1], got %f", depth)
	}

	// Near and far planes land on the ends of the depth range.
	nearClip := m.MulVec4(Vec4{0, 0, -0.1, 1})
	if d := nearClip[2] / nearClip[3]; abs(d+1) > 1e-4 {
		t.Errorf("near plane depth: got %f, want -1", d)
	}
	farClip := m.MulVec4(Vec4{0, 0, -100, 1})
	if d := farClip[2] / farClip[3]; abs(d-1) > 1e-4 {
		t.Errorf("far plane depth: got %f, want 1", d)
	}
}

func testMatrices() map[string]Mat4 {
	return map[string]Mat4{
		"identity":  Identity(),
		"translate": Translate(1, -2, 3),
		"rigid":     Translate(0, 0, -4).Mul(RotateX(0.5)).Mul(RotateY(1.1)),
		"scaled":    Scale(2, 0.5, 3).Mul(RotateAxis(Vec3{1, 1, 0}, 0.8)),
		"general": {
			2, 1, 0, 1,
			0, 3, 1, 0,
			1, 0, 4, 2,
			0, 1, 0, 5,
		},
		"perspective": Perspective(0.8, 1.3, 0.5, 50),
	}
}

func TestInvertRoundTrip(t *testing.T) {
	for name, m := range testMatrices() {
		t.Run(name, func(t *testing.T) {
			inv, err := m.Invert()
			if err != nil {
				t.Fatalf("Invert: %v", err)
			}
			back, err := inv.Invert()
			if err != nil {
				t.Fatalf("Invert(Invert): %v", err)
			}
			if !back.ApproxEqual(m, 1e-3) {
				t.Errorf("Invert(Invert(M)) = %v, want %v", back, m)
			}
			if prod := m.Mul(inv); !prod.ApproxEqual(Identity(), 1e-4) {
				t.Errorf("M * Invert(M) = %v, want identity", prod)
			}
		})
	}
}

func TestInvertMatchesGonum(t *testing.T) {
	for name, m := range testMatrices() {
		t.Run(name, func(t *testing.T) {
			data := make([]float64, 16)
			for row := 0; row < 4; row++ {
				for col := 0; col < 4; col++ {
					data[row*4+col] = float64(m.At(row, col))
				}
			}
			dense := mat.NewDense(4, 4, data)

			var want mat.Dense
			if err := want.Inverse(dense); err != nil {
				t.Fatalf("gonum inverse: %v", err)
			}
			got, err := m.Invert()
			if err != nil {
				t.Fatalf("Invert: %v", err)
			}
			for row := 0; row < 4; row++ {
				for col := 0; col < 4; col++ {
					if d := math.Abs(float64(got.At(row, col)) - want.At(row, col)); d > 1e-4 {
						t.Errorf("element (%d,%d): got %f, want %f", row, col, got.At(row, col), want.At(row, col))
					}
				}
			}
			if d := math.Abs(m.Determinant() - mat.Det(dense)); d > 1e-6*math.Max(1, math.Abs(mat.Det(dense))) {
				t.Errorf("Determinant: got %f, want %f", m.Determinant(), mat.Det(dense))
			}
		})
	}
}

func TestInvertSingular(t *testing.T) {
	tests := map[string]Mat4{
		"zero":          {},
		"flatten z":     Scale(1, 1, 0),
		"repeated rows": {1, 1, 0, 0, 2, 2, 0, 0, 3, 3, 1, 0, 4, 4, 0, 1},
		"tiny":          Scale(1e-4, 1e-4, 1e-4),
	}

	for name, m := range tests {
		t.Run(name, func(t *testing.T) {
			inv, err := m.Invert()
			if !errors.Is(err, ErrSingularMatrix) {
				t.Fatalf("expected ErrSingularMatrix, got %v (result %v)", err, inv)
			}
			if inv != (Mat4{}) {
				t.Errorf("singular inverse should return zero matrix, got %v", inv)
			}
		})
	}
}

func TestMat3RoundTrip(t *testing.T) {
	m := Translate(1, 2, 3).Mul(RotateX(0.4)).Mul(Scale(1, 2, 3))
	m3 := m.Mat3()
	if m3.Mat4().Mat3() != m3 {
		t.Error("Mat3 -> Mat4 -> Mat3 should be lossless")
	}
	if got := m3.Mat4(); got[15] != 1 || got[12] != 0 || got[3] != 0 {
		t.Errorf("Mat3.Mat4 should be affine with no translation, got %v", got)
	}
}
