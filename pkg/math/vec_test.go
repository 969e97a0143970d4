package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	if got := (Vec3{}).Normalize(); !got.IsZero() {
		t.Errorf("zero vector Normalize() = %v, want zero", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 20, 30}

	tests := []struct {
		t    float32
		want Vec3
	}{
		{0, a},
		{1, b},
		{0.5, Vec3{5, 10, 15}},
	}
	for _, tt := range tests {
		if got := a.Lerp(b, tt.t); !got.ApproxEqual(tt.want, 1e-6) {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestVec3Array(t *testing.T) {
	v := Vec3{1, 2, 3}
	if got := Vec3FromArray(v.Array()); got != v {
		t.Errorf("Vec3FromArray(Array()) = %v, want %v", got, v)
	}
}

func TestVec3Distance(t *testing.T) {
	got := Vec3{1, 1, 1}.Distance(Vec3{4, 5, 1})
	if got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}
