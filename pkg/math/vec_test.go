package math

import (
	"testing"
)

func TestVec2Dot(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Dot(b)
	want := 11.0
	if got != want {
		t.Errorf("Vec2.Dot() = %v, want %v", got, want)
	}
}

func TestVec2Sub(t *testing.T) {
	got := Vec2{5, 1}.Sub(Vec2{2, 3})
	want := Vec2{3, -2}
	if got != want {
		t.Errorf("Vec2.Sub() = %v, want %v", got, want)
	}
}

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
	v := Vec3{3, 4, 0}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec3NormalizeDegenerate(t *testing.T) {
	got := Vec3{}.Normalize()
	want := Vec3{0, 1, 0}
	if got != want {
		t.Errorf("Vec3{}.Normalize() = %v, want %v", got, want)
	}
}
