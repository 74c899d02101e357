package geometry

import (
	"math"
	"testing"

	"golang.org/x/image/math/f32"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestMulComposesRightToLeft(t *testing.T) {
	m := Mul(Translate(10, 0, 0), Scale(2, 2, 1))
	p := Apply(m, f32.Vec3{1, 1, 0})
	if !approx(p[0], 12) || !approx(p[1], 2) {
		t.Errorf("Apply = %v, want [12 2 0]", p)
	}
}

func TestInvert(t *testing.T) {
	tests := []struct {
		name string
		m    f32.Mat4
	}{
		{"identity", Identity()},
		{"translate", Translate(3, -4, 5)},
		{"scale", Scale(2, 4, 1)},
		{"composite", Mul(Translate(7, 8, 0), Scale(0.5, 3, 1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := Invert(tt.m)
			if !ok {
				t.Fatal("expected invertible matrix")
			}
			got := Mul(tt.m, inv)
			want := Identity()
			for i := range got {
				if !approx(got[i], want[i]) {
					t.Fatalf("m*inv = %v, want identity", got)
				}
			}
		})
	}
}

func TestInvertSingular(t *testing.T) {
	if _, ok := Invert(Scale(0, 1, 1)); ok {
		t.Error("expected singular matrix to report !ok")
	}
}

func TestRayIntersectPlane(t *testing.T) {
	ray := PointerRay(5, 6)
	dist, x, y, ok := ray.IntersectPlane()
	if !ok {
		t.Fatal("expected intersection")
	}
	if !approx(dist, 1) || !approx(x, 5) || !approx(y, 6) {
		t.Errorf("got t=%v x=%v y=%v", dist, x, y)
	}
}

func TestRayTransformPreservesParameter(t *testing.T) {
	ray := PointerRay(20, 10)
	inv, _ := Invert(Mul(Translate(10, 0, 0), Scale(2, 2, 1)))
	local := ray.Transform(inv)
	dist, x, y, ok := local.IntersectPlane()
	if !ok {
		t.Fatal("expected intersection")
	}
	if !approx(dist, 1) || !approx(x, 5) || !approx(y, 5) {
		t.Errorf("got t=%v x=%v y=%v, want t=1 x=5 y=5", dist, x, y)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 1, Y: 1, Width: 2, Height: 2}
	if !r.Contains(1, 1) || !r.Contains(2.9, 2.9) {
		t.Error("expected points inside")
	}
	if r.Contains(3, 1) || r.Contains(0.5, 2) {
		t.Error("expected points outside")
	}
}
