package vec2

import (
	"math"
	"testing"
)

const epsilon = 1e-5

func approxEq(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestFromAngleRotatesVector(t *testing.T) {
	tests := []struct {
		name  string
		angle float32
		in    Vec2
		want  Vec2
	}{
		{name: "identity", angle: 0, in: Vec2{1, 0}, want: Vec2{1, 0}},
		{name: "quarter turn", angle: float32(math.Pi / 2), in: Vec2{1, 0}, want: Vec2{0, 1}},
		{name: "half turn", angle: float32(math.Pi), in: Vec2{1, 0}, want: Vec2{-1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromAngle(tt.angle).Mul(tt.in)
			if !approxEq(got.X(), tt.want.X()) || !approxEq(got.Y(), tt.want.Y()) {
				t.Errorf("FromAngle(%v).Mul(%v) = %v, want %v", tt.angle, tt.in, got, tt.want)
			}
		})
	}
}

func TestMat22Transpose(t *testing.T) {
	m := Mat22{Col1: Vec2{1, 2}, Col2: Vec2{3, 4}}
	got := m.Transpose()
	want := Mat22{Col1: Vec2{1, 3}, Col2: Vec2{2, 4}}
	if got != want {
		t.Errorf("Transpose() = %+v, want %+v", got, want)
	}
}

func TestMat22InvertRoundTrips(t *testing.T) {
	m := FromAngle(0.7)
	inv := m.Invert()
	got := m.MulM(inv)
	identity := Mat22{Col1: Vec2{1, 0}, Col2: Vec2{0, 1}}
	if !approxEq(got.Col1.X(), identity.Col1.X()) || !approxEq(got.Col1.Y(), identity.Col1.Y()) ||
		!approxEq(got.Col2.X(), identity.Col2.X()) || !approxEq(got.Col2.Y(), identity.Col2.Y()) {
		t.Errorf("m * m.Invert() = %+v, want identity", got)
	}
}

func TestMat22InvertPanicsOnSingular(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Invert() on a singular matrix did not panic")
		}
	}()
	singular := Mat22{Col1: Vec2{1, 2}, Col2: Vec2{2, 4}}
	singular.Invert()
}

func TestCross(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec2
		want float32
	}{
		{name: "perpendicular unit vectors", a: Vec2{1, 0}, b: Vec2{0, 1}, want: 1},
		{name: "parallel vectors", a: Vec2{2, 0}, b: Vec2{4, 0}, want: 0},
		{name: "reversed order negates", a: Vec2{0, 1}, b: Vec2{1, 0}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cross(tt.a, tt.b); !approxEq(got, tt.want) {
				t.Errorf("Cross(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCrossVSAndCrossSVAreNegatives(t *testing.T) {
	a := Vec2{3, 4}
	s := float32(2)
	vs := CrossVS(a, s)
	sv := CrossSV(s, a)
	if !approxEq(vs.X(), -sv.X()) || !approxEq(vs.Y(), -sv.Y()) {
		t.Errorf("CrossVS(%v,%v)=%v should be -CrossSV(%v,%v)=%v", a, s, vs, s, a, sv)
	}
}

func TestSign(t *testing.T) {
	if Sign(-0.5) != -1 {
		t.Errorf("Sign(-0.5) = %v, want -1", Sign(-0.5))
	}
	if Sign(0) != 1 {
		t.Errorf("Sign(0) = %v, want 1", Sign(0))
	}
	if Sign(3) != 1 {
		t.Errorf("Sign(3) = %v, want 1", Sign(3))
	}
}

func TestClampF(t *testing.T) {
	if got := ClampF(5, 0, 1); got != 1 {
		t.Errorf("ClampF(5,0,1) = %v, want 1", got)
	}
	if got := ClampF(-5, 0, 1); got != 0 {
		t.Errorf("ClampF(-5,0,1) = %v, want 0", got)
	}
	if got := ClampF(0.5, 0, 1); got != 0.5 {
		t.Errorf("ClampF(0.5,0,1) = %v, want 0.5", got)
	}
}

func TestAbsV(t *testing.T) {
	got := AbsV(Vec2{-3, 4})
	if got.X() != 3 || got.Y() != 4 {
		t.Errorf("AbsV(-3,4) = %v, want (3,4)", got)
	}
}
