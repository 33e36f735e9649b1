// Package vec2 provides the 2D vector and rotation-matrix primitives the
// rest of obb2d is built on: a single-precision ordered pair and a 2x2
// rotation matrix stored as two column vectors, plus the handful of free
// functions (Dot, Cross, Sign, ClampF) the solver and collider need.
//
// Vec2 itself is an alias for mgl32.Vec2 so that addition, subtraction and
// scalar multiplication come from github.com/go-gl/mathgl rather than being
// hand-rolled; Mat22 is not mgl32.Mat2 because the collider needs its two
// columns addressable by name (Col1/Col2), not as a flat array.
package vec2

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec2 is an ordered pair (x, y) of single-precision reals.
type Vec2 = mgl32.Vec2

// Mat22 is a 2x2 matrix stored as two column vectors. M(theta)*v rotates v
// by theta radians in the plane.
type Mat22 struct {
	Col1, Col2 Vec2
}

// FromAngle builds the rotation matrix for angle radians:
// ((cos, sin), (-sin, cos)).
func FromAngle(angle float32) Mat22 {
	c, s := cos(angle), sin(angle)
	return Mat22{
		Col1: Vec2{c, s},
		Col2: Vec2{-s, c},
	}
}

// Mul applies the matrix to a column vector.
func (m Mat22) Mul(v Vec2) Vec2 {
	return Vec2{
		m.Col1.X()*v.X() + m.Col2.X()*v.Y(),
		m.Col1.Y()*v.X() + m.Col2.Y()*v.Y(),
	}
}

// MulM composes two matrices (m * n).
func (m Mat22) MulM(n Mat22) Mat22 {
	return Mat22{
		Col1: m.Mul(n.Col1),
		Col2: m.Mul(n.Col2),
	}
}

// Add returns the element-wise sum of two matrices.
func (m Mat22) Add(n Mat22) Mat22 {
	return Mat22{
		Col1: m.Col1.Add(n.Col1),
		Col2: m.Col2.Add(n.Col2),
	}
}

// Transpose returns the matrix transpose.
func (m Mat22) Transpose() Mat22 {
	return Mat22{
		Col1: Vec2{m.Col1.X(), m.Col2.X()},
		Col2: Vec2{m.Col1.Y(), m.Col2.Y()},
	}
}

// Invert returns the matrix inverse. It panics if the matrix is singular:
// the solver's pre-step guarantees the K-matrix it builds is invertible, so
// a zero determinant here is a programmer error, not a runtime condition to
// recover from.
func (m Mat22) Invert() Mat22 {
	a, b, c, d := m.Col1.X(), m.Col2.X(), m.Col1.Y(), m.Col2.Y()
	det := a*d - b*c
	if det == 0 {
		panic("vec2: Mat22.Invert: singular matrix")
	}
	det = 1 / det
	return Mat22{
		Col1: Vec2{det * d, -det * c},
		Col2: Vec2{-det * b, det * a},
	}
}

// Dot returns the dot product of a and b.
func Dot(a, b Vec2) float32 {
	return a.X()*b.X() + a.Y()*b.Y()
}

// Cross returns the scalar (z-component) cross product of a and b.
func Cross(a, b Vec2) float32 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// CrossVS returns the cross product of a vector and a scalar, s*a rotated
// -90 degrees: Cross(a, s) = (s*a.y, -s*a.x).
func CrossVS(a Vec2, s float32) Vec2 {
	return Vec2{s * a.Y(), -s * a.X()}
}

// CrossSV returns the cross product of a scalar and a vector.
func CrossSV(s float32, a Vec2) Vec2 {
	return Vec2{-s * a.Y(), s * a.X()}
}

// AbsV returns the element-wise absolute value of v.
func AbsV(v Vec2) Vec2 {
	return Vec2{absF(v.X()), absF(v.Y())}
}

// AbsM returns the element-wise absolute value of m.
func AbsM(m Mat22) Mat22 {
	return Mat22{Col1: AbsV(m.Col1), Col2: AbsV(m.Col2)}
}

// Sign returns -1 for negative x and +1 otherwise (zero included), matching
// box2d-lite's Sign rather than math.Signbit semantics.
func Sign(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}

// ClampF clamps a to the inclusive range [low, high].
func ClampF(a, low, high float32) float32 {
	if a < low {
		return low
	}
	if a > high {
		return high
	}
	return a
}

func cos(angle float32) float32 { return float32(math.Cos(float64(angle))) }
func sin(angle float32) float32 { return float32(math.Sin(float64(angle))) }

func absF(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
