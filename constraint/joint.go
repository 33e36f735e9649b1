package constraint

import (
	"github.com/google/uuid"

	"github.com/vectrix2d/obb2d/body"
	"github.com/vectrix2d/obb2d/vec2"
)

// Joint is a pin constraint holding a fixed point on body1 coincident with
// a fixed point on body2 (a revolute joint with no motor or limits).
type Joint struct {
	UID uuid.UUID

	Body1, Body2 *body.Body

	// LocalAnchor1, LocalAnchor2 are the anchor point in each body's local
	// frame, fixed at Set time.
	LocalAnchor1, LocalAnchor2 vec2.Vec2

	// R1, R2 are the world-space anchor offsets from each body's center,
	// recomputed every PreStep.
	R1, R2 vec2.Vec2

	// M is the effective mass matrix computed in PreStep.
	M vec2.Mat22

	// Bias is the Baumgarte position-correction term computed in PreStep.
	Bias vec2.Vec2

	// P is the accumulated impulse, carried across steps by warm starting.
	P vec2.Vec2

	// BiasFactor scales how aggressively position error is corrected.
	// Softness, when nonzero, relaxes the constraint instead of enforcing
	// it rigidly (a soft joint).
	BiasFactor float32
	Softness   float32
}

// NewJoint builds an unset joint. Call Set before it is stepped.
func NewJoint() *Joint {
	return &Joint{UID: uuid.New(), BiasFactor: 0.2}
}

// Set anchors the joint at the given world-space point, which must
// currently lie at a fixed offset from both bodies' centers.
func (j *Joint) Set(body1, body2 *body.Body, anchor vec2.Vec2) {
	j.Body1 = body1
	j.Body2 = body2

	rot1 := vec2.FromAngle(body1.Rotation).Transpose()
	rot2 := vec2.FromAngle(body2.Rotation).Transpose()

	j.LocalAnchor1 = rot1.Mul(anchor.Sub(body1.Position))
	j.LocalAnchor2 = rot2.Mul(anchor.Sub(body2.Position))

	j.P = vec2.Vec2{}
}

// PreStep computes the effective mass matrix and position bias, and
// optionally applies the warm-start impulse carried over from the
// previous step.
func (j *Joint) PreStep(invDt float32, warmStarting bool, positionCorrection bool) {
	b1, b2 := j.Body1, j.Body2

	rot1 := vec2.FromAngle(b1.Rotation)
	rot2 := vec2.FromAngle(b2.Rotation)

	j.R1 = rot1.Mul(j.LocalAnchor1)
	j.R2 = rot2.Mul(j.LocalAnchor2)

	// K1: identity scaled by combined inverse mass.
	k1 := vec2.Mat22{
		Col1: vec2.Vec2{b1.InvMass + b2.InvMass, 0},
		Col2: vec2.Vec2{0, b1.InvMass + b2.InvMass},
	}

	k2 := vec2.Mat22{
		Col1: vec2.Vec2{b1.InvI * j.R1.Y() * j.R1.Y(), -b1.InvI * j.R1.X() * j.R1.Y()},
		Col2: vec2.Vec2{-b1.InvI * j.R1.X() * j.R1.Y(), b1.InvI * j.R1.X() * j.R1.X()},
	}

	k3 := vec2.Mat22{
		Col1: vec2.Vec2{b2.InvI * j.R2.Y() * j.R2.Y(), -b2.InvI * j.R2.X() * j.R2.Y()},
		Col2: vec2.Vec2{-b2.InvI * j.R2.X() * j.R2.Y(), b2.InvI * j.R2.X() * j.R2.X()},
	}

	k := k1.Add(k2).Add(k3)
	k.Col1 = vec2.Vec2{k.Col1.X() + j.Softness, k.Col1.Y()}
	k.Col2 = vec2.Vec2{k.Col2.X(), k.Col2.Y() + j.Softness}
	j.M = k.Invert()

	p1 := b1.Position.Add(j.R1)
	p2 := b2.Position.Add(j.R2)
	dp := p2.Sub(p1)

	if positionCorrection {
		j.Bias = dp.Mul(-j.BiasFactor * invDt)
	} else {
		j.Bias = vec2.Vec2{}
	}

	if warmStarting {
		applyImpulsePair(b1, b2, j.R1, j.R2, j.P)
	} else {
		j.P = vec2.Vec2{}
	}
}

// ApplyImpulse resolves the anchor-coincidence constraint for one
// Gauss-Seidel iteration.
func (j *Joint) ApplyImpulse() {
	b1, b2 := j.Body1, j.Body2

	dv := b2.Velocity.Add(vec2.CrossSV(b2.AngularVelocity, j.R2)).
		Sub(b1.Velocity).
		Sub(vec2.CrossSV(b1.AngularVelocity, j.R1))

	impulse := j.M.Mul(j.Bias.Sub(dv).Sub(j.P.Mul(j.Softness)))

	applyImpulsePair(b1, b2, j.R1, j.R2, impulse)

	j.P = j.P.Add(impulse)
}
