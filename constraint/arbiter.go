package constraint

import (
	"math"

	"github.com/vectrix2d/obb2d/body"
	"github.com/vectrix2d/obb2d/vec2"
)

// Baumgarte stabilization constants, matched to box2d-lite's samples.
const (
	biasFactor         = float32(0.2)
	allowedPenetration = float32(0.01)
)

// ArbiterKey canonically identifies a body pair by the monotonic indices
// World hands out at AddBody time, with index1 always the smaller of the
// two. Unlike the pointer-identity ordering it replaces, this is stable
// across runs and doesn't depend on allocator behavior, so two processes
// stepping the same scene build the same arbiter map.
type ArbiterKey struct {
	Index1, Index2 int
}

// NewArbiterKey builds the canonical key for a body pair given their
// World-assigned indices, in either order.
func NewArbiterKey(i, j int) ArbiterKey {
	if i < j {
		return ArbiterKey{Index1: i, Index2: j}
	}
	return ArbiterKey{Index1: j, Index2: i}
}

// Arbiter is the persistent contact state for one body pair: it holds the
// current manifold and, across steps, warm-starts each contact's
// accumulated impulses by matching feature IDs rather than recomputing
// from zero.
type Arbiter struct {
	Body1, Body2 *body.Body

	Contacts    [MaxPoints]Contact
	NumContacts int

	// Friction is the combined Coulomb coefficient for this pair, the
	// geometric mean of each body's own friction.
	Friction float32
}

// NewArbiter runs narrow phase for body1/body2 and builds the initial
// contact set. body1/body2 are stored in the order given; callers (World)
// are responsible for using the same order consistently for a given
// ArbiterKey, since contact feature IDs are reported "edges on body1 /
// edges on body2".
func NewArbiter(body1, body2 *body.Body) *Arbiter {
	contacts, numContacts := Collide(body1, body2)
	return NewArbiterFromContacts(body1, body2, contacts, numContacts)
}

// NewArbiterFromContacts builds an arbiter from a manifold the caller has
// already computed (World's broad phase runs Collide once per pair per
// step to decide whether an arbiter needs to be created at all, so this
// avoids running it a second time just to populate a fresh Arbiter).
func NewArbiterFromContacts(body1, body2 *body.Body, contacts [MaxPoints]Contact, numContacts int) *Arbiter {
	return &Arbiter{
		Body1:       body1,
		Body2:       body2,
		Contacts:    contacts,
		NumContacts: numContacts,
		Friction:    float32(math.Sqrt(float64(body1.Friction * body2.Friction))),
	}
}

// Update replaces the arbiter's manifold with a freshly computed one,
// carrying over each surviving contact's accumulated impulses (Pn, Pt,
// Pnb) from the old manifold by matching feature IDs, so a persistent
// contact doesn't lose its warm-start value just because the clip order
// changed between steps.
func (a *Arbiter) Update(newContacts [MaxPoints]Contact, numNewContacts int, warmStarting bool) {
	var merged [MaxPoints]Contact

	for i := 0; i < numNewContacts; i++ {
		newC := &newContacts[i]
		merged[i] = *newC

		if !warmStarting {
			continue
		}

		for j := 0; j < a.NumContacts; j++ {
			oldC := &a.Contacts[j]
			if newC.Feature == oldC.Feature {
				merged[i].Pn = oldC.Pn
				merged[i].Pt = oldC.Pt
				merged[i].Pnb = oldC.Pnb
				break
			}
		}
	}

	a.Contacts = merged
	a.NumContacts = numNewContacts
}

// PreStep computes each contact's effective mass and Baumgarte bias.
// When accumulateImpulses is true it immediately applies the contact's
// cached impulse (warm-start application); otherwise it zeroes the
// cached impulse instead.
func (a *Arbiter) PreStep(invDt float32, accumulateImpulses bool) {
	const allowedPenetrationSlop = allowedPenetration

	for i := 0; i < a.NumContacts; i++ {
		c := &a.Contacts[i]

		c.R1 = c.Position.Sub(a.Body1.Position)
		c.R2 = c.Position.Sub(a.Body2.Position)

		rn1 := vec2.Dot(c.R1, c.Normal)
		rn2 := vec2.Dot(c.R2, c.Normal)
		kNormal := a.Body1.InvMass + a.Body2.InvMass
		kNormal += a.Body1.InvI*(vec2.Dot(c.R1, c.R1)-rn1*rn1) + a.Body2.InvI*(vec2.Dot(c.R2, c.R2)-rn2*rn2)
		c.MassNormal = 1 / kNormal

		tangent := vec2.CrossVS(c.Normal, 1)
		rt1 := vec2.Dot(c.R1, tangent)
		rt2 := vec2.Dot(c.R2, tangent)
		kTangent := a.Body1.InvMass + a.Body2.InvMass
		kTangent += a.Body1.InvI*(vec2.Dot(c.R1, c.R1)-rt1*rt1) + a.Body2.InvI*(vec2.Dot(c.R2, c.R2)-rt2*rt2)
		c.MassTangent = 1 / kTangent

		c.Bias = -biasFactor * invDt * min32(0, c.Separation+allowedPenetrationSlop)

		if accumulateImpulses {
			impulse := c.Normal.Mul(c.Pn).Add(tangent.Mul(c.Pt))
			applyImpulsePair(a.Body1, a.Body2, c.R1, c.R2, impulse)
		} else {
			c.Pn, c.Pt, c.Pnb = 0, 0, 0
		}
	}
}

// ApplyImpulse runs one Gauss-Seidel sweep over the manifold: for each
// contact it resolves the normal (non-penetration, with the Baumgarte bias
// folded in) and tangent (Coulomb friction) constraints in turn, clamping the
// accumulated normal impulse to be non-negative and the accumulated
// tangent impulse to the friction cone.
func (a *Arbiter) ApplyImpulse(accumulateImpulses bool) {
	b1, b2 := a.Body1, a.Body2

	for i := 0; i < a.NumContacts; i++ {
		c := &a.Contacts[i]

		c.R1 = c.Position.Sub(b1.Position)
		c.R2 = c.Position.Sub(b2.Position)

		// Relative velocity at contact point.
		dv := b2.Velocity.Add(vec2.CrossSV(b2.AngularVelocity, c.R2)).
			Sub(b1.Velocity).
			Sub(vec2.CrossSV(b1.AngularVelocity, c.R1))

		vn := vec2.Dot(dv, c.Normal)

		dPn := c.MassNormal * (-vn + c.Bias)
		if accumulateImpulses {
			pn0 := c.Pn
			c.Pn = max32(pn0+dPn, 0)
			dPn = c.Pn - pn0
		} else {
			dPn = max32(dPn, 0)
		}

		pImpulse := c.Normal.Mul(dPn)
		applyImpulsePair(b1, b2, c.R1, c.R2, pImpulse)

		// Friction.
		dv = b2.Velocity.Add(vec2.CrossSV(b2.AngularVelocity, c.R2)).
			Sub(b1.Velocity).
			Sub(vec2.CrossSV(b1.AngularVelocity, c.R1))

		tangent := vec2.CrossVS(c.Normal, 1)
		vt := vec2.Dot(dv, tangent)
		dPt := c.MassTangent * -vt

		if accumulateImpulses {
			maxPt := a.Friction * c.Pn
			pt0 := c.Pt
			c.Pt = vec2.ClampF(pt0+dPt, -maxPt, maxPt)
			dPt = c.Pt - pt0
		} else {
			maxPt := a.Friction * dPn
			dPt = vec2.ClampF(dPt, -maxPt, maxPt)
		}

		tImpulse := tangent.Mul(dPt)
		applyImpulsePair(b1, b2, c.R1, c.R2, tImpulse)
	}
}

// applyImpulsePair applies -impulse at r1 on body1 and impulse at r2 on
// body2, updating both linear and angular velocity.
func applyImpulsePair(body1, body2 *body.Body, r1, r2 vec2.Vec2, impulse vec2.Vec2) {
	body1.Velocity = body1.Velocity.Sub(impulse.Mul(body1.InvMass))
	body1.AngularVelocity -= body1.InvI * vec2.Cross(r1, impulse)

	body2.Velocity = body2.Velocity.Add(impulse.Mul(body2.InvMass))
	body2.AngularVelocity += body2.InvI * vec2.Cross(r2, impulse)
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
