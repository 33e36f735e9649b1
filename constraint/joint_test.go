package constraint

import (
	"math"
	"testing"

	"github.com/vectrix2d/obb2d/vec2"
)

func TestJointSetComputesLocalAnchorsFromWorldPoint(t *testing.T) {
	b1 := newBox(vec2.Vec2{0, 0}, 0, vec2.Vec2{1, 1}, 1)
	b2 := newBox(vec2.Vec2{2, 0}, 0, vec2.Vec2{1, 1}, 1)

	j := NewJoint()
	j.Set(b1, b2, vec2.Vec2{1, 0})

	if !approxVec(j.LocalAnchor1, vec2.Vec2{1, 0}) {
		t.Errorf("LocalAnchor1 = %v, want (1,0)", j.LocalAnchor1)
	}
	if !approxVec(j.LocalAnchor2, vec2.Vec2{-1, 0}) {
		t.Errorf("LocalAnchor2 = %v, want (-1,0)", j.LocalAnchor2)
	}
}

func TestJointPreStepAndApplyImpulsePullsAnchorsTogether(t *testing.T) {
	b1 := newBox(vec2.Vec2{0, 0}, 0, vec2.Vec2{1, 1}, math.MaxFloat32)
	b2 := newBox(vec2.Vec2{2, 0}, 0, vec2.Vec2{1, 1}, 1)
	b2.Velocity = vec2.Vec2{0, -3}

	j := NewJoint()
	j.Set(b1, b2, vec2.Vec2{1, 0})

	j.PreStep(60, true, true)
	for i := 0; i < 10; i++ {
		j.ApplyImpulse()
	}

	if b2.Velocity.Y() > -0.5 {
		t.Errorf("expected the joint to still allow some sag, got Velocity.Y = %v", b2.Velocity.Y())
	}
	// The joint should have pulled the anchor offset's Y velocity toward
	// matching body1's (zero), i.e. away from its initial -3.
	if b2.Velocity.Y() < -3 {
		t.Errorf("Velocity.Y = %v, want constraint to reduce downward speed, not increase it", b2.Velocity.Y())
	}
}

func TestJointWarmStartAppliesAccumulatedImpulseOnPreStep(t *testing.T) {
	b1 := newBox(vec2.Vec2{0, 0}, 0, vec2.Vec2{1, 1}, math.MaxFloat32)
	b2 := newBox(vec2.Vec2{2, 0}, 0, vec2.Vec2{1, 1}, 1)

	j := NewJoint()
	j.Set(b1, b2, vec2.Vec2{1, 0})
	j.P = vec2.Vec2{0, 5}

	before := b2.Velocity
	j.PreStep(60, true, false)

	if b2.Velocity == before {
		t.Errorf("expected warm-start impulse to change body2's velocity")
	}
}

func approxVec(a, b vec2.Vec2) bool {
	return approxEqF(a.X(), b.X()) && approxEqF(a.Y(), b.Y())
}
