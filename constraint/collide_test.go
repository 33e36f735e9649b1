package constraint

import (
	"math"
	"testing"

	"github.com/vectrix2d/obb2d/body"
	"github.com/vectrix2d/obb2d/vec2"
)

func newBox(pos vec2.Vec2, rot float32, width vec2.Vec2, mass float32) *body.Body {
	b := body.New()
	b.Set(width, mass)
	b.Position = pos
	b.Rotation = rot
	return b
}

func TestCollideSeparatedBoxesYieldsNoContacts(t *testing.T) {
	a := newBox(vec2.Vec2{0, 0}, 0, vec2.Vec2{1, 1}, 1)
	b := newBox(vec2.Vec2{10, 0}, 0, vec2.Vec2{1, 1}, 1)

	_, n := Collide(a, b)
	if n != 0 {
		t.Fatalf("numContacts = %d, want 0", n)
	}
}

func TestCollideOverlappingAlignedBoxesYieldsTwoContacts(t *testing.T) {
	a := newBox(vec2.Vec2{0, 0}, 0, vec2.Vec2{2, 2}, 1)
	b := newBox(vec2.Vec2{1.5, 0}, 0, vec2.Vec2{2, 2}, 1)

	contacts, n := Collide(a, b)
	if n != 2 {
		t.Fatalf("numContacts = %d, want 2", n)
	}
	for i := 0; i < n; i++ {
		if contacts[i].Separation > 0 {
			t.Errorf("contact %d separation = %v, want <= 0", i, contacts[i].Separation)
		}
	}
	if contacts[0].Normal.X() <= 0 {
		t.Errorf("normal = %v, want to point from A toward B (+X)", contacts[0].Normal)
	}
}

func TestCollideRestingBoxOnGroundYieldsTwoContactsAlongY(t *testing.T) {
	ground := newBox(vec2.Vec2{0, -0.55}, 0, vec2.Vec2{20, 1}, math.MaxFloat32)
	box := newBox(vec2.Vec2{0, 0}, 0, vec2.Vec2{1, 1}, 1)

	contacts, n := Collide(ground, box)
	if n != 2 {
		t.Fatalf("numContacts = %d, want 2", n)
	}
	if contacts[0].Normal.Y() <= 0 {
		t.Errorf("normal = %v, want to point up from ground toward box", contacts[0].Normal)
	}
}

func TestCollideFeatureIDsAreStableAcrossIdenticalCalls(t *testing.T) {
	a := newBox(vec2.Vec2{0, 0}, 0, vec2.Vec2{2, 2}, 1)
	b := newBox(vec2.Vec2{1.5, 0.2}, 0.05, vec2.Vec2{2, 2}, 1)

	c1, n1 := Collide(a, b)
	c2, n2 := Collide(a, b)

	if n1 != n2 {
		t.Fatalf("numContacts differ across identical calls: %d vs %d", n1, n2)
	}
	for i := 0; i < n1; i++ {
		if c1[i].Feature != c2[i].Feature {
			t.Errorf("contact %d feature = %+v, want %+v", i, c2[i].Feature, c1[i].Feature)
		}
	}
}

func TestCollideDeepPenetrationStillProducesFiniteContacts(t *testing.T) {
	a := newBox(vec2.Vec2{0, 0}, 0, vec2.Vec2{4, 4}, 1)
	b := newBox(vec2.Vec2{0.1, 0.1}, 0, vec2.Vec2{4, 4}, 1)

	contacts, n := Collide(a, b)
	if n == 0 {
		t.Fatalf("expected overlap to be detected for near-coincident boxes")
	}
	for i := 0; i < n; i++ {
		if math.IsNaN(float64(contacts[i].Separation)) {
			t.Errorf("contact %d separation is NaN", i)
		}
	}
}
