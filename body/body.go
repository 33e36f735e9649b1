// Package body holds the rigid body state obb2d's World steps: pose,
// velocity, mass/inertia, and the per-step force accumulator. It is
// intentionally concrete rather than shape-polymorphic since this engine
// only ever simulates axis-aligned-in-local-frame boxes.
package body

import (
	"math"

	"github.com/google/uuid"

	"github.com/vectrix2d/obb2d/vec2"
)

// Body is one rigid body in world space. It is externally owned: the World
// borrows bodies by reference and never frees them.
type Body struct {
	// UID is a stable identity assigned at construction, independent of the
	// index World.AddBody hands out, so an external renderer or debugger
	// can label a body across frames (or across a serialized snapshot)
	// without relying on pointer identity.
	UID uuid.UUID

	Position vec2.Vec2
	Rotation float32

	Velocity        vec2.Vec2
	AngularVelocity float32

	Force  vec2.Vec2
	Torque float32

	// Width holds the full extents of the box in the body's local frame;
	// half-extents are Width/2.
	Width vec2.Vec2

	// Friction is in [0, 1].
	Friction float32

	Mass, InvMass float32
	I, InvI       float32
}

// New returns a body at the origin with friction 0 and zero mass data.
// Callers must follow up with Set to give it a size and mass before adding
// it to a World.
func New() *Body {
	return &Body{UID: uuid.New()}
}

// Set assigns the body's box extents and mass, recomputing the derived
// inertia and inverse mass/inertia. Passing mass = +Inf makes the body
// static: invMass and invI are both zero, so forces and impulses never
// move it.
func (b *Body) Set(width vec2.Vec2, mass float32) {
	b.Width = width
	b.Mass = mass

	if mass < math.MaxFloat32 {
		b.InvMass = 1 / mass
	} else {
		b.InvMass = 0
	}

	b.I = mass * (width.X()*width.X() + width.Y()*width.Y()) / 12
	if b.InvMass != 0 && b.I > 0 {
		b.InvI = 1 / b.I
	} else {
		b.InvI = 0
	}
}

// AddForce accumulates a world-space force to be integrated on the next
// World.Step.
func (b *Body) AddForce(f vec2.Vec2) {
	b.Force = b.Force.Add(f)
}

// IsStatic reports whether the body has infinite mass (invMass == 0).
func (b *Body) IsStatic() bool {
	return b.InvMass == 0
}
