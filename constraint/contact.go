package constraint

import "github.com/vectrix2d/obb2d/vec2"

// MaxPoints is the maximum number of contact points in a manifold between
// two boxes.
const MaxPoints = 2

// Contact is one point of a two-box contact manifold.
type Contact struct {
	// Position is the world-space contact point, snapped onto the
	// reference face.
	Position vec2.Vec2
	// Normal is the world-space unit vector from body A toward body B.
	Normal vec2.Vec2

	// R1, R2 are offsets from each body's center to Position, set in
	// PreStep.
	R1, R2 vec2.Vec2

	// Separation is the signed overlap; negative means penetrating.
	Separation float32

	// Pn, Pt, Pnb are the accumulated normal, tangent, and positional-bias
	// normal impulses, carried across steps by warm starting.
	Pn, Pt, Pnb float32

	// MassNormal, MassTangent, Bias are solver constants computed in
	// PreStep.
	MassNormal, MassTangent, Bias float32

	// Feature identifies which pair of box edges produced this contact.
	Feature FeaturePair
}
