package constraint

import (
	"github.com/vectrix2d/obb2d/body"
	"github.com/vectrix2d/obb2d/vec2"
)

// separating axis choice, in order of preference.
type axis int

const (
	faceAX axis = iota
	faceAY
	faceBX
	faceBY
)

// relativeTol and absoluteTol bias axis selection toward whichever axis was
// already in effect, so the chosen axis doesn't flicker between two nearly
// equal separations at rest. Keep these exact: removing the hysteresis
// reintroduces jitter (see spec's design notes).
const (
	relativeTol = 0.95
	absoluteTol = 0.01
)

// clipVertex is one point carried through ClipSegmentToLine: a position
// plus the feature tag it would contribute if it survives clipping.
type clipVertex struct {
	v  vec2.Vec2
	fp FeaturePair
}

// clipSegmentToLine clips the two-point segment vIn against the half-plane
// normal.v <= offset, tagging any newly created intersection vertex with
// clipEdge. It returns the 0-2 surviving vertices.
func clipSegmentToLine(vIn [2]clipVertex, normal vec2.Vec2, offset float32, clipEdge Edge) ([2]clipVertex, int) {
	var vOut [2]clipVertex
	numOut := 0

	d0 := vec2.Dot(normal, vIn[0].v) - offset
	d1 := vec2.Dot(normal, vIn[1].v) - offset

	if d0 <= 0 {
		vOut[numOut] = vIn[0]
		numOut++
	}
	if d1 <= 0 {
		vOut[numOut] = vIn[1]
		numOut++
	}

	if d0*d1 < 0 {
		interp := d0 / (d0 - d1)
		v := vIn[0].v.Add(vIn[1].v.Sub(vIn[0].v).Mul(interp))
		var fp FeaturePair
		if d0 > 0 {
			fp = vIn[0].fp
			fp.InEdge1 = clipEdge
			fp.InEdge2 = NoEdge
		} else {
			fp = vIn[1].fp
			fp.OutEdge1 = clipEdge
			fp.OutEdge2 = NoEdge
		}
		vOut[numOut] = clipVertex{v: v, fp: fp}
		numOut++
	}

	return vOut, numOut
}

// computeIncidentEdge picks the edge of the incident box (half-extents h,
// position pos, rotation rot) most antiparallel to the reference face
// normal, and returns its two endpoints tagged with the in2/out2 feature
// table from spec section 4.1 step 7.
func computeIncidentEdge(h, pos vec2.Vec2, rot vec2.Mat22, normal vec2.Vec2) [2]clipVertex {
	n := rot.Transpose().Mul(normal).Mul(-1)
	nAbs := vec2.AbsV(n)

	var c [2]clipVertex
	if nAbs.X() > nAbs.Y() {
		if vec2.Sign(n.X()) > 0 {
			c[0].v = vec2.Vec2{h.X(), -h.Y()}
			c[0].fp = FeaturePair{InEdge2: Edge3, OutEdge2: Edge4}
			c[1].v = vec2.Vec2{h.X(), h.Y()}
			c[1].fp = FeaturePair{InEdge2: Edge4, OutEdge2: Edge1}
		} else {
			c[0].v = vec2.Vec2{-h.X(), h.Y()}
			c[0].fp = FeaturePair{InEdge2: Edge1, OutEdge2: Edge2}
			c[1].v = vec2.Vec2{-h.X(), -h.Y()}
			c[1].fp = FeaturePair{InEdge2: Edge2, OutEdge2: Edge3}
		}
	} else {
		if vec2.Sign(n.Y()) > 0 {
			c[0].v = vec2.Vec2{h.X(), h.Y()}
			c[0].fp = FeaturePair{InEdge2: Edge4, OutEdge2: Edge1}
			c[1].v = vec2.Vec2{-h.X(), h.Y()}
			c[1].fp = FeaturePair{InEdge2: Edge1, OutEdge2: Edge2}
		} else {
			c[0].v = vec2.Vec2{-h.X(), -h.Y()}
			c[0].fp = FeaturePair{InEdge2: Edge2, OutEdge2: Edge3}
			c[1].v = vec2.Vec2{h.X(), -h.Y()}
			c[1].fp = FeaturePair{InEdge2: Edge3, OutEdge2: Edge4}
		}
	}

	c[0].v = pos.Add(rot.Mul(c[0].v))
	c[1].v = pos.Add(rot.Mul(c[1].v))
	return c
}

// Collide runs the separating-axis test between bodyA and bodyB and, if
// they overlap, clips the incident box's edge against the reference
// face's side planes to produce 0-2 contacts. The returned normal always
// points from bodyA toward bodyB.
func Collide(bodyA, bodyB *body.Body) ([MaxPoints]Contact, int) {
	var contacts [MaxPoints]Contact

	hA := bodyA.Width.Mul(0.5)
	hB := bodyB.Width.Mul(0.5)

	posA, posB := bodyA.Position, bodyB.Position
	rotA, rotB := vec2.FromAngle(bodyA.Rotation), vec2.FromAngle(bodyB.Rotation)
	rotAT, rotBT := rotA.Transpose(), rotB.Transpose()

	dp := posB.Sub(posA)
	dA := rotAT.Mul(dp)
	dB := rotBT.Mul(dp)

	c := rotAT.MulM(rotB)
	absC := vec2.AbsM(c)
	absCT := absC.Transpose()

	// Box A faces.
	faceA := vec2.AbsV(dA).Sub(hA).Sub(absC.Mul(hB))
	if faceA.X() > 0 || faceA.Y() > 0 {
		return contacts, 0
	}

	// Box B faces.
	faceB := vec2.AbsV(dB).Sub(absCT.Mul(hA)).Sub(hB)
	if faceB.X() > 0 || faceB.Y() > 0 {
		return contacts, 0
	}

	chosen := faceAX
	separation := faceA.X()
	normal := rotA.Col1
	if dA.X() <= 0 {
		normal = normal.Mul(-1)
	}

	if faceA.Y() > relativeTol*separation+absoluteTol*hA.Y() {
		chosen = faceAY
		separation = faceA.Y()
		normal = rotA.Col2
		if dA.Y() <= 0 {
			normal = normal.Mul(-1)
		}
	}

	if faceB.X() > relativeTol*separation+absoluteTol*hB.X() {
		chosen = faceBX
		separation = faceB.X()
		normal = rotB.Col1
		if dB.X() <= 0 {
			normal = normal.Mul(-1)
		}
	}

	if faceB.Y() > relativeTol*separation+absoluteTol*hB.Y() {
		chosen = faceBY
		separation = faceB.Y()
		normal = rotB.Col2
		if dB.Y() <= 0 {
			normal = normal.Mul(-1)
		}
	}

	var frontNormal, sideNormal vec2.Vec2
	var incidentEdge [2]clipVertex
	var front, negSide, posSide float32
	var negEdge, posEdge Edge

	switch chosen {
	case faceAX:
		frontNormal = normal
		front = vec2.Dot(posA, frontNormal) + hA.X()
		sideNormal = rotA.Col2
		side := vec2.Dot(posA, sideNormal)
		negSide = -side + hA.Y()
		posSide = side + hA.Y()
		negEdge = Edge3
		posEdge = Edge1
		incidentEdge = computeIncidentEdge(hB, posB, rotB, frontNormal)

	case faceAY:
		frontNormal = normal
		front = vec2.Dot(posA, frontNormal) + hA.Y()
		sideNormal = rotA.Col1
		side := vec2.Dot(posA, sideNormal)
		negSide = -side + hA.X()
		posSide = side + hA.X()
		negEdge = Edge2
		posEdge = Edge4
		incidentEdge = computeIncidentEdge(hB, posB, rotB, frontNormal)

	case faceBX:
		frontNormal = normal.Mul(-1)
		front = vec2.Dot(posB, frontNormal) + hB.X()
		sideNormal = rotB.Col2
		side := vec2.Dot(posB, sideNormal)
		negSide = -side + hB.Y()
		posSide = side + hB.Y()
		negEdge = Edge3
		posEdge = Edge1
		incidentEdge = computeIncidentEdge(hA, posA, rotA, frontNormal)

	case faceBY:
		frontNormal = normal.Mul(-1)
		front = vec2.Dot(posB, frontNormal) + hB.Y()
		sideNormal = rotB.Col1
		side := vec2.Dot(posB, sideNormal)
		negSide = -side + hB.X()
		posSide = side + hB.X()
		negEdge = Edge2
		posEdge = Edge4
		incidentEdge = computeIncidentEdge(hA, posA, rotA, frontNormal)
	}

	clipPoints1, np := clipSegmentToLine(incidentEdge, sideNormal.Mul(-1), negSide, negEdge)
	if np < 2 {
		return contacts, 0
	}

	clipPoints2, np := clipSegmentToLine(clipPoints1, sideNormal, posSide, posEdge)
	if np < 2 {
		return contacts, 0
	}

	numContacts := 0
	for i := 0; i < 2; i++ {
		sep := vec2.Dot(frontNormal, clipPoints2[i].v) - front
		if sep <= 0 {
			feature := clipPoints2[i].fp
			if chosen == faceBX || chosen == faceBY {
				feature.flip()
			}
			contacts[numContacts] = Contact{
				Separation: sep,
				Normal:     normal,
				Position:   clipPoints2[i].v.Sub(frontNormal.Mul(sep)),
				Feature:    feature,
			}
			numContacts++
		}
	}

	return contacts, numContacts
}
