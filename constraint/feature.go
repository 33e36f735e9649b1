package constraint

// Edge numbers around a box in its local frame, per spec: e1 = +y, e2 = -x,
// e3 = -y, e4 = +x. NoEdge is the "no edge" sentinel.
const (
	NoEdge Edge = 0
	Edge1  Edge = iota
	Edge2
	Edge3
	Edge4
)

// Edge identifies one of a box's four local edges, or NoEdge.
type Edge int8

// FeaturePair is a stable fingerprint of which pair of box edges produced a
// contact point: the in/out edge that clipped each side of the contact on
// body A and on body B. Two contacts across frames are "the same" contact
// iff all four fields compare equal; this module does not rely on any
// particular bit layout to test that (see spec's design notes on bit-pun
// equality), just ordinary struct equality.
type FeaturePair struct {
	InEdge1, OutEdge1 Edge
	InEdge2, OutEdge2 Edge
}

// flip swaps the edge1/edge2 halves of the feature pair in place. Used when
// the reference face came from body B, since contacts are always reported
// as "edges on A / edges on B".
func (fp *FeaturePair) flip() {
	fp.InEdge1, fp.InEdge2 = fp.InEdge2, fp.InEdge1
	fp.OutEdge1, fp.OutEdge2 = fp.OutEdge2, fp.OutEdge1
}
