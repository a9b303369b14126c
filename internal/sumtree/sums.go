package sumtree

// Sums is the aggregate carried by every node in the tree: total bytes,
// total newlines, the bounding box of any embedded widgets, and the
// maximum widget z-index in the subtree. Sums on any node must always
// equal the recomputed aggregate of its children or spans.
type Sums struct {
	Bytes        uint64
	Newlines     uint32
	BoundsWidth  float64
	BoundsHeight float64
	MaxZ         int32
}

// Add returns the pointwise combination of two Sums, as when concatenating
// two adjacent subtrees.
func (s Sums) Add(o Sums) Sums {
	out := Sums{
		Bytes:    s.Bytes + o.Bytes,
		Newlines: s.Newlines + o.Newlines,
		MaxZ:     s.MaxZ,
	}
	if o.MaxZ > out.MaxZ {
		out.MaxZ = o.MaxZ
	}
	if o.BoundsWidth > s.BoundsWidth {
		out.BoundsWidth = o.BoundsWidth
	} else {
		out.BoundsWidth = s.BoundsWidth
	}
	out.BoundsHeight = s.BoundsHeight + o.BoundsHeight
	return out
}
