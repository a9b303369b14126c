package sumtree

import "github.com/jasonmcghee/texteditorcore/internal/span"

// MaxSpans bounds the fan-out of both leaves (spans) and internal nodes
// (children). A leaf that would exceed it is split into two leaves under
// a new internal node; an internal node with fewer than MaxSpans/2
// children attempts to merge with an adjacent sibling after a deletion.
const MaxSpans = 16

// NodeKind tags a Node as a leaf or an internal node.
type NodeKind uint8

const (
	// KindLeaf holds spans directly.
	KindLeaf NodeKind = iota
	// KindInternal holds child nodes.
	KindInternal
)

// Node is an immutable tree node shared by reference across Tree
// snapshots. Leaves own an ordered span sequence; internal nodes own an
// ordered child sequence. Both precompute Sums over their subtree.
type Node struct {
	kind     NodeKind
	spans    []span.Span
	children []*Node
	sums     Sums
}

// newLeaf builds a leaf node and computes its Sums from its spans.
func newLeaf(spans []span.Span) *Node {
	n := &Node{kind: KindLeaf, spans: spans}
	n.sums = sumSpans(spans)
	return n
}

// newInternal builds an internal node and computes its Sums from its
// children's already-computed Sums.
func newInternal(children []*Node) *Node {
	n := &Node{kind: KindInternal, children: children}
	var sums Sums
	for _, c := range children {
		sums = sums.Add(c.sums)
	}
	n.sums = sums
	return n
}

func sumSpans(spans []span.Span) Sums {
	var sums Sums
	for _, s := range spans {
		if s.IsWidget() {
			w, h := s.Widget().Measure()
			if w > sums.BoundsWidth {
				sums.BoundsWidth = w
			}
			sums.BoundsHeight += h
			if z := s.Widget().ZIndex(); z > sums.MaxZ {
				sums.MaxZ = z
			}
			continue
		}
		sums.Bytes += uint64(s.Len())
		sums.Newlines += s.Newlines()
	}
	return sums
}

// IsLeaf reports whether n is a leaf node.
func (n *Node) IsLeaf() bool { return n.kind == KindLeaf }

// Sums returns the node's precomputed aggregate.
func (n *Node) Sums() Sums { return n.sums }

// Spans returns a leaf's span sequence. Empty for internal nodes.
func (n *Node) Spans() []span.Span { return n.spans }

// Children returns an internal node's child sequence. Empty for leaves.
func (n *Node) Children() []*Node { return n.children }

// splitLeaf splits an overfull leaf's spans into two leaves, wrapped in a
// fresh internal node. Called after edit application appends beyond
// MaxSpans.
func splitLeaf(spans []span.Span) *Node {
	mid := len(spans) / 2
	left := newLeaf(append([]span.Span(nil), spans[:mid]...))
	right := newLeaf(append([]span.Span(nil), spans[mid:]...))
	return newInternal([]*Node{left, right})
}

// splitInternal splits an overfull internal node's children in the same
// way, used when upward propagation of a split causes a parent to exceed
// MaxSpans children.
func splitInternal(children []*Node) *Node {
	mid := len(children) / 2
	left := newInternal(append([]*Node(nil), children[:mid]...))
	right := newInternal(append([]*Node(nil), children[mid:]...))
	return newInternal([]*Node{left, right})
}
