package sumtree

import (
	"strings"
	"sync/atomic"
)

// Tree is an immutable snapshot of document content: a root Node, a
// monotonically increasing version, and a lazily-built, cached flattened
// string projection. A Tree is shared by reference; every edit produces a
// new Tree via structural sharing rather than mutating this one.
type Tree struct {
	root      *Node
	version   uint64
	flattened atomic.Pointer[string]
}

// Version returns the tree's version number. Versions increase
// monotonically as a Document publishes new snapshots; they never repeat.
func (t *Tree) Version() uint64 { return t.version }

// ByteCount returns the total number of content bytes in O(1).
func (t *Tree) ByteCount() uint64 { return t.root.Sums().Bytes }

// LineCount returns the number of completed newlines in O(1). A trailing
// newline starts, but does not complete, an additional line.
func (t *Tree) LineCount() uint32 { return t.root.Sums().Newlines }

// withRoot returns a new Tree sharing everything but the root and a bumped
// version, as produced by edit application.
func (t *Tree) withRoot(root *Node) *Tree {
	return &Tree{root: root, version: t.version + 1}
}

// Restamp returns a Tree with t's content (same root, so no copy is made)
// but a freshly bumped version: max(current, t.version)+1. Used to
// republish a previously captured snapshot (e.g. for undo/redo) without
// ever decreasing the version a Document has already published.
func (t *Tree) Restamp(current uint64) *Tree {
	v := t.version
	if current > v {
		v = current
	}
	return &Tree{root: t.root, version: v + 1}
}

// FlattenToString returns the full document text, building and caching it
// on first use. The cache is invalidated implicitly: a new Tree (produced
// by any edit) starts with a nil cache of its own.
func (t *Tree) FlattenToString() string {
	if cached := t.flattened.Load(); cached != nil {
		return *cached
	}
	var b strings.Builder
	b.Grow(int(t.ByteCount()))
	flattenNode(t.root, &b)
	s := b.String()
	t.flattened.Store(&s)
	return s
}

func flattenNode(n *Node, b *strings.Builder) {
	if n.IsLeaf() {
		for _, sp := range n.Spans() {
			if sp.IsText() {
				b.Write(sp.Bytes())
			}
		}
		return
	}
	for _, c := range n.Children() {
		flattenNode(c, b)
	}
}

// GetTextSlice extracts the text content within [start, end) as a string.
// Out-of-range offsets are clamped; an empty tree returns "".
func (t *Tree) GetTextSlice(start, end int) string {
	total := int(t.ByteCount())
	if start < 0 {
		start = 0
	}
	if end > total {
		end = total
	}
	if start >= end {
		return ""
	}
	var b strings.Builder
	collectRange(t.root, 0, start, end, &b)
	return b.String()
}

func collectRange(n *Node, base int, start, end int, b *strings.Builder) {
	if n.IsLeaf() {
		off := base
		for _, sp := range n.Spans() {
			l := sp.Len()
			if l == 0 {
				continue
			}
			spanStart, spanEnd := off, off+l
			if spanEnd > start && spanStart < end {
				lo := start - spanStart
				if lo < 0 {
					lo = 0
				}
				hi := end - spanStart
				if hi > l {
					hi = l
				}
				b.Write(sp.Bytes()[lo:hi])
			}
			off += l
		}
		return
	}
	off := base
	for _, c := range n.Children() {
		l := int(c.Sums().Bytes)
		if off+l > start && off < end {
			collectRange(c, off, start, end, b)
		}
		off += l
	}
}
