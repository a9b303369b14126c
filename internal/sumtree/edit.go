package sumtree

import "github.com/jasonmcghee/texteditorcore/internal/span"

// Insert produces a new Tree with content inserted at byte offset pos,
// reusing every subtree untouched by the edit. pos is clamped to the
// document's bounds.
func (t *Tree) Insert(pos uint64, content span.Span) *Tree {
	if pos > t.ByteCount() {
		pos = t.ByteCount()
	}
	result := insertAt(t.root, pos, content)
	return t.withRoot(collapseSingle(result))
}

// Delete produces a new Tree with the bytes in [start, end) removed.
// Widget spans wholly inside the range are removed; partially overlapping
// text spans are truncated. Underfull siblings left behind by the
// deletion are merged with a neighbor when the combined size still fits
// within MaxSpans.
func (t *Tree) Delete(start, end uint64) *Tree {
	total := t.ByteCount()
	if end > total {
		end = total
	}
	if start > end {
		start, end = end, start
	}
	result := deleteAt(t.root, start, end)
	return t.withRoot(result[0])
}

// Replace deletes [start, end) and inserts content at start, as a single
// structural-sharing operation (equivalent in effect to Delete then
// Insert, per the document model's Edit semantics).
func (t *Tree) Replace(start, end uint64, content span.Span) *Tree {
	total := t.ByteCount()
	if end > total {
		end = total
	}
	if start > end {
		start, end = end, start
	}
	deleted := deleteAt(t.root, start, end)
	inserted := insertAt(deleted[0], start, content)
	return t.withRoot(collapseSingle(inserted))
}

func collapseSingle(nodes []*Node) *Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	return newInternal(nodes)
}

// insertAt recursively inserts content at a position local to node's
// subtree, returning one node (no split) or two sibling nodes (split) of
// the same level as node, for the caller to splice into its own children.
func insertAt(node *Node, pos uint64, content span.Span) []*Node {
	if node.IsLeaf() {
		return leafInsert(node, int(pos), content)
	}

	children := node.Children()
	if len(children) == 0 {
		return leafInsert(newLeaf(nil), 0, content)
	}

	off := uint64(0)
	idx := len(children) - 1
	for i, child := range children {
		l := child.Sums().Bytes
		if off+l >= pos {
			idx = i
			break
		}
		off += l
	}
	localPos := pos - off
	replacement := insertAt(children[idx], localPos, content)

	newChildren := make([]*Node, 0, len(children)+1)
	newChildren = append(newChildren, children[:idx]...)
	newChildren = append(newChildren, replacement...)
	newChildren = append(newChildren, children[idx+1:]...)

	if len(newChildren) > MaxSpans {
		wrapped := splitInternal(newChildren)
		return wrapped.Children()
	}
	return []*Node{newInternal(newChildren)}
}

// leafInsert inserts content at a byte offset local to leaf, merging into
// an adjacent text span when the insertion lands exactly at that span's
// end (critical for avoiding fragmentation under sequential typing).
func leafInsert(leaf *Node, localPos int, content span.Span) []*Node {
	spans := leaf.Spans()

	idx := len(spans)
	spanOff := 0
	off := 0
	for i, sp := range spans {
		l := sp.Len()
		if off+l >= localPos {
			idx = i
			spanOff = localPos - off
			break
		}
		off += l
	}

	var newSpans []span.Span
	switch {
	case idx == len(spans):
		// appending after every span in the leaf
		if content.IsText() && len(spans) > 0 && spans[len(spans)-1].IsText() {
			merged := spans[len(spans)-1].Merge(content)
			newSpans = append(append([]span.Span(nil), spans[:len(spans)-1]...), merged)
		} else {
			newSpans = append(append([]span.Span(nil), spans...), content)
		}
	case spanOff == 0:
		newSpans = append(append([]span.Span(nil), spans[:idx]...), content)
		newSpans = append(newSpans, spans[idx:]...)
	case spanOff == spans[idx].Len():
		if content.IsText() && spans[idx].IsText() {
			merged := spans[idx].Merge(content)
			newSpans = append(append([]span.Span(nil), spans[:idx]...), merged)
			newSpans = append(newSpans, spans[idx+1:]...)
		} else {
			newSpans = append(append([]span.Span(nil), spans[:idx+1]...), content)
			newSpans = append(newSpans, spans[idx+1:]...)
		}
	default:
		left, right := spans[idx].SplitAt(spanOff)
		newSpans = append(append([]span.Span(nil), spans[:idx]...), left, content, right)
		newSpans = append(newSpans, spans[idx+1:]...)
	}

	if len(newSpans) > MaxSpans {
		wrapped := splitLeaf(newSpans)
		return wrapped.Children()
	}
	return []*Node{newLeaf(newSpans)}
}

// deleteAt recursively removes [start, end) (local to node's subtree),
// returning a single replacement node.
func deleteAt(node *Node, start, end uint64) []*Node {
	if node.IsLeaf() {
		var newSpans []span.Span
		off := uint64(0)
		for _, sp := range node.Spans() {
			l := uint64(sp.Len())
			if sp.IsWidget() {
				if off >= start && off < end {
					// dropped: widget lies inside the deleted range
				} else {
					newSpans = append(newSpans, sp)
				}
				continue
			}
			spanStart, spanEnd := off, off+l
			switch {
			case spanEnd <= start || spanStart >= end:
				newSpans = append(newSpans, sp)
			default:
				lo := int64(0)
				if int64(start)-int64(spanStart) > 0 {
					lo = int64(start) - int64(spanStart)
				}
				hi := int64(l)
				if int64(end)-int64(spanStart) < hi {
					hi = int64(end) - int64(spanStart)
				}
				b := sp.Bytes()
				if lo > 0 {
					newSpans = append(newSpans, span.NewText(append([]byte(nil), b[:lo]...)))
				}
				if hi < int64(l) {
					newSpans = append(newSpans, span.NewText(append([]byte(nil), b[hi:]...)))
				}
			}
			off += l
		}
		return []*Node{newLeaf(newSpans)}
	}

	var newChildren []*Node
	off := uint64(0)
	for _, child := range node.Children() {
		l := child.Sums().Bytes
		childStart, childEnd := off, off+l
		if childEnd <= start || childStart >= end {
			newChildren = append(newChildren, child)
		} else {
			lo := uint64(0)
			if start > childStart {
				lo = start - childStart
			}
			hi := l
			if end < childEnd {
				hi = end - childStart
			}
			newChildren = append(newChildren, deleteAt(child, lo, hi)...)
		}
		off += l
	}
	newChildren = mergeAdjacent(newChildren)
	return []*Node{newInternal(newChildren)}
}

// mergeAdjacent combines neighboring underfull nodes of the same kind when
// their combined span/child count still fits within MaxSpans, the
// rebalancing step that follows every deletion.
func mergeAdjacent(nodes []*Node) []*Node {
	if len(nodes) < 2 {
		return nodes
	}
	out := make([]*Node, 0, len(nodes))
	i := 0
	for i < len(nodes) {
		cur := nodes[i]
		if i+1 < len(nodes) {
			next := nodes[i+1]
			if cur.kind == next.kind && underfull(cur) && underfull(next) &&
				nodeCount(cur)+nodeCount(next) <= MaxSpans {
				out = append(out, mergeNodes(cur, next))
				i += 2
				continue
			}
		}
		out = append(out, cur)
		i++
	}
	return out
}

func underfull(n *Node) bool { return nodeCount(n) < MaxSpans/2 }

func nodeCount(n *Node) int {
	if n.IsLeaf() {
		return len(n.Spans())
	}
	return len(n.Children())
}

func mergeNodes(a, b *Node) *Node {
	if a.IsLeaf() {
		spans := make([]span.Span, 0, len(a.Spans())+len(b.Spans()))
		spans = append(spans, a.Spans()...)
		spans = append(spans, b.Spans()...)
		return newLeaf(spans)
	}
	children := make([]*Node, 0, len(a.Children())+len(b.Children()))
	children = append(children, a.Children()...)
	children = append(children, b.Children()...)
	return newInternal(children)
}
