package sumtree

import "bytes"

// frame records one level of a Cursor's descent: the node being visited,
// the byte/line offset at which that node begins within the whole tree,
// and bookkeeping needed to resume descent from where we left off.
type frame struct {
	node            *Node
	byteOffsetEntry uint64
	lineOffsetEntry uint32
	childIndex      int
}

// Cursor navigates a Tree in O(log n) per seek by descending the sum tree
// and tracking a stack of frames, rather than re-walking from the root for
// every subsequent operation in the same region.
type Cursor struct {
	tree *Tree

	stack []frame

	leaf        *Node
	leafBase    uint64 // byte offset of the leaf's first span
	leafLine    uint32 // line offset of the leaf's first span
	spanIdx     int    // index of the span the cursor currently sits in
	spanOffset  int    // byte offset within that span
	bytePos     uint64
	linePos     uint32
}

// NewCursor creates a cursor positioned at the start of t.
func NewCursor(t *Tree) *Cursor {
	c := &Cursor{tree: t}
	c.SeekByte(0)
	return c
}

// BytePos returns the cursor's current byte offset.
func (c *Cursor) BytePos() uint64 { return c.bytePos }

// LinePos returns the cursor's current line offset (completed newlines
// before the cursor).
func (c *Cursor) LinePos() uint32 { return c.linePos }

// SeekByte descends to the leaf containing byte offset target, choosing at
// each level the first child whose subtree covers it. Clamps to the
// document's bounds.
func (c *Cursor) SeekByte(target uint64) {
	total := c.tree.ByteCount()
	if target > total {
		target = total
	}
	c.stack = c.stack[:0]
	node := c.tree.root
	byteBase, lineBase := uint64(0), uint32(0)
	for !node.IsLeaf() {
		children := node.Children()
		idx := 0
		base := byteBase
		lbase := lineBase
		for i, child := range children {
			sz := child.Sums().Bytes
			if base+sz > target || i == len(children)-1 {
				idx = i
				break
			}
			base += sz
			lbase += child.Sums().Newlines
		}
		c.stack = append(c.stack, frame{node: node, byteOffsetEntry: byteBase, lineOffsetEntry: lineBase, childIndex: idx})
		byteBase, lineBase = base, lbase
		node = children[idx]
	}
	c.leaf = node
	c.leafBase = byteBase
	c.leafLine = lineBase
	c.locateInLeafByByte(target)
}

func (c *Cursor) locateInLeafByByte(target uint64) {
	off := c.leafBase
	line := c.leafLine
	for i, sp := range c.leaf.Spans() {
		l := uint64(sp.Len())
		if off+l > target || i == len(c.leaf.Spans())-1 {
			c.spanIdx = i
			so := target - off
			if so > l {
				so = l
			}
			c.spanOffset = int(so)
			c.bytePos = off + so
			if sp.IsText() {
				line += countNewlinesUpTo(sp.Bytes(), int(so))
			}
			c.linePos = line
			return
		}
		if sp.IsText() {
			line += sp.Newlines()
		}
		off += l
	}
	// empty leaf
	c.spanIdx = 0
	c.spanOffset = 0
	c.bytePos = off
	c.linePos = line
}

func countNewlinesUpTo(b []byte, n int) uint32 {
	if n > len(b) {
		n = len(b)
	}
	var count uint32
	for _, c := range b[:n] {
		if c == '\n' {
			count++
		}
	}
	return count
}

// SeekLine descends to the start of targetLine using newline sums.
func (c *Cursor) SeekLine(targetLine uint32) {
	total := c.tree.LineCount()
	if targetLine > total {
		targetLine = total
	}
	c.stack = c.stack[:0]
	node := c.tree.root
	byteBase, lineBase := uint64(0), uint32(0)
	for !node.IsLeaf() {
		children := node.Children()
		idx := 0
		base := byteBase
		lbase := lineBase
		for i, child := range children {
			nl := child.Sums().Newlines
			if lbase+nl >= targetLine || i == len(children)-1 {
				idx = i
				break
			}
			base += child.Sums().Bytes
			lbase += nl
		}
		c.stack = append(c.stack, frame{node: node, byteOffsetEntry: byteBase, lineOffsetEntry: lineBase, childIndex: idx})
		byteBase, lineBase = base, lbase
		node = children[idx]
	}
	c.leaf = node
	c.leafBase = byteBase
	c.leafLine = lineBase
	c.locateInLeafByLine(targetLine)
}

func (c *Cursor) locateInLeafByLine(targetLine uint32) {
	off := c.leafBase
	line := c.leafLine
	for i, sp := range c.leaf.Spans() {
		nl := sp.Newlines()
		if line+nl >= targetLine {
			toSkip := targetLine - line
			if toSkip == 0 {
				c.spanIdx = i
				c.spanOffset = 0
				c.bytePos = off
				c.linePos = line
				return
			}
			idx := nthNewlineIndex(sp.Bytes(), int(toSkip))
			if idx >= 0 {
				c.spanIdx = i
				c.spanOffset = idx + 1
				c.bytePos = off + uint64(idx+1)
				c.linePos = targetLine
				return
			}
		}
		off += uint64(sp.Len())
		line += nl
	}
	c.spanIdx = len(c.leaf.Spans())
	if c.spanIdx > 0 {
		c.spanIdx--
		c.spanOffset = c.leaf.Spans()[c.spanIdx].Len()
	}
	c.bytePos = off
	c.linePos = line
}

func nthNewlineIndex(b []byte, n int) int {
	idx := -1
	for i := 0; i < n; i++ {
		rel := bytes.IndexByte(b[idx+1:], '\n')
		if rel < 0 {
			return -1
		}
		idx = idx + 1 + rel
	}
	return idx
}

// advanceLeaf moves the cursor to the next leaf in document order,
// returning false if the cursor is already past the last leaf.
func (c *Cursor) advanceLeaf() bool {
	for len(c.stack) > 0 {
		top := &c.stack[len(c.stack)-1]
		children := top.node.Children()
		if top.childIndex+1 < len(children) {
			top.childIndex++
			byteBase := top.byteOffsetEntry
			lineBase := top.lineOffsetEntry
			for i := 0; i < top.childIndex; i++ {
				byteBase += children[i].Sums().Bytes
				lineBase += children[i].Sums().Newlines
			}
			node := children[top.childIndex]
			for !node.IsLeaf() {
				c.stack = append(c.stack, frame{node: node, byteOffsetEntry: byteBase, lineOffsetEntry: lineBase, childIndex: 0})
				node = node.Children()[0]
			}
			c.leaf = node
			c.leafBase = byteBase
			c.leafLine = lineBase
			c.spanIdx = 0
			c.spanOffset = 0
			c.bytePos = byteBase
			c.linePos = lineBase
			return true
		}
		c.stack = c.stack[:len(c.stack)-1]
	}
	return false
}

// retreatLeaf moves the cursor to the previous leaf in document order,
// returning false if the cursor is already at the first leaf. Mirrors
// advanceLeaf, descending into each stepped-back child's rightmost leaf
// instead of its leftmost.
func (c *Cursor) retreatLeaf() bool {
	for len(c.stack) > 0 {
		top := &c.stack[len(c.stack)-1]
		if top.childIndex > 0 {
			top.childIndex--
			children := top.node.Children()
			byteBase := top.byteOffsetEntry
			lineBase := top.lineOffsetEntry
			for i := 0; i < top.childIndex; i++ {
				byteBase += children[i].Sums().Bytes
				lineBase += children[i].Sums().Newlines
			}
			node := children[top.childIndex]
			for !node.IsLeaf() {
				kids := node.Children()
				last := len(kids) - 1
				cb, lb := byteBase, lineBase
				for i := 0; i < last; i++ {
					cb += kids[i].Sums().Bytes
					lb += kids[i].Sums().Newlines
				}
				c.stack = append(c.stack, frame{node: node, byteOffsetEntry: byteBase, lineOffsetEntry: lineBase, childIndex: last})
				byteBase, lineBase = cb, lb
				node = kids[last]
			}
			c.leaf = node
			c.leafBase = byteBase
			c.leafLine = lineBase
			c.spanIdx = len(node.Spans())
			c.spanOffset = 0
			c.bytePos = byteBase + node.Sums().Bytes
			c.linePos = lineBase + node.Sums().Newlines
			return true
		}
		c.stack = c.stack[:len(c.stack)-1]
	}
	return false
}

// FindByte searches for needle starting at the cursor's current position,
// scanning the current span first and then advancing to subsequent leaves.
// With forward=false it instead searches strictly before the cursor,
// retreating into earlier leaves as needed (findByteBackward); that is the
// path FindPrevNewline uses.
func (c *Cursor) FindByte(needle byte, forward bool) (uint64, bool) {
	if !forward {
		return c.findByteBackward(needle)
	}
	leaf, spanIdx, spanOffset := c.leaf, c.spanIdx, c.spanOffset
	base := c.leafBase
	for {
		spans := leaf.Spans()
		off := base
		for i := 0; i < spanIdx; i++ {
			off += uint64(spans[i].Len())
		}
		for i := spanIdx; i < len(spans); i++ {
			sp := spans[i]
			start := 0
			if i == spanIdx {
				start = spanOffset
			}
			if sp.IsText() && start < len(sp.Bytes()) {
				if rel := bytes.IndexByte(sp.Bytes()[start:], needle); rel >= 0 {
					return off + uint64(start+rel), true
				}
			}
			off += uint64(sp.Len())
		}
		if !c.advanceLeaf() {
			return 0, false
		}
		leaf, spanIdx, spanOffset = c.leaf, 0, 0
		base = c.leafBase
	}
}

// findByteBackward scans the current leaf for needle from the cursor's
// position backward to the leaf's start, then advances to the previous
// leaf and repeats, mirroring FindByte's forward multi-leaf walk.
func (c *Cursor) findByteBackward(needle byte) (uint64, bool) {
	leaf, spanIdx, spanOffset := c.leaf, c.spanIdx, c.spanOffset
	base := c.leafBase
	for {
		spans := leaf.Spans()
		ends := make([]uint64, len(spans)+1)
		for i, sp := range spans {
			ends[i+1] = ends[i] + uint64(sp.Len())
		}
		start := spanIdx
		if start > len(spans)-1 {
			start = len(spans) - 1
		}
		for i := start; i >= 0; i-- {
			sp := spans[i]
			limit := len(sp.Bytes())
			if i == spanIdx {
				limit = spanOffset
			}
			if sp.IsText() && limit > 0 {
				if rel := bytes.LastIndexByte(sp.Bytes()[:limit], needle); rel >= 0 {
					return base + ends[i] + uint64(rel), true
				}
			}
		}
		if !c.retreatLeaf() {
			return 0, false
		}
		leaf, spanIdx, spanOffset = c.leaf, c.spanIdx, c.spanOffset
		base = c.leafBase
	}
}

// ReadText concatenates up to n bytes of text content starting at the
// cursor's current position, advancing across span and leaf boundaries.
func (c *Cursor) ReadText(n int) []byte {
	out := make([]byte, 0, n)
	spanIdx, spanOffset := c.spanIdx, c.spanOffset
	for len(out) < n {
		spans := c.leaf.Spans()
		if spanIdx >= len(spans) {
			if !c.advanceLeaf() {
				break
			}
			spanIdx, spanOffset = 0, 0
			continue
		}
		sp := spans[spanIdx]
		if sp.IsText() {
			b := sp.Bytes()[spanOffset:]
			need := n - len(out)
			if need < len(b) {
				b = b[:need]
			}
			out = append(out, b...)
		}
		spanIdx++
		spanOffset = 0
	}
	return out
}
