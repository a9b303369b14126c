package layout

import (
	"sort"

	"github.com/jasonmcghee/texteditorcore/internal/coords"
	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
)

// UpdateVisibleRange recomputes visible_lines (via hub's byte-range
// projection) and visible_chars by intersecting with the line cache's
// char ranges.
func (c *Cache) UpdateVisibleRange(hub *coords.Hub, tree *sumtree.Tree) {
	startByte, endByte := hub.VisibleByteRangeWithTree(tree)

	startLine := sort.Search(len(c.lines), func(i int) bool {
		return c.lines[i].ByteEnd >= startByte
	})
	endLine := sort.Search(len(c.lines), func(i int) bool {
		return c.lines[i].ByteStart > endByte
	})
	if endLine > 0 {
		endLine--
	}
	if startLine >= len(c.lines) {
		c.visibleLineStart, c.visibleLineEnd = 0, -1
		c.visibleChars = c.visibleChars[:0]
		return
	}
	if endLine < startLine {
		endLine = startLine
	}

	c.visibleLineStart = startLine
	c.visibleLineEnd = endLine

	lo := c.lines[startLine].CharStart
	hi := c.lines[endLine].CharEnd
	chars := c.visibleChars[:0]
	for i := lo; i < hi && i < len(c.glyphs); i++ {
		chars = append(chars, i)
	}
	c.visibleChars = chars
}

// VisibleLineRange returns the currently visible [startLine, endLine]
// indices, inclusive, as computed by the last UpdateVisibleRange call.
func (c *Cache) VisibleLineRange() (start, end int) {
	return c.visibleLineStart, c.visibleLineEnd
}

// VisibleGlyphsWithStyle returns the projection of glyphs at the visible
// indices, each carrying its token ID and relative position from the
// style buffers.
func (c *Cache) VisibleGlyphsWithStyle() []GlyphWithStyle {
	out := make([]GlyphWithStyle, 0, len(c.visibleChars))
	for _, idx := range c.visibleChars {
		out = append(out, GlyphWithStyle{
			GlyphPosition: c.glyphs[idx],
			TokenID:       c.styleBuffer[idx],
			RelPos:        c.relPos[idx],
		})
	}
	return out
}
