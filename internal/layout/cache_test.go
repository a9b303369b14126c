package layout

import (
	"testing"

	"github.com/jasonmcghee/texteditorcore/internal/coords"
	"github.com/jasonmcghee/texteditorcore/internal/fontsys"
	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
	"github.com/stretchr/testify/require"
)

func testHub() *coords.Hub {
	h := coords.NewHub()
	h.AttachFontSystem(fontsys.NewMonospace())
	h.ViewportWidth = 400
	h.ViewportHeight = 100
	return h
}

func TestRebuildEmitsOneSyntheticNewlinePerLine(t *testing.T) {
	tree := sumtree.FromString("ab\ncd")
	h := testHub()
	c := NewCache()
	c.Rebuild(tree, h, h.FontSystem)

	// line 0: "ab" -> 2 glyphs + 1 synthetic newline = 3
	// line 1: "cd" -> 2 glyphs + 1 synthetic newline = 3
	require.Len(t, c.Glyphs(), 6)
	require.Len(t, c.Lines(), 2)

	require.Equal(t, '\n', c.Glyphs()[2].Char)
	require.EqualValues(t, 2, c.Glyphs()[2].CharByteOffset)

	require.Equal(t, '\n', c.Glyphs()[5].Char)
	require.EqualValues(t, 5, c.Glyphs()[5].CharByteOffset)
}

func TestSyntheticNewlineGlyphSitsAfterLineContent(t *testing.T) {
	tree := sumtree.FromString("abc\nd")
	h := testHub()
	c := NewCache()
	c.Rebuild(tree, h, h.FontSystem)

	// line 0: "abc" -> 3 glyphs + synthetic newline at index 3
	lastContentGlyph := c.Glyphs()[2]
	eolGlyph := c.Glyphs()[3]
	require.Equal(t, '\n', eolGlyph.Char)
	require.Greater(t, eolGlyph.LayoutX, lastContentGlyph.LayoutX)
}

func TestRebuildIsNoOpWhenVersionUnchanged(t *testing.T) {
	tree := sumtree.FromString("hello")
	h := testHub()
	c := NewCache()
	c.Rebuild(tree, h, h.FontSystem)
	firstVersion := c.LayoutVersion()

	c.Rebuild(tree, h, h.FontSystem)
	require.Equal(t, firstVersion, c.LayoutVersion())
}

func TestStyleBuffersResizeAndZeroFillOnRebuild(t *testing.T) {
	tree := sumtree.FromString("abc")
	h := testHub()
	c := NewCache()
	c.Rebuild(tree, h, h.FontSystem)

	require.Len(t, c.StyleBuffer(), len(c.Glyphs()))
	require.Len(t, c.RelPosBuffer(), len(c.Glyphs()))
	for _, v := range c.StyleBuffer() {
		require.Zero(t, v)
	}
}

func TestUpdateVisibleRangeAndQuery(t *testing.T) {
	tree := sumtree.FromString("line0\nline1\nline2\nline3\nline4")
	h := testHub()
	h.Metrics.LineHeight = 10
	h.ViewportHeight = 25
	c := NewCache()
	c.Rebuild(tree, h, h.FontSystem)
	c.UpdateVisibleRange(h, tree)

	start, end := c.VisibleLineRange()
	require.GreaterOrEqual(t, start, 0)
	require.GreaterOrEqual(t, end, start)

	glyphs := c.VisibleGlyphsWithStyle()
	require.NotEmpty(t, glyphs)
	for _, g := range glyphs {
		require.Zero(t, g.TokenID)
	}
}

func TestRebuildWithoutFontSystemStillEmitsLineBoundaryGlyphs(t *testing.T) {
	tree := sumtree.FromString("xy\nz")
	h := coords.NewHub()
	c := NewCache()
	c.Rebuild(tree, h, nil)

	// No font system means no shaped per-character glyphs, but each line
	// still gets its synthetic boundary glyph.
	require.Len(t, c.Glyphs(), 2)
	require.Len(t, c.Lines(), 2)
}
