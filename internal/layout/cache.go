package layout

import (
	"github.com/jasonmcghee/texteditorcore/internal/coords"
	"github.com/jasonmcghee/texteditorcore/internal/fontsys"
	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
)

// Cache holds the rebuilt-on-text-change glyph/line projections and the
// per-glyph style buffers the style package writes into. Rebuild only
// runs when the tree's version differs from the cache's layoutVersion;
// everything else (UpdateVisibleRange, VisibleGlyphsWithStyle) is a pure
// read against the cached arrays.
type Cache struct {
	// MarginX offsets every glyph's layout-space x by a fixed amount,
	// e.g. for a gutter.
	MarginX float64

	layoutVersion uint64
	built         bool

	glyphs []GlyphPosition
	lines  []LineInfo

	styleBuffer []uint16
	relPos      []float32

	visibleLineStart int
	visibleLineEnd   int
	visibleChars     []int
}

// NewCache returns an empty, unrebuilt Cache.
func NewCache() *Cache {
	return &Cache{}
}

// LayoutVersion reports the tree version this cache was last rebuilt for.
func (c *Cache) LayoutVersion() uint64 { return c.layoutVersion }

// Glyphs returns the full ordered glyph sequence from the last rebuild.
func (c *Cache) Glyphs() []GlyphPosition { return c.glyphs }

// Lines returns the full ordered line sequence from the last rebuild.
func (c *Cache) Lines() []LineInfo { return c.lines }

// StyleBuffer returns the per-glyph token-ID buffer, resized to match
// Glyphs() on every rebuild. The style package writes into this slice
// in place.
func (c *Cache) StyleBuffer() []uint16 { return c.styleBuffer }

// RelPosBuffer returns the per-glyph intra-token relative-position
// buffer, resized to match Glyphs() on every rebuild.
func (c *Cache) RelPosBuffer() []float32 { return c.relPos }

// NeedsRebuild reports whether tree's version differs from the cache's
// last-built version.
func (c *Cache) NeedsRebuild(tree *sumtree.Tree) bool {
	return !c.built || tree.Version() != c.layoutVersion
}

// Rebuild walks the document's lines in order, shaping each via fs (the
// attached font system; may be nil, in which case glyphs carry zero
// position and only CharByteOffset is meaningful) and projecting physical
// shaped positions into layout space by dividing by hub.ScaleFactor and
// offsetting by (MarginX, running y). Emits a synthetic zero-width glyph
// per line boundary (real newline or, for the last line, end of
// document) so cursor placement at line ends is well-defined. No-op if
// tree's version already matches the cache.
func (c *Cache) Rebuild(tree *sumtree.Tree, hub *coords.Hub, fs fontsys.System) {
	if !c.NeedsRebuild(tree) {
		return
	}

	c.glyphs = c.glyphs[:0]
	c.lines = c.lines[:0]

	scale := hub.ScaleFactor
	if scale == 0 {
		scale = 1
	}
	y := 0.0
	lineCount := tree.LineCount()

	for line := uint32(0); line <= lineCount; line++ {
		start, ok := tree.LineToByte(line)
		if !ok {
			break
		}
		end := tree.FindLineEndAt(start)
		text := tree.GetTextSlice(int(start), int(end))

		var shaped fontsys.ShapedLine
		if fs != nil {
			shaped = fs.LayoutTextScaled(text, hub.Metrics.FontSize, scale)
		}

		charStart := len(c.glyphs)
		byteOff := start
		for _, g := range shaped.Glyphs {
			lx := g.X/scale + c.MarginX
			ly := g.Y/scale + y
			c.glyphs = append(c.glyphs, GlyphPosition{
				Char:           g.Char,
				LayoutX:        lx,
				LayoutY:        ly,
				PhysicalX:      lx * scale,
				PhysicalY:      ly * scale,
				TexX:           g.X, // placeholder basis until a real atlas packer assigns rects
				TexY:           g.Y,
				TexW:           g.Width,
				TexH:           g.Height,
				CharByteOffset: byteOff,
			})
			byteOff += byteLen(g.Char)
		}

		eolX := shaped.Width/scale + c.MarginX
		c.glyphs = append(c.glyphs, GlyphPosition{
			Char:           '\n',
			LayoutX:        eolX,
			LayoutY:        y,
			PhysicalX:      eolX * scale,
			PhysicalY:      y * scale,
			CharByteOffset: end,
		})
		charEnd := len(c.glyphs)

		c.lines = append(c.lines, LineInfo{
			LineNumber: line,
			ByteStart:  start,
			ByteEnd:    end,
			CharStart:  charStart,
			CharEnd:    charEnd,
			YPosition:  y,
			Height:     hub.Metrics.LineHeight,
		})
		y += hub.Metrics.LineHeight
	}

	c.styleBuffer = make([]uint16, len(c.glyphs))
	c.relPos = make([]float32, len(c.glyphs))
	c.layoutVersion = tree.Version()
	c.built = true
}

func byteLen(r rune) uint64 {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}
