// Package layout caches shaped glyph positions keyed by document version,
// decoupled from per-glyph styling so a syntax update never forces a
// layout rebuild (see internal/style for the styling half).
package layout

// GlyphPosition is one shaped character: its rune, its position in layout
// and physical space, its atlas texture coordinates, and the document
// byte offset it corresponds to (used for cursor placement and
// style-buffer alignment). Synthetic newline glyphs carry a zero-size
// texture rect.
type GlyphPosition struct {
	Char           rune
	LayoutX        float64
	LayoutY        float64
	PhysicalX      float64
	PhysicalY      float64
	TexX, TexY     float64
	TexW, TexH     float64
	CharByteOffset uint64
}

// LineInfo records one line's extent in both byte and glyph-index space,
// plus its vertical position and height.
type LineInfo struct {
	LineNumber uint32
	ByteStart  uint64
	ByteEnd    uint64
	CharStart  int
	CharEnd    int
	YPosition  float64
	Height     float64
}

// GlyphWithStyle pairs a glyph with the style-buffer entries the style
// package has written for it.
type GlyphWithStyle struct {
	GlyphPosition
	TokenID uint16
	RelPos  float32
}
