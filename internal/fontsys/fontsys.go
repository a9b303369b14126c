// Package fontsys defines the font-system collaborator contract the
// coordinate hub and layout cache shape text through, plus a deterministic
// reference implementation used by tests and cmd/coreview. A real GPU
// renderer would inject its own System backed by an actual glyph atlas;
// nothing in internal/ depends on one concrete font library.
package fontsys

// Glyph is one shaped character, in physical-pixel basis.
type Glyph struct {
	Char          rune
	X, Y          float64
	Width, Height float64
	TexX, TexY    float64
	TexW, TexH    float64
}

// ShapedLine is the result of laying out a line of text at a given font
// size and scale factor.
type ShapedLine struct {
	Glyphs        []Glyph
	Width, Height float64
}

// System is the font-system collaborator contract: shape text, hit-test
// a logical x back to a character column, and report the metrics the
// coordinate hub needs for metric-based estimates and atlas upload.
type System interface {
	// LayoutTextScaled shapes text at fontSize, in device pixels scaled by
	// scaleFactor.
	LayoutTextScaled(text string, fontSize, scaleFactor float64) ShapedLine

	// HitTestLine returns the character column whose glyph is closest to
	// targetXLogical (a logical, pre-scale x offset from the line start).
	HitTestLine(text string, fontSize, scaleFactor float64, targetXLogical float64) uint32

	// CharWidthCoef is the average glyph advance divided by font size,
	// used for metric-based (unshaped) column<->x estimates.
	CharWidthCoef() float64

	// AtlasData and AtlasSize expose the backing glyph atlas for texture
	// upload; a reference/test implementation may return a trivial atlas.
	AtlasData() []byte
	AtlasSize() (w, h int)
}
